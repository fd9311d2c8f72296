// Package restfulcmder
package restfulcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/restful/cmd/restful/config"
	requestcmder "github.com/papercomputeco/restful/cmd/restful/request"
	streamcmder "github.com/papercomputeco/restful/cmd/restful/stream"
	versioncmder "github.com/papercomputeco/restful/cmd/version"
)

const restfulLongDesc string = `Restful is a JSON-native HTTP client for REST APIs.

Issue buffered requests using:
  restful request <url>          Send a request and print the decoded body

Consume server-sent event streams using:
  restful stream <url>           Open a stream and print events as they arrive

Persistent configuration lives in .restful/config.toml:
  restful config set <key> <value>`

const restfulShortDesc string = "Restful - JSON-native REST client"

func NewRestfulCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restful",
		Short: restfulShortDesc,
		Long:  restfulLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Directory holding config.toml (default: $HOME/.restful)")

	// Add subcommands
	cmd.AddCommand(requestcmder.NewRequestCmd())
	cmd.AddCommand(streamcmder.NewStreamCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
