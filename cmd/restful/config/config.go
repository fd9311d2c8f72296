// Package configcmder provides the config command for managing persistent
// restful configuration stored in the .restful/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent restful configuration.

Configuration is stored as config.toml in the .restful/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  client.target, client.timeout_seconds,
  stream.line_ending

Use subcommands to get, set, or list configuration values:
  restful config set <key> <value>    Set a configuration value
  restful config get <key>            Get a configuration value
  restful config list                 List all configuration values

Examples:
  restful config set client.target https://api.example.com
  restful config set stream.line_ending crlf
  restful config get client.target
  restful config list`

const configShortDesc string = "Manage persistent restful configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
