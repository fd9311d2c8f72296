// Package streamcmder provides the stream command for consuming server-sent
// event streams.
package streamcmder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	requestcmder "github.com/papercomputeco/restful/cmd/restful/request"
	"github.com/papercomputeco/restful/pkg/cliui"
	"github.com/papercomputeco/restful/pkg/client"
	"github.com/papercomputeco/restful/pkg/config"
	"github.com/papercomputeco/restful/pkg/logger"
	"github.com/papercomputeco/restful/pkg/sse"
)

type streamCommander struct {
	url     string
	method  string
	data    string
	headers []string
	crlf    bool
	record  string

	target string

	debug  bool
	logger *zap.Logger
}

const streamLongDesc string = `Open a server-sent event stream and print events as they arrive.

The URL may be absolute, or a path relative to the configured target
(client.target). Streams run until the server closes the connection or the
command is interrupted with Ctrl-C.

Events are framed by blank lines. Lines end with LF by default; pass --crlf
for servers that terminate lines with CRLF (this can also be set persistently
with "restful config set stream.line_ending crlf").

Use --record to write the raw stream bytes to a file as they are consumed,
for replay or debugging.

Examples:
  restful stream https://api.example.com/v1/events
  restful stream /v1/events -t https://api.example.com
  restful stream https://api.example.com/v1/chat -X POST -d '{"prompt": "hi"}'
  restful stream https://api.example.com/v1/events --record events.raw`

const streamShortDesc string = "Consume a server-sent event stream"

func NewStreamCmd() *cobra.Command {
	cmder := &streamCommander{}

	cmd := &cobra.Command{
		Use:   "stream <url>",
		Short: streamShortDesc,
		Long:  streamLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagTarget,
			})

			cmder.target = v.GetString("client.target")

			if !cmd.Flags().Changed("crlf") {
				cmder.crlf = v.GetString("stream.line_ending") == "crlf"
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.url = args[0]

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.method, "method", "X", http.MethodGet, "HTTP method to use")
	cmd.Flags().StringVarP(&cmder.data, "data", "d", "", "JSON object to send as the request body")
	cmd.Flags().StringArrayVarP(&cmder.headers, "header", "H", nil, `Request header as "Name: Value" (repeatable)`)
	cmd.Flags().BoolVar(&cmder.crlf, "crlf", false, "Treat CRLF as the stream line terminator")
	cmd.Flags().StringVar(&cmder.record, "record", "", "File to record raw stream bytes to")
	config.AddStringFlag(cmd, config.Flags, config.FlagTarget, &cmder.target)

	return cmd
}

func (c *streamCommander) run() error {
	c.logger = logger.New(c.debug)
	defer func() { _ = c.logger.Sync() }()

	body, err := requestcmder.ParseBody(c.data)
	if err != nil {
		return err
	}

	headers, err := requestcmder.ParseHeaders(c.headers)
	if err != nil {
		return err
	}

	var opts []client.StreamOption
	if c.crlf {
		opts = append(opts, client.WithLineTerminator(sse.CarriageReturnLineFeed))
	}
	if c.record != "" {
		f, err := os.Create(c.record)
		if err != nil {
			return fmt.Errorf("creating record file: %w", err)
		}
		defer f.Close()
		opts = append(opts, client.WithRecorder(f))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cl := client.New(client.WithLogger(c.logger))

	req := client.Request{
		URL:     requestcmder.ResolveTarget(c.target, c.url),
		Method:  c.method,
		Headers: headers,
		Body:    body,
	}

	stream := cl.Stream(ctx, req, opts...)
	defer stream.Close()

	count := 0
	for {
		event, err := stream.Next()
		if err != nil {
			// Ctrl-C is a clean shutdown, not a failure.
			if errors.Is(err, context.Canceled) {
				break
			}
			return err
		}
		if event == nil {
			break
		}

		count++
		c.printEvent(event)
	}

	fmt.Printf("  %s %s\n",
		cliui.SuccessMark,
		cliui.DimStyle.Render(fmt.Sprintf("stream closed after %d events", count)),
	)

	return nil
}

func (c *streamCommander) printEvent(event *sse.Event) {
	fmt.Printf("  %s\n", cliui.EventHeader(event.Type, event.ID))
	if event.Retry != sse.RetryUnset {
		fmt.Printf("  %s\n", cliui.DimStyle.Render(fmt.Sprintf("retry: %dms", event.Retry)))
	}
	fmt.Println(cliui.IndentJSON([]byte(event.Data)))
	fmt.Println()
}
