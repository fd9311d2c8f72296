// Package requestcmder provides the request command for issuing buffered
// HTTP requests and printing the decoded JSON response.
package requestcmder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/restful/pkg/cliui"
	"github.com/papercomputeco/restful/pkg/client"
	"github.com/papercomputeco/restful/pkg/config"
	"github.com/papercomputeco/restful/pkg/logger"
	"github.com/papercomputeco/restful/pkg/value"
)

type requestCommander struct {
	url     string
	method  string
	data    string
	headers []string
	keypath string

	target  string
	timeout uint

	debug  bool
	logger *zap.Logger
}

const requestLongDesc string = `Send an HTTP request and print the decoded JSON response body.

The URL may be absolute, or a path relative to the configured target
(client.target). The request body, given with --data, must be a JSON object.
Responses are decoded into a JSON object; non-object response bodies are
rejected.

Use --path to extract a single value from the response using dotted key-path
notation. Path segments name object keys, and numeric segments index into
arrays:
  restful request https://api.example.com/users/1 --path address.city
  restful request https://api.example.com/search --path results.0.name

Examples:
  restful request https://api.example.com/status
  restful request /v1/users -t https://api.example.com -X POST -d '{"name": "ada"}'
  restful request https://api.example.com/users/1 -H "Authorization: Bearer tok"`

const requestShortDesc string = "Send an HTTP request"

func NewRequestCmd() *cobra.Command {
	cmder := &requestCommander{}

	cmd := &cobra.Command{
		Use:   "request <url>",
		Short: requestShortDesc,
		Long:  requestLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagTarget,
				config.FlagTimeout,
			})

			cmder.target = v.GetString("client.target")
			cmder.timeout = v.GetUint("client.timeout_seconds")
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
	cmd.Flags().StringVarP(&cmder.keypath, "path", "p", "", "Key path to extract from the response")
	config.AddStringFlag(cmd, config.Flags, config.FlagTarget, &cmder.target)
	config.AddUintFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)

	return cmd
}

func (c *requestCommander) run() error {
	c.logger = logger.New(c.debug)
	defer func() { _ = c.logger.Sync() }()

	body, err := ParseBody(c.data)
	if err != nil {
		return err
	}

	headers, err := ParseHeaders(c.headers)
	if err != nil {
		return err
	}

	cl := client.New(
		client.WithLogger(c.logger),
		client.WithHTTPClient(&http.Client{Timeout: time.Duration(c.timeout) * time.Second}),
	)

	req := client.Request{
		URL:     ResolveTarget(c.target, c.url),
		Method:  c.method,
		Headers: headers,
		Body:    body,
	}

	start := time.Now()
	obj, err := cl.Do(context.Background(), req)
	elapsed := time.Since(start)

	if err != nil {
		return c.printError(err, elapsed)
	}

	fmt.Printf("\n  %s %s %s %s\n\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(req.Method),
		cliui.ValueStyle.Render(req.URL),
		cliui.DimStyle.Render(cliui.FormatDuration(elapsed)),
	)

	if c.keypath != "" {
		resolved, ok := value.Resolve(obj, c.keypath)
		if !ok {
			return fmt.Errorf("no value at path %q", c.keypath)
		}
		rendered, err := json.Marshal(resolved)
		if err != nil {
			return fmt.Errorf("rendering value: %w", err)
		}
		fmt.Println(cliui.IndentJSON(rendered))
		return nil
	}

	rendered, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("rendering response: %w", err)
	}
	fmt.Println(cliui.IndentJSON(rendered))

	return nil
}

// printError renders HTTP error responses with their status and body.
// Transport and decoding failures bubble up unchanged.
func (c *requestCommander) printError(err error, elapsed time.Duration) error {
	var jsonErr *client.HTTPErrorJSON
	if errors.As(err, &jsonErr) {
		fmt.Printf("\n  %s %s %s\n\n",
			cliui.FailMark,
			cliui.StatusStyle.Render(fmt.Sprintf("HTTP %d", jsonErr.StatusCode)),
			cliui.DimStyle.Render(cliui.FormatDuration(elapsed)),
		)
		rendered, merr := json.Marshal(jsonErr.Object)
		if merr == nil {
			fmt.Println(cliui.IndentJSON(rendered))
		}
		return err
	}

	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		fmt.Printf("\n  %s %s %s\n\n",
			cliui.FailMark,
			cliui.StatusStyle.Render(fmt.Sprintf("HTTP %d", httpErr.StatusCode)),
			cliui.DimStyle.Render(cliui.FormatDuration(elapsed)),
		)
		if len(httpErr.Body) > 0 {
			fmt.Println(string(httpErr.Body))
		}
		return err
	}

	return err
}

// ParseBody decodes the --data flag into a JSON object. An empty string
// means no body.
func ParseBody(data string) (*value.Object, error) {
	if data == "" {
		return nil, nil
	}

	v, err := value.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("parsing request body: %w", err)
	}

	obj, ok := v.AsObject()
	if !ok {
		return nil, fmt.Errorf("request body must be a JSON object, got %s", v.Kind())
	}

	return obj, nil
}

// ParseHeaders splits repeated --header flags of the form "Name: Value"
// into a header map.
func ParseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, val, found := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid header %q (expected \"Name: Value\")", h)
		}
		headers[name] = strings.TrimSpace(val)
	}

	return headers, nil
}

// ResolveTarget joins a relative path onto the configured target base URL.
// Absolute URLs are returned unchanged.
func ResolveTarget(target, raw string) string {
	if target == "" || strings.Contains(raw, "://") {
		return raw
	}
	return strings.TrimSuffix(target, "/") + "/" + strings.TrimPrefix(raw, "/")
}
