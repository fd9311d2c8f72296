package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent restful configuration stored as
// config.toml in the .restful/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Client  ClientConfig `toml:"client"`
	Stream  StreamConfig `toml:"stream"`
}

// ClientConfig holds settings for issuing requests.
type ClientConfig struct {
	// Target is an optional base URL prepended to relative request paths
	// given on the command line.
	Target string `toml:"target,omitempty"`

	// TimeoutSeconds bounds buffered requests. Streams are unbounded and
	// end when the server closes the connection or the command is
	// interrupted.
	TimeoutSeconds uint `toml:"timeout_seconds,omitempty"`
}

// StreamConfig holds settings for consuming SSE streams.
type StreamConfig struct {
	// LineEnding is the SSE framing convention: "lf" or "crlf".
	LineEnding string `toml:"line_ending,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"client.target": {
		get: func(c *Config) string { return c.Client.Target },
		set: func(c *Config, v string) error { c.Client.Target = v; return nil },
	},
	"client.timeout_seconds": {
		get: func(c *Config) string {
			if c.Client.TimeoutSeconds == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Client.TimeoutSeconds), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for client.timeout_seconds: %w", err)
			}
			c.Client.TimeoutSeconds = uint(n)
			return nil
		},
	},
	"stream.line_ending": {
		get: func(c *Config) string { return c.Stream.LineEnding },
		set: func(c *Config, v string) error {
			if v != "lf" && v != "crlf" {
				return fmt.Errorf("invalid value for stream.line_ending: %q (expected lf or crlf)", v)
			}
			c.Stream.LineEnding = v
			return nil
		},
	},
}
