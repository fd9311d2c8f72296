package config

const (
	defaultTimeoutSeconds = 60
	defaultLineEnding     = "lf"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Client: ClientConfig{
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Stream: StreamConfig{
			LineEnding: defaultLineEnding,
		},
	}
}
