package observability

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger tagged with the service name.
// APP_ENV=dev (or development) uses a human-friendly console writer and
// debug level; LOG_LEVEL overrides the level in any environment.
func NewLogger(env, service string) zerolog.Logger {
	level := zerolog.InfoLevel
	var l zerolog.Logger
	if env == "dev" || env == "development" {
		level = zerolog.DebugLevel
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		l = zerolog.New(os.Stdout)
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}
	return l.Level(level).With().Timestamp().Str("service", service).Logger()
}
