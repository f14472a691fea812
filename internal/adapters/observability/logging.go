package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger tagged with the binary name.
// APP_ENV=dev (or development) uses a human-friendly console writer.
// LOG_LEVEL accepts zerolog level names and defaults to info.
func NewLogger(env, component string) zerolog.Logger {
	var l zerolog.Logger
	if env == "dev" || env == "development" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		l = zerolog.New(os.Stdout)
	}
	lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return l.Level(lvl).With().Timestamp().Str("component", component).Logger()
}
