// Package logging builds the service logger
package logging

import (
	"branchloan/internal/config"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger configured for the given environment. Production gets
// JSON lines, everything else a human-readable console writer.
func New(cfg config.LogConfig, service string) zerolog.Logger {
	return NewWithWriter(cfg, service, os.Stdout)
}

// NewWithWriter is New with an explicit output
func NewWithWriter(cfg config.LogConfig, service string, out io.Writer) zerolog.Logger {
	if !cfg.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// ParseLevel maps a LOG_LEVEL value to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
