// Package telemetry provides the service logger and OTEL metrics for stratus.
package telemetry

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds the service-scoped zerolog logger. An unparseable level
// falls back to info.
func NewLogger(service, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// NewConsoleLogger is NewLogger with human-readable output on stderr for
// interactive runs.
func NewConsoleLogger(service, level string) zerolog.Logger {
	return NewLogger(service, level).Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
