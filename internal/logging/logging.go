// Package logging configures the process-wide diagnostic logger.
// Diagnostics always go to stderr so stdout stays reserved for reports and
// JSON output.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the logger for one CLI invocation. The default threshold is
// warn so normal runs stay quiet; verbose lowers it to debug.
func New(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

// NewWithWriter builds a logger against an explicit writer and level.
// Tests use this to capture diagnostics.
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
