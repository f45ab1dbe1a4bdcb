package internal

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a human-readable console logger writing to w.
// Debug lines (such as every account header found) only show when verbose.
func NewLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
