// Package logger builds the zerolog logger used by the CLI.
package logger

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a logger writing to w at level in the given format,
// "console" or "json".
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}

	var out io.Writer
	switch strings.ToLower(format) {
	case "json":
		out = w
	case "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}
	return zerolog.New(out).With().Timestamp().Logger().Level(lvl), nil
}
