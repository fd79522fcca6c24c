package logging

import (
	"io"
	"os"
	"strings"

	"github.com/indigo-web/tinyreq/config"
	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatPretty  = "pretty"
)

// New creates a logger writing into stderr.
func New(cfg config.Log) zerolog.Logger {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput creates a logger out of the config. The "disabled" level (as well as an
// empty one) results in a no-op logger. Unknown levels fall back to info.
func NewWithOutput(cfg config.Log, out io.Writer) zerolog.Logger {
	if len(cfg.Level) == 0 {
		return zerolog.Nop()
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	if level == zerolog.Disabled {
		return zerolog.Nop()
	}

	switch strings.ToLower(cfg.Format) {
	case FormatConsole, FormatPretty:
		out = zerolog.ConsoleWriter{Out: out, NoColor: true}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("component", "tinyreq").
		Logger()
}
