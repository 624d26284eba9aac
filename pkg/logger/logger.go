package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/masbusiness/business-os/internal/config"
)

type Logger struct {
	*zerolog.Logger
}

// New logs to stderr so stdout stays free for command output. Development
// gets the console writer, everything else JSON. verbose forces debug.
func New(cfg *config.Config, verbose bool) *Logger {
	return NewWithWriter(cfg, verbose, os.Stderr)
}

func NewWithWriter(cfg *config.Config, verbose bool, out io.Writer) *Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	if cfg.IsDev {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	z := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &Logger{Logger: &z}
}

// Nop discards everything.
func Nop() *Logger {
	z := zerolog.Nop()
	return &Logger{Logger: &z}
}
