// Package logger configures the global zerolog logger from command line flags.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is embedded in command options as a go-flags group.
type Logger struct {
	Level  string `long:"log-level"  env:"LOG_LEVEL"  description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"disabled" default:"info"`
	Format string `long:"log-format" env:"LOG_FORMAT" description:"Log format" choice:"console" choice:"json" default:"console"`
	Output string `long:"log-output" env:"LOG_OUTPUT" description:"Log output: stderr, stdout or a file path" default:"stderr"`

	file *os.File
}

// Setup applies the options to the global logger. Problems opening the
// output fall back to stderr with a warning.
func (l *Logger) Setup() {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	out, outErr := l.writer()
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	if outErr != nil {
		log.Warn().Err(outErr).Str("output", l.Output).Msg("Cannot open log output, using stderr")
	}
	if err != nil {
		log.Warn().Str("level", l.Level).Msg("Unknown log level, using info")
	}
}

func (l *Logger) writer() (io.Writer, error) {
	var (
		w   io.Writer = os.Stderr
		err error
	)

	switch l.Output {
	case "", "stderr":
	case "stdout":
		w = os.Stdout
	default:
		f, openErr := os.OpenFile(l.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if openErr != nil {
			err = fmt.Errorf("open log file: %w", openErr)
			break
		}
		l.file = f
		w = f
	}

	if l.Format == "json" {
		return w, err
	}

	noColor := w != os.Stderr && w != os.Stdout
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: noColor}, err
}

// Close releases the log file, if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
