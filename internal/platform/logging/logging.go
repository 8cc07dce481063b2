package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options captures the logger configuration for one process.
type Options struct {
	Level    string    // "debug", "info", etc.; defaults to info
	FilePath string    // optional append-only JSON log file
	Console  io.Writer // defaults to os.Stderr
	NoColor  bool
}

// Setup builds the base logger writing human-readable lines to the console
// and, when FilePath is set, JSON entries to an append-only log file.
// The returned func closes the file sink.
func Setup(opts Options) (zerolog.Logger, func(), error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		if parsed, err := zerolog.ParseLevel(opts.Level); err == nil {
			level = parsed
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339

	out := opts.Console
	if out == nil {
		out = os.Stderr
	}
	console := zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: opts.NoColor}

	writers := []io.Writer{console}
	closeFn := func() {}
	if opts.FilePath != "" {
		f, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("open log file %s: %w", opts.FilePath, err)
		}
		writers = append(writers, f)
		closeFn = func() { _ = f.Close() }
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("service", "vodframes").
		Logger()

	return logger, closeFn, nil
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(base zerolog.Logger, component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}
