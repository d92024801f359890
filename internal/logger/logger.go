// Package logger writes structured JSON logs to a file, since the terminal
// belongs to the TUI.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Tordek/darkstone/internal/constants"
)

type Config struct {
	// Dir is the application directory; logs go to Dir/logs.
	Dir   string
	Debug bool
}

// Setup opens the log file and returns a logger writing to it together with
// a cleanup func closing the file. On error the returned logger discards.
func Setup(cfg Config) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	root := filepath.Clean(cfg.Dir)
	dir := filepath.Join(root, constants.LogDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Discard(), noop, err
	}

	path := filepath.Join(dir, constants.LogFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return Discard(), noop, err
	}

	l := New(f, cfg.Debug)
	l.Info("logger.initialized", "path", path, "debug", cfg.Debug)

	return l, f.Close, nil
}

// New builds the JSON logger used by Setup on top of any writer.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}))
}

func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
