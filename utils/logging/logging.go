// Package logging builds the slog logger shared by the camprobe commands.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/google/uuid"
)

type Options struct {
	Level  string
	Format string
	// Journal forces journald output. It is also used when stderr is already
	// connected to the journal.
	Journal bool
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w, tagged with a fresh run id, and installs
// it as the slog default.
func New(w io.Writer, opt Options) *slog.Logger {
	handler := newHandler(w, opt)
	logger := slog.New(handler).With("run", uuid.NewString())
	slog.SetDefault(logger)
	return logger
}

func newHandler(w io.Writer, opt Options) slog.Handler {
	level := ParseLevel(opt.Level)
	if opt.Journal || toJournal() {
		if journal.Enabled() {
			return NewJournalHandler(level)
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	if opt.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func toJournal() bool {
	ok, err := journal.StderrIsJournalStream()
	return err == nil && ok
}

// Stderr is the default log destination.
func Stderr(opt Options) *slog.Logger {
	return New(os.Stderr, opt)
}
