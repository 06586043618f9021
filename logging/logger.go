// Package logging is the engine's log sink
// Engine code depends only on Logger; concrete sinks wrap slog or a raw writer
// Absence of a sink is modelled by Nop and never changes control flow
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Level is the severity of a log entry
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
)

// String returns the level tag
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// ANSI returns the terminal color escape for the level
func (l Level) ANSI() string {
	switch l {
	case LevelError:
		return "\x1b[91m" // red
	case LevelWarn:
		return "\x1b[93m" // yellow
	default:
		return "\x1b[94m" // blue
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Logger receives engine log entries
type Logger interface {
	Log(level Level, msg string)
}

// Nop discards every entry
type Nop struct{}

// Log implements Logger
func (Nop) Log(Level, string) {}

// Slog forwards entries to a structured slog.Logger
type Slog struct {
	logger *slog.Logger
}

// NewSlog wraps logger, a nil logger falls back to slog.Default()
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{logger: logger}
}

// Log implements Logger
func (s *Slog) Log(level Level, msg string) {
	s.logger.Log(context.Background(), level.slog(), msg)
}

// With returns a logger that attaches args to every entry
func (s *Slog) With(args ...any) *Slog {
	return &Slog{logger: s.logger.With(args...)}
}

// Writer prints colored, level-tagged lines to an io.Writer
// Write failures are swallowed: a broken sink must not stop the engine
type Writer struct {
	mu     sync.Mutex
	target io.Writer
	color  bool
}

// NewWriter creates a line logger on target, color enables ANSI escapes
func NewWriter(target io.Writer, color bool) *Writer {
	return &Writer{target: target, color: color}
}

// Log implements Logger
func (w *Writer) Log(level Level, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.color {
		fmt.Fprintf(w.target, "%s[%s]: %s\x1b[0m\n", level.ANSI(), level, msg)
		return
	}
	fmt.Fprintf(w.target, "[%s]: %s\n", level, msg)
}

// Logf formats a message and logs it, a nil logger is treated as Nop
func Logf(l Logger, level Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.Log(level, fmt.Sprintf(format, args...))
}

// WithRun tags every entry from l with a run id
// Slog loggers get a structured attribute; other sinks get a message prefix
func WithRun(l Logger, runID string) Logger {
	switch v := l.(type) {
	case nil:
		return Nop{}
	case Nop:
		return v
	case *Slog:
		return v.With("run", runID)
	default:
		return prefixed{next: l, prefix: "run=" + runID + " "}
	}
}

type prefixed struct {
	next   Logger
	prefix string
}

func (p prefixed) Log(level Level, msg string) {
	p.next.Log(level, p.prefix+msg)
}
