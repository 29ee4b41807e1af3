// Package log provides a leveled logger built on log/slog.
// The log messages are intended to be user-facing
// similar to the standard library's log package.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Level specifies the level of logging.
type Level = slog.Level

// Supported log levels.
const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Warn  = slog.LevelWarn
	Error = slog.LevelError
)

// Logger logs user-facing messages.
// Use the printf-style methods for plain messages
// and the embedded slog.Logger for structured ones.
type Logger struct{ *slog.Logger }

// New builds a logger that writes to the given writer.
// The logger defaults to level Info and does not use color.
func New(w io.Writer) *Logger {
	return &Logger{slog.New(&handler{W: w, Level: Info})}
}

// Level reports the minimum level of messages written by this logger.
func (l *Logger) Level() Level {
	if h, ok := l.Handler().(*handler); ok {
		return h.Level
	}
	return _discardLevel
}

// WithLevel builds a copy of this logger that logs messages at or above the
// given level.
func (l *Logger) WithLevel(lvl Level) *Logger {
	return l.withHandler(func(h *handler) { h.Level = lvl })
}

// WithColor builds a copy of this logger that highlights levels and messages
// with ANSI escape codes.
func (l *Logger) WithColor(color bool) *Logger {
	return l.withHandler(func(h *handler) { h.Color = color })
}

// WithName builds a new logger with the provided name. The returned logger is
// safe to use concurrently with this logger.
//
// Names nest: a logger named "b" derived from one named "a" is "a.b".
func (l *Logger) WithName(name string) *Logger {
	return l.withHandler(func(h *handler) {
		if len(h.name) > 0 {
			h.name += "."
		}
		h.name += name
	})
}

func (l *Logger) withHandler(fn func(*handler)) *Logger {
	h, ok := l.Handler().(*handler)
	if !ok {
		return l
	}
	out := *h
	fn(&out)
	return &Logger{slog.New(&out)}
}

// Logf logs a printf-style message at the given level.
func (l *Logger) Logf(lvl Level, format string, args ...any) {
	ctx := context.Background()
	if !l.Enabled(ctx, lvl) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.Log(ctx, lvl, strings.TrimRight(msg, "\n"))
}

// Debugf logs a message at Debug level.
func (l *Logger) Debugf(format string, args ...any) {
	l.Logf(Debug, format, args...)
}

// Infof logs a message at Info level.
func (l *Logger) Infof(format string, args ...any) {
	l.Logf(Info, format, args...)
}

// Warnf logs a message at Warn level.
func (l *Logger) Warnf(format string, args ...any) {
	l.Logf(Warn, format, args...)
}

// Errorf logs a message at Error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.Logf(Error, format, args...)
}
