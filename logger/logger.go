// Package logger provides the logging interface used across qreval.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger accepts a message plus alternating key/value pairs.
// Compatible with slog, zap, logrus, and other structured loggers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// New returns a Logger that writes one human-readable line per call to w.
// Debug calls are dropped unless debug is true.
func New(w io.Writer, debug bool) Logger {
	return &writerLogger{w: w, debug: debug}
}

// NewDefaultLogger returns a Logger writing to stderr. Debug logging is
// enabled when QREVAL_DEBUG=true.
func NewDefaultLogger() Logger {
	return New(os.Stderr, debugEnabled())
}

// Discard returns a Logger that drops everything. Useful in tests and as
// the fallback when callers pass no logger.
func Discard() Logger {
	return New(io.Discard, false)
}

func debugEnabled() bool {
	return strings.ToLower(os.Getenv("QREVAL_DEBUG")) == "true"
}

type writerLogger struct {
	mu    sync.Mutex
	w     io.Writer
	debug bool
}

func (l *writerLogger) Debug(msg string, args ...any) {
	if l.debug {
		l.write("DEBUG", msg, args)
	}
}

func (l *writerLogger) Info(msg string, args ...any)  { l.write("INFO", msg, args) }
func (l *writerLogger) Warn(msg string, args ...any)  { l.write("WARN", msg, args) }
func (l *writerLogger) Error(msg string, args ...any) { l.write("ERROR", msg, args) }

func (l *writerLogger) write(level, msg string, args []any) {
	var b strings.Builder
	b.WriteString(time.Now().Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		b.WriteByte(' ')
		if i+1 < len(args) {
			fmt.Fprintf(&b, "%v=%v", args[i], args[i+1])
		} else {
			// dangling key, print it bare
			fmt.Fprintf(&b, "%v", args[i])
		}
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, b.String())
}
