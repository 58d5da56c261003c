package mock

import (
	"fmt"
	"sync"
)

// Logger records log entries for assertions in tests.
type Logger struct {
	mu      sync.Mutex
	entries []string
}

// NewLogger creates an empty recording logger.
func NewLogger() *Logger {
	return &Logger{entries: make([]string, 0)}
}

func (l *Logger) record(level, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintf("%s: %s %v", level, msg, args))
}

func (l *Logger) Debug(msg string, args ...any) { l.record("DEBUG", msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.record("INFO", msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.record("WARN", msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.record("ERROR", msg, args...) }

// Entries returns a copy of the recorded entries.
func (l *Logger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}
