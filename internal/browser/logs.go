package browser

import (
	"fmt"
	"sync"
	"time"
)

// logBuffer collects entries per channel. Playwright delivers events on its
// own goroutine, so every access is locked.
type logBuffer struct {
	mu       sync.Mutex
	order    []string
	channels map[string][]LogEntry
	now      func() time.Time
}

func newLogBuffer(kinds ...string) *logBuffer {
	b := &logBuffer{
		order:    kinds,
		channels: make(map[string][]LogEntry, len(kinds)),
		now:      time.Now,
	}
	for _, k := range kinds {
		b.channels[k] = nil
	}
	return b
}

func (b *logBuffer) add(kind, level, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.channels[kind]; !ok {
		return
	}
	b.channels[kind] = append(b.channels[kind], LogEntry{
		Timestamp: b.now(),
		Level:     level,
		Message:   message,
	})
}

func (b *logBuffer) kinds() []string {
	return append([]string(nil), b.order...)
}

func (b *logBuffer) drain(kind string) ([]LogEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, ok := b.channels[kind]
	if !ok {
		return nil, fmt.Errorf("unknown log type %q", kind)
	}
	b.channels[kind] = nil
	return entries, nil
}
