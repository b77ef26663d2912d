package chatlog

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one monitor row: who said what and whether the exchange was
// escalated to a human.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Escalated bool      `json:"escalated"`
}

// Log is a bounded in-memory ring buffer of conversation entries, safe
// for concurrent use. When full, the oldest entry is evicted first.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
}

func New(limit int) *Log {
	if limit <= 0 {
		limit = 1
	}
	return &Log{entries: make([]Entry, limit)}
}

// Add records an entry and returns it with its generated ID and timestamp.
func (l *Log) Add(sender, message string, escalated bool) Entry {
	entry := Entry{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Sender:    sender,
		Message:   message,
		Escalated: escalated,
	}

	l.mu.Lock()
	l.entries[l.next] = entry
	l.next++
	if l.next == len(l.entries) {
		l.next = 0
		l.full = true
	}
	l.mu.Unlock()

	return entry
}

// Entries returns a snapshot ordered oldest to newest.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.full {
		out := make([]Entry, l.next)
		copy(out, l.entries[:l.next])
		return out
	}
	out := make([]Entry, 0, len(l.entries))
	out = append(out, l.entries[l.next:]...)
	out = append(out, l.entries[:l.next]...)
	return out
}

// Len reports how many entries are currently held.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.full {
		return len(l.entries)
	}
	return l.next
}

// Clear discards all entries.
func (l *Log) Clear() {
	l.mu.Lock()
	l.entries = make([]Entry, len(l.entries))
	l.next = 0
	l.full = false
	l.mu.Unlock()
}
