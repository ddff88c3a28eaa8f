package inventory

import (
	"fmt"
	"time"
)

const logTimeLayout = "2006-01-02 15:04:05.000000"

// LogEntry is one timestamped record of a successful addition.
type LogEntry struct {
	At      time.Time
	Message string
}

func NewAddedEntry(item string, quantity int, at time.Time) LogEntry {
	return LogEntry{At: at, Message: fmt.Sprintf("Added %d of %s", quantity, item)}
}

func (e LogEntry) String() string {
	return e.At.Format(logTimeLayout) + ": " + e.Message
}

// LogSink receives log entries from Add.
type LogSink interface {
	Append(entry LogEntry)
}

// Journal is an in-memory LogSink that keeps entries in append order.
type Journal struct {
	entries []LogEntry
}

func (j *Journal) Append(entry LogEntry) {
	j.entries = append(j.entries, entry)
}

// Entries returns a copy of the recorded entries.
func (j *Journal) Entries() []LogEntry {
	out := make([]LogEntry, len(j.entries))
	copy(out, j.entries)
	return out
}

func (j *Journal) Len() int { return len(j.entries) }
