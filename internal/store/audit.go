package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// MaxAuditEntries caps the log: appending beyond it evicts the oldest
// entries first (FIFO by count, not time).
const MaxAuditEntries = 50

// AuditEntry is one immutable record of a successful mutation.
type AuditEntry struct {
	Time    time.Time `json:"time"`
	Date    string    `json:"date"`
	Action  string    `json:"action"`
	Workers []string  `json:"workers"`
}

// AuditLog is an append-only, count-capped action log backed by its own
// JSON document. It is always local, regardless of which assignment
// backend is configured. The loader is typed for a list with an empty
// default, deliberately separate from the assignment loader.
type AuditLog struct {
	path string
	now  func() time.Time

	mu      sync.Mutex
	entries []AuditEntry
}

// OpenAuditLog loads the log at path, cold-starting on a missing or
// malformed file.
func OpenAuditLog(path string) *AuditLog {
	l := &AuditLog{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).WithField("file", path).Warn("audit log unreadable, starting empty")
		}
		return l
	}
	if err := json.Unmarshal(data, &l.entries); err != nil {
		logrus.WithError(err).WithField("file", path).Warn("audit log malformed, starting empty")
		l.entries = nil
	}
	if len(l.entries) > MaxAuditEntries {
		l.entries = l.entries[len(l.entries)-MaxAuditEntries:]
	}
	return l
}

// Append records a mutation and persists the trimmed log. The in-memory
// log only takes the entry once the write succeeds, so Recent never
// reports records that would vanish on restart.
func (l *AuditLog) Append(date, action string, workers []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cp := make([]string, len(workers))
	copy(cp, workers)

	next := append(append([]AuditEntry(nil), l.entries...), AuditEntry{
		Time:    l.now(),
		Date:    date,
		Action:  action,
		Workers: cp,
	})
	if len(next) > MaxAuditEntries {
		next = next[len(next)-MaxAuditEntries:]
	}
	if err := l.save(next); err != nil {
		return err
	}
	l.entries = next
	return nil
}

// Recent returns the retained entries, most recent first.
func (l *AuditLog) Recent() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]AuditEntry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Len returns the number of retained entries.
func (l *AuditLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *AuditLog) save(entries []AuditEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode audit log: %w", err)
	}

	tmpFile := l.path + tmpSuffix
	if err := os.WriteFile(tmpFile, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	if err := os.Rename(tmpFile, l.path); err != nil {
		return fmt.Errorf("failed to replace audit log: %w", err)
	}
	return nil
}
