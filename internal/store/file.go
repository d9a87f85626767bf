package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/haneul-services/work-roster/internal/roster"
)

const (
	filePermissions = 0644
	backupSuffix    = ".backup"
	tmpSuffix       = ".tmp.json"
)

// FileStore persists the assignment map as a single UTF-8 JSON document
// mapping date keys to worker lists. Writes go through a temp file and
// rename; the previous document is kept as a .backup.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the JSON document at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the assignment map. A missing or unparseable file is a cold
// start: the board simply has no data yet.
func (s *FileStore) Load() (roster.Assignments, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).WithField("file", s.path).Warn("assignment file unreadable, starting empty")
		}
		return roster.Assignments{}, nil
	}

	var a roster.Assignments
	if err := json.Unmarshal(data, &a); err != nil {
		logrus.WithError(err).WithField("file", s.path).Warn("assignment file malformed, starting empty")
		return roster.Assignments{}, nil
	}
	if a == nil {
		a = roster.Assignments{}
	}
	a.Normalize()
	return a, nil
}

// SetAll replaces the stored document with the full map.
func (s *FileStore) SetAll(a roster.Assignments) error {
	out := a.Clone()
	out.Normalize()

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode assignments: %w", err)
	}

	// Write the replacement durably before touching the live file, so a
	// failed write leaves the previous document in place.
	tmpFile := s.path + tmpSuffix
	if err := os.WriteFile(tmpFile, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write assignments: %w", err)
	}

	// Keep the previous document around
	if _, err := os.Stat(s.path); err == nil {
		if err := os.Rename(s.path, s.path+backupSuffix); err != nil {
			logrus.WithError(err).Warn("failed to create assignment backup")
		}
	}

	if err := os.Rename(tmpFile, s.path); err != nil {
		return fmt.Errorf("failed to replace assignment file: %w", err)
	}
	return nil
}
