package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/haneul-services/work-roster/internal/roster"
)

const sqliteVersion = 1

// SQLiteStore persists the assignment map in a local SQLite database,
// one row per assigned date. It is the drop-in relational alternative to
// the file and sheet backends.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and runs
// migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemorySQLiteStore creates an in-memory store for testing.
func NewMemorySQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStore(":memory:")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= sqliteVersion {
		return nil
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS assignments (
		date    TEXT PRIMARY KEY,
		workers TEXT NOT NULL
	);`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", sqliteVersion))
	return err
}

// Load reads all assignment rows. A failing query cold-starts like the
// other backends; individual malformed rows are skipped.
func (s *SQLiteStore) Load() (roster.Assignments, error) {
	rows, err := s.db.Query("SELECT date, workers FROM assignments")
	if err != nil {
		logrus.WithError(err).Warn("assignment query failed, starting empty")
		return roster.Assignments{}, nil
	}
	defer rows.Close()

	a := roster.Assignments{}
	for rows.Next() {
		var date, joined string
		if err := rows.Scan(&date, &joined); err != nil {
			logrus.WithError(err).Warn("skipping unreadable assignment row")
			continue
		}
		var workers []string
		for _, name := range strings.Split(joined, ",") {
			if name = strings.TrimSpace(name); name != "" {
				workers = append(workers, name)
			}
		}
		if len(workers) > 0 {
			a[date] = workers
		}
	}
	if err := rows.Err(); err != nil {
		logrus.WithError(err).Warn("assignment scan aborted, starting empty")
		return roster.Assignments{}, nil
	}
	return a, nil
}

// SetAll replaces every row in one transaction.
func (s *SQLiteStore) SetAll(a roster.Assignments) error {
	out := a.Clone()
	out.Normalize()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM assignments"); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}
	for date, workers := range out {
		if _, err := tx.Exec(
			"INSERT INTO assignments (date, workers) VALUES (?, ?)",
			date, strings.Join(workers, ","),
		); err != nil {
			return fmt.Errorf("insert assignment %s: %w", date, err)
		}
	}
	return tx.Commit()
}
