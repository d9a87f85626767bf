package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/haneul-services/work-roster/internal/roster"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s, err := NewMemorySQLiteStore()
	if err != nil {
		t.Fatalf("NewMemorySQLiteStore: %v", err)
	}
	defer s.Close()

	m := roster.Assignments{
		"2026-01-05": {"박성빈", "오승현"},
		"2026-01-12": {"박성빈"},
	}
	if err := s.SetAll(m); err != nil {
		t.Fatalf("SetAll: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("Round trip mismatch: got %v, want %v", got, m)
	}
}

func TestSQLiteStoreSetAllReplaces(t *testing.T) {
	s, err := NewMemorySQLiteStore()
	if err != nil {
		t.Fatalf("NewMemorySQLiteStore: %v", err)
	}
	defer s.Close()

	if err := s.SetAll(roster.Assignments{"2026-01-05": {"박성빈"}}); err != nil {
		t.Fatalf("First SetAll: %v", err)
	}
	next := roster.Assignments{"2026-02-02": {"오승현"}}
	if err := s.SetAll(next); err != nil {
		t.Fatalf("Second SetAll: %v", err)
	}

	got, _ := s.Load()
	if !reflect.DeepEqual(got, next) {
		t.Errorf("SetAll must replace the full map, got %v", got)
	}
}

func TestSQLiteStoreEmptyDatabase(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "roster.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Fresh database should load empty, got %v", got)
	}
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	m := roster.Assignments{"2026-01-05": {"박성빈"}}
	if err := s.SetAll(m); err != nil {
		t.Fatalf("SetAll: %v", err)
	}
	s.Close()

	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer s2.Close()

	got, _ := s2.Load()
	if !reflect.DeepEqual(got, m) {
		t.Errorf("Reopened database = %v, want %v", got, m)
	}
}
