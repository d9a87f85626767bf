package roster

import (
	"errors"
	"testing"
)

type fakeWriter struct {
	writes int
	last   Assignments
	err    error
}

func (f *fakeWriter) SetAll(a Assignments) error {
	if f.err != nil {
		return f.err
	}
	f.writes++
	f.last = a
	return nil
}

type fakeAudit struct {
	appends int
	lastKey string
	err     error
}

func (f *fakeAudit) Append(date, action string, workers []string) error {
	if f.err != nil {
		return f.err
	}
	f.appends++
	f.lastKey = date
	return nil
}

func newTestEditor(maxPerDay int) (*Editor, *fakeWriter, *fakeAudit) {
	w := &fakeWriter{}
	l := &fakeAudit{}
	return &Editor{Store: w, Log: l, Roster: statsRoster, MaxPerDay: maxPerDay}, w, l
}

func TestEditorApplySaves(t *testing.T) {
	e, w, l := newTestEditor(0)
	current := Assignments{}

	outcome, next, err := e.Apply(current, "2026-01-05", []string{"A", "B"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if outcome != Saved {
		t.Errorf("Expected Saved, got %v", outcome)
	}
	if w.writes != 1 || l.appends != 1 {
		t.Errorf("Expected 1 write and 1 audit entry, got %d/%d", w.writes, l.appends)
	}
	if !EqualList(next.Get("2026-01-05"), []string{"A", "B"}) {
		t.Errorf("New map missing the edit: %v", next)
	}
	if len(current) != 0 {
		t.Error("Apply must not mutate the caller's map")
	}
}

func TestEditorApplyIdempotent(t *testing.T) {
	e, w, l := newTestEditor(0)
	current := Assignments{}

	_, next, err := e.Apply(current, "2026-01-05", []string{"A"})
	if err != nil {
		t.Fatalf("First apply: %v", err)
	}
	outcome, _, err := e.Apply(next, "2026-01-05", []string{"A"})
	if err != nil {
		t.Fatalf("Second apply: %v", err)
	}
	if outcome != Unchanged {
		t.Errorf("Second identical apply should be Unchanged, got %v", outcome)
	}
	if w.writes != 1 || l.appends != 1 {
		t.Errorf("Identical re-apply caused extra writes: %d writes, %d entries", w.writes, l.appends)
	}
}

func TestEditorApplyEmptyListRemovesKey(t *testing.T) {
	e, w, _ := newTestEditor(0)
	current := Assignments{"2026-01-05": {"A"}}

	outcome, next, err := e.Apply(current, "2026-01-05", nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if outcome != Saved {
		t.Errorf("Clearing an assigned day should save, got %v", outcome)
	}
	if _, ok := next["2026-01-05"]; ok {
		t.Error("Empty list should remove the key entirely")
	}
	if _, ok := w.last["2026-01-05"]; ok {
		t.Error("Persisted map should not contain the cleared key")
	}
}

func TestEditorApplyEmptyOnUnassignedDayIsNoop(t *testing.T) {
	e, w, l := newTestEditor(0)

	outcome, _, err := e.Apply(Assignments{}, "2026-01-05", []string{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if outcome != Unchanged || w.writes != 0 || l.appends != 0 {
		t.Error("Clearing an already-empty day must not write or log")
	}
}

func TestEditorApplyValidation(t *testing.T) {
	tests := []struct {
		name     string
		proposed []string
		wantErr  error
	}{
		{"unknown worker", []string{"A", "Z"}, ErrUnknownWorker},
		{"duplicate worker", []string{"A", "A"}, ErrDuplicateWorker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, w, l := newTestEditor(0)
			_, _, err := e.Apply(Assignments{}, "2026-01-05", tt.proposed)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if w.writes != 0 || l.appends != 0 {
				t.Error("Rejected proposal must not write or log")
			}
		})
	}
}

func TestEditorApplyBadDateKey(t *testing.T) {
	e, _, _ := newTestEditor(0)
	if _, _, err := e.Apply(Assignments{}, "05.01.2026", []string{"A"}); err == nil {
		t.Error("Expected error for non-ISO date key")
	}
}

func TestEditorApplyCapRejects(t *testing.T) {
	e, w, _ := newTestEditor(2)

	_, _, err := e.Apply(Assignments{}, "2026-01-05", []string{"A", "B", "C"})
	if !errors.Is(err, ErrTooManyWorkers) {
		t.Fatalf("Expected ErrTooManyWorkers, got %v", err)
	}
	if w.writes != 0 {
		t.Error("Over-cap proposal must be rejected, not truncated")
	}

	// At the cap is fine
	if _, _, err := e.Apply(Assignments{}, "2026-01-05", []string{"A", "B"}); err != nil {
		t.Errorf("Apply at cap: %v", err)
	}
}

func TestEditorApplyUncappedAcceptsThree(t *testing.T) {
	e, _, _ := newTestEditor(0)
	outcome, next, err := e.Apply(Assignments{}, "2026-01-05", []string{"A", "B", "C"})
	if err != nil || outcome != Saved {
		t.Fatalf("Uncapped apply: outcome=%v err=%v", outcome, err)
	}
	if len(next.Get("2026-01-05")) != 3 {
		t.Error("Uncapped variant should accept all three workers unchanged")
	}
}

func TestEditorApplyStoreFailure(t *testing.T) {
	e, w, l := newTestEditor(0)
	w.err = errors.New("backend unreachable")
	current := Assignments{"2026-01-05": {"A"}}

	outcome, next, err := e.Apply(current, "2026-01-05", []string{"B"})
	if err == nil {
		t.Fatal("Expected store failure to surface")
	}
	if outcome != Unchanged {
		t.Errorf("Failed save must report Unchanged, got %v", outcome)
	}
	if !EqualList(next.Get("2026-01-05"), []string{"A"}) {
		t.Error("Prior state must stand after a failed save")
	}
	if l.appends != 0 {
		t.Error("Failed save must not produce an audit entry")
	}
}

func TestEditorApplyAuditFailureDoesNotMaskSuccess(t *testing.T) {
	e, w, l := newTestEditor(0)
	l.err = errors.New("log disk full")

	outcome, _, err := e.Apply(Assignments{}, "2026-01-05", []string{"A"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if outcome != Saved || w.writes != 1 {
		t.Error("A failed audit append must not undo a confirmed save")
	}
}
