package roster

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Editor validation errors.
var (
	ErrUnknownWorker   = errors.New("worker is not on the roster")
	ErrDuplicateWorker = errors.New("worker listed twice for one day")
	ErrTooManyWorkers  = errors.New("too many workers for one day")
)

// Outcome tells the caller whether an edit changed anything.
type Outcome int

const (
	// Unchanged means the proposal matched the current list: no store
	// write, no audit entry.
	Unchanged Outcome = iota
	// Saved means the store was rewritten and the caller must refresh
	// its view.
	Saved
)

// ActionEdit labels assignment edits in the audit log.
const ActionEdit = "edit"

// AssignmentWriter persists a full replacement of the assignment map.
type AssignmentWriter interface {
	SetAll(Assignments) error
}

// AuditAppender records a successful mutation.
type AuditAppender interface {
	Append(date, action string, workers []string) error
}

// Editor validates and applies an admin's change to one date's worker
// list. Every successful change rewrites the full map and appends an
// audit entry. The proposed-equals-current short circuit is the only
// concurrency guard in the system: two admin sessions editing the same
// date race, and the later full-map write wins.
type Editor struct {
	Store  AssignmentWriter
	Log    AuditAppender
	Roster Roster

	// MaxPerDay caps the list length when positive; zero disables the
	// cap. Over-cap proposals are rejected, never truncated.
	MaxPerDay int
}

// Apply validates proposed against the roster and cap, and persists the
// change when it differs from the current list. On Saved the returned map
// is the new authoritative snapshot; on Unchanged it is current itself.
// A store failure leaves the prior state intact and is returned as-is.
func (e *Editor) Apply(current Assignments, dateKey string, proposed []string) (Outcome, Assignments, error) {
	if _, err := ParseKey(dateKey); err != nil {
		return Unchanged, current, err
	}

	seen := make(map[string]bool, len(proposed))
	for _, name := range proposed {
		if !e.Roster.Contains(name) {
			return Unchanged, current, fmt.Errorf("%w: %s", ErrUnknownWorker, name)
		}
		if seen[name] {
			return Unchanged, current, fmt.Errorf("%w: %s", ErrDuplicateWorker, name)
		}
		seen[name] = true
	}

	if e.MaxPerDay > 0 && len(proposed) > e.MaxPerDay {
		return Unchanged, current, fmt.Errorf("%w: %d > %d", ErrTooManyWorkers, len(proposed), e.MaxPerDay)
	}

	if EqualList(current.Get(dateKey), proposed) {
		return Unchanged, current, nil
	}

	next := current.Clone()
	if len(proposed) == 0 {
		delete(next, dateKey)
	} else {
		cp := make([]string, len(proposed))
		copy(cp, proposed)
		next[dateKey] = cp
	}

	if err := e.Store.SetAll(next); err != nil {
		return Unchanged, current, fmt.Errorf("failed to save assignments: %w", err)
	}

	if err := e.Log.Append(dateKey, ActionEdit, proposed); err != nil {
		// The mutation itself took effect; a log failure must not
		// roll it back or mask the success.
		logrus.WithError(err).WithField("date", dateKey).Warn("failed to append audit entry")
	}

	return Saved, next, nil
}
