// Package store holds the persistence backends for the assignment map
// and the audit log. Every backend writes the full map on mutation: none
// of the backing mediums has a partial-update primitive matching the
// row-per-date shape, and edit volume is a handful per session.
package store

import (
	"github.com/haneul-services/work-roster/internal/roster"
)

// Store is the assignment persistence contract. Load reconstructs the map
// from the backing medium and must cold-start (empty map, nil error) when
// the medium is missing, unreachable or malformed; a broken backend must
// never prevent the board from rendering. SetAll failures are surfaced so
// the caller never claims a mutation succeeded when it did not.
type Store interface {
	Load() (roster.Assignments, error)
	SetAll(roster.Assignments) error
}

// Backend names accepted by configuration.
const (
	BackendFile   = "file"
	BackendSheet  = "sheet"
	BackendSQLite = "sqlite"
)
