package roster

import (
	"fmt"
	"time"
)

// DateKeyFormat is the canonical key layout for assignment dates.
const DateKeyFormat = "2006-01-02"

// Assignments maps a canonical date key (YYYY-MM-DD) to the ordered
// list of workers assigned that day. An empty list means the same as
// an absent key; Normalize folds the former into the latter.
type Assignments map[string][]string

// DateKey formats t as a canonical assignment key.
func DateKey(t time.Time) string {
	return t.Format(DateKeyFormat)
}

// ParseKey parses a canonical date key.
func ParseKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// Get returns the workers assigned to key, defaulting to an empty list.
func (a Assignments) Get(key string) []string {
	if ws, ok := a[key]; ok {
		return ws
	}
	return []string{}
}

// Clone returns a deep copy of the map.
func (a Assignments) Clone() Assignments {
	out := make(Assignments, len(a))
	for k, ws := range a {
		cp := make([]string, len(ws))
		copy(cp, ws)
		out[k] = cp
	}
	return out
}

// Normalize drops entries with empty worker lists.
func (a Assignments) Normalize() {
	for k, ws := range a {
		if len(ws) == 0 {
			delete(a, k)
		}
	}
}

// Month returns the subset of entries falling in the given year and month.
func (a Assignments) Month(year int, month time.Month) Assignments {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	out := make(Assignments)
	for k, ws := range a {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			cp := make([]string, len(ws))
			copy(cp, ws)
			out[k] = cp
		}
	}
	return out
}

// EqualList reports whether two worker lists are identical in order and content.
func EqualList(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
