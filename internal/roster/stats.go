package roster

import "time"

// MonthCounts computes per-worker occurrence counts over one month of
// assignments. Every roster worker is present in the result, zero-filled
// when unassigned; a worker assigned on ten days counts ten. A non-empty
// filter restricts the result to that single worker. Pure function.
func MonthCounts(r Roster, a Assignments, year int, month time.Month, filter string) map[string]int {
	counts := make(map[string]int, len(r))
	for _, w := range r {
		if filter != "" && w.Name != filter {
			continue
		}
		counts[w.Name] = 0
	}

	for _, workers := range a.Month(year, month) {
		for _, name := range workers {
			if _, ok := counts[name]; ok {
				counts[name]++
			}
		}
	}
	return counts
}
