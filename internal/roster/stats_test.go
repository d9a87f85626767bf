package roster

import (
	"testing"
	"time"
)

var statsRoster = Roster{
	{Name: "A", Color: "#111111"},
	{Name: "B", Color: "#222222"},
	{Name: "C", Color: "#333333"},
}

func TestMonthCounts(t *testing.T) {
	a := Assignments{
		"2026-01-05": {"A", "B"},
		"2026-01-12": {"A"},
	}

	counts := MonthCounts(statsRoster, a, 2026, time.January, "")

	want := map[string]int{"A": 2, "B": 1, "C": 0}
	if len(counts) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(counts))
	}
	for name, n := range want {
		if counts[name] != n {
			t.Errorf("counts[%s] = %d, want %d", name, counts[name], n)
		}
	}
}

func TestMonthCountsSumEqualsMemberships(t *testing.T) {
	a := Assignments{
		"2026-03-02": {"A", "B", "C"},
		"2026-03-09": {"B"},
		"2026-03-16": {"B", "C"},
		"2026-04-01": {"A"}, // other month, excluded
	}

	counts := MonthCounts(statsRoster, a, 2026, time.March, "")

	sum := 0
	for _, n := range counts {
		sum += n
	}
	if sum != 6 {
		t.Errorf("Count sum = %d, want 6 (date,worker) pairs in March", sum)
	}
}

func TestMonthCountsFilter(t *testing.T) {
	a := Assignments{
		"2026-01-05": {"A", "B"},
		"2026-01-12": {"A"},
	}

	counts := MonthCounts(statsRoster, a, 2026, time.January, "B")
	if len(counts) != 1 {
		t.Fatalf("Filtered counts should hold one worker, got %v", counts)
	}
	if counts["B"] != 1 {
		t.Errorf("counts[B] = %d, want 1", counts["B"])
	}
}

func TestMonthCountsEmptyInput(t *testing.T) {
	counts := MonthCounts(statsRoster, Assignments{}, 2026, time.January, "")
	for name, n := range counts {
		if n != 0 {
			t.Errorf("counts[%s] = %d, want 0 on empty input", name, n)
		}
	}
	if len(counts) != len(statsRoster) {
		t.Errorf("Every roster worker should be present, got %d of %d", len(counts), len(statsRoster))
	}
}

func TestMonthCountsIgnoresOffRosterNames(t *testing.T) {
	a := Assignments{"2026-01-05": {"A", "Z"}}
	counts := MonthCounts(statsRoster, a, 2026, time.January, "")
	if _, ok := counts["Z"]; ok {
		t.Error("Off-roster name must not appear in counts")
	}
	if counts["A"] != 1 {
		t.Errorf("counts[A] = %d, want 1", counts["A"])
	}
}
