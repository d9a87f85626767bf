package roster

import (
	"testing"
	"time"
)

func TestMonthGridJanuary2026(t *testing.T) {
	// 2026-01-01 is a Thursday: four blanks (Sun-Wed) precede day 1,
	// and 4+31=35 cells make exactly five weeks.
	cells := MonthGrid(2026, time.January)

	if len(cells) != 35 {
		t.Fatalf("Expected 35 cells, got %d", len(cells))
	}

	for i := 0; i < 4; i++ {
		if !cells[i].Blank {
			t.Errorf("Cell %d should be blank", i)
		}
	}
	if cells[4].Blank || cells[4].Day != 1 {
		t.Errorf("Cell 4 should be day 1, got blank=%v day=%d", cells[4].Blank, cells[4].Day)
	}
	if cells[4].Key != "2026-01-01" {
		t.Errorf("Expected key 2026-01-01, got %s", cells[4].Key)
	}
	if cells[34].Blank || cells[34].Day != 31 {
		t.Errorf("Last cell should be day 31, got blank=%v day=%d", cells[34].Blank, cells[34].Day)
	}
}

func TestMonthGridCoversAllMonths(t *testing.T) {
	for year := 2024; year <= 2027; year++ {
		for m := time.January; m <= time.December; m++ {
			cells := MonthGrid(year, m)

			if len(cells)%7 != 0 {
				t.Errorf("%d-%02d: cell count %d is not a multiple of 7", year, m, len(cells))
			}

			first, last := MonthSpan(year, m)
			offset := int(first.Weekday())
			days := last.Day()

			// Minimum multiple of 7 covering [offset, offset+days)
			want := ((offset + days + 6) / 7) * 7
			if len(cells) != want {
				t.Errorf("%d-%02d: expected %d cells, got %d", year, m, want, len(cells))
			}

			// The non-blank cells must be days 1..last in order
			day := 1
			for _, c := range cells {
				if c.Blank {
					continue
				}
				if c.Day != day {
					t.Fatalf("%d-%02d: expected day %d, got %d", year, m, day, c.Day)
				}
				if c.Weekday != int(c.Date().Weekday()) {
					t.Errorf("%d-%02d-%02d: weekday column %d does not match weekday %d",
						year, m, c.Day, c.Weekday, int(c.Date().Weekday()))
				}
				day++
			}
			if day != days+1 {
				t.Errorf("%d-%02d: grid holds %d days, month has %d", year, m, day-1, days)
			}
		}
	}
}

func TestMonthSpanDecemberRollsOver(t *testing.T) {
	first, last := MonthSpan(2026, time.December)
	if first.Format(DateKeyFormat) != "2026-12-01" {
		t.Errorf("Expected 2026-12-01, got %s", first.Format(DateKeyFormat))
	}
	if last.Format(DateKeyFormat) != "2026-12-31" {
		t.Errorf("Expected 2026-12-31, got %s", last.Format(DateKeyFormat))
	}
}

func TestMonthSpanLeapFebruary(t *testing.T) {
	_, last := MonthSpan(2024, time.February)
	if last.Day() != 29 {
		t.Errorf("Expected 29 days in Feb 2024, got %d", last.Day())
	}
	_, last = MonthSpan(2026, time.February)
	if last.Day() != 28 {
		t.Errorf("Expected 28 days in Feb 2026, got %d", last.Day())
	}
}

func TestMonthGridInvalidMonthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for month 13")
		}
	}()
	MonthGrid(2026, time.Month(13))
}
