package roster

import (
	"fmt"
	"time"
)

// GridCell is one cell of a Sunday-first month grid. Blank cells pad the
// first and last week so every row holds exactly seven cells. Cells are
// derived per render and never persisted.
type GridCell struct {
	Blank    bool     `json:"blank"`
	Key      string   `json:"key,omitempty"`
	Day      int      `json:"day,omitempty"`
	Weekday  int      `json:"weekday"`
	DayOff   bool     `json:"dayOff"`
	Today    bool     `json:"today"`
	Holiday  string   `json:"holiday,omitempty"`
	Workers  []string `json:"workers,omitempty"`
	date     time.Time
}

// Date returns the cell's calendar date (zero for blank cells).
func (c GridCell) Date() time.Time { return c.date }

// MonthSpan returns the first and last day of the given month.
// The last day is one day before the first day of the following month,
// rolling into the next year for December.
func MonthSpan(year int, month time.Month) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return first, last
}

// MonthGrid builds the cell sequence for one month: leading blanks so day 1
// lands on its weekday column (Sunday first), the month's days, and trailing
// blanks completing the final week. The cell count is always the smallest
// multiple of seven covering the month.
//
// An out-of-range month is a caller bug and panics.
func MonthGrid(year int, month time.Month) []GridCell {
	if month < time.January || month > time.December {
		panic(fmt.Sprintf("roster: invalid month %d", int(month)))
	}

	first, last := MonthSpan(year, month)
	offset := int(first.Weekday()) // Sunday=0, so this is the leading pad
	days := last.Day()
	total := ((offset + days + 6) / 7) * 7

	cells := make([]GridCell, 0, total)
	for i := 0; i < total; i++ {
		day := i - offset + 1
		if day < 1 || day > days {
			cells = append(cells, GridCell{Blank: true, Weekday: i % 7})
			continue
		}
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		cells = append(cells, GridCell{
			Key:     DateKey(d),
			Day:     day,
			Weekday: i % 7,
			date:    d,
		})
	}
	return cells
}
