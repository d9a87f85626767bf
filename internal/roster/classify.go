package roster

import (
	"fmt"
	"strings"
	"time"
)

// HolidayOracle reports whether a date is a designated public holiday.
type HolidayOracle interface {
	// Lookup returns the holiday label for t, or ok=false when t is an
	// ordinary day.
	Lookup(t time.Time) (label string, ok bool)
}

// Classifier decides, per date, whether it is a day off and whether it is
// "today". The clock and timezone are injected so classification stays
// deterministic under test; IsToday must be evaluated fresh per render.
type Classifier struct {
	Zone     *time.Location
	Now      func() time.Time
	Weekend  map[time.Weekday]bool
	Holidays HolidayOracle
}

// NewClassifier returns a classifier with the default weekend (Saturday
// and Sunday) and the system clock.
func NewClassifier(zone *time.Location, holidays HolidayOracle) *Classifier {
	return &Classifier{
		Zone:     zone,
		Now:      time.Now,
		Weekend:  map[time.Weekday]bool{time.Saturday: true, time.Sunday: true},
		Holidays: holidays,
	}
}

// IsDayOff reports whether t falls on a weekly closed day or a holiday.
func (c *Classifier) IsDayOff(t time.Time) bool {
	if c.Weekend[t.Weekday()] {
		return true
	}
	_, ok := c.Holidays.Lookup(t)
	return ok
}

// HolidayLabel returns the holiday name for t, or "".
func (c *Classifier) HolidayLabel(t time.Time) string {
	label, _ := c.Holidays.Lookup(t)
	return label
}

// IsToday reports whether t is the current date in the configured zone.
func (c *Classifier) IsToday(t time.Time) bool {
	now := c.Now().In(c.Zone)
	return t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day()
}

// Classify fills the derived fields of a month grid from the current
// assignments. The today check runs against the live clock on every call.
func (c *Classifier) Classify(cells []GridCell, a Assignments) {
	for i := range cells {
		if cells[i].Blank {
			continue
		}
		d := cells[i].date
		cells[i].DayOff = c.IsDayOff(d)
		cells[i].Today = c.IsToday(d)
		cells[i].Holiday = c.HolidayLabel(d)
		cells[i].Workers = a.Get(cells[i].Key)
	}
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeekend parses a comma-separated weekday list (e.g. "Sat,Sun") into
// the weekly closed-day set. One deployment variant closes Sunday and Monday
// instead of the usual weekend, so this stays configurable.
func ParseWeekend(s string) (map[time.Weekday]bool, error) {
	out := make(map[time.Weekday]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		wd, ok := weekdayNames[part]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		out[wd] = true
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("weekend list is empty")
	}
	return out, nil
}
