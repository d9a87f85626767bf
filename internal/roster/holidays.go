package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// HolidayTable is a static date → label lookup satisfying HolidayOracle.
type HolidayTable map[string]string

// Lookup implements HolidayOracle.
func (t HolidayTable) Lookup(d time.Time) (string, bool) {
	label, ok := t[DateKey(d)]
	return label, ok
}

// KoreanHolidays returns the South Korean public holidays for the given
// year. Fixed national days are computed; lunar-calendar days (Seollal,
// Buddha's Birthday, Chuseok) and substitute holidays are tabled per
// supported year. For years outside the table only the fixed days apply.
func KoreanHolidays(year int) HolidayTable {
	holidays := make(HolidayTable)

	// Fixed holidays
	holidays[formatDate(year, 1, 1)] = "신정"
	holidays[formatDate(year, 3, 1)] = "삼일절"
	holidays[formatDate(year, 5, 5)] = "어린이날"
	holidays[formatDate(year, 6, 6)] = "현충일"
	holidays[formatDate(year, 8, 15)] = "광복절"
	holidays[formatDate(year, 10, 3)] = "개천절"
	holidays[formatDate(year, 10, 9)] = "한글날"
	holidays[formatDate(year, 12, 25)] = "성탄절"

	// Lunar holidays and substitutes (no closed-form Gregorian formula)
	switch year {
	case 2024:
		holidays["2024-02-09"] = "설날 연휴"
		holidays["2024-02-10"] = "설날"
		holidays["2024-02-11"] = "설날 연휴"
		holidays["2024-02-12"] = "대체공휴일"
		holidays["2024-05-06"] = "대체공휴일"
		holidays["2024-05-15"] = "부처님오신날"
		holidays["2024-09-16"] = "추석 연휴"
		holidays["2024-09-17"] = "추석"
		holidays["2024-09-18"] = "추석 연휴"
	case 2025:
		holidays["2025-01-28"] = "설날 연휴"
		holidays["2025-01-29"] = "설날"
		holidays["2025-01-30"] = "설날 연휴"
		holidays["2025-03-03"] = "대체공휴일"
		holidays["2025-05-05"] = "부처님오신날"
		holidays["2025-05-06"] = "대체공휴일"
		holidays["2025-10-05"] = "추석 연휴"
		holidays["2025-10-06"] = "추석"
		holidays["2025-10-07"] = "추석 연휴"
		holidays["2025-10-08"] = "대체공휴일"
	case 2026:
		holidays["2026-02-16"] = "설날 연휴"
		holidays["2026-02-17"] = "설날"
		holidays["2026-02-18"] = "설날 연휴"
		holidays["2026-03-02"] = "대체공휴일"
		holidays["2026-05-24"] = "부처님오신날"
		holidays["2026-05-25"] = "대체공휴일"
		holidays["2026-08-17"] = "대체공휴일"
		holidays["2026-09-24"] = "추석 연휴"
		holidays["2026-09-25"] = "추석"
		holidays["2026-09-26"] = "추석 연휴"
		holidays["2026-10-05"] = "대체공휴일"
	case 2027:
		holidays["2027-02-06"] = "설날 연휴"
		holidays["2027-02-07"] = "설날"
		holidays["2027-02-08"] = "설날 연휴"
		holidays["2027-02-09"] = "대체공휴일"
		holidays["2027-05-13"] = "부처님오신날"
		holidays["2027-08-16"] = "대체공휴일"
		holidays["2027-09-14"] = "추석 연휴"
		holidays["2027-09-15"] = "추석"
		holidays["2027-09-16"] = "추석 연휴"
		holidays["2027-10-04"] = "대체공휴일"
	}

	return holidays
}

// LoadHolidayFile reads a holiday table from a JSON file mapping date keys
// to labels, for deployments outside the built-in locale or year range.
func LoadHolidayFile(path string) (HolidayTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holiday file: %w", err)
	}

	var t HolidayTable
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("invalid holiday file format: %w", err)
	}
	for key := range t {
		if _, err := ParseKey(key); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Merge overlays other onto t, other winning on conflicts.
func (t HolidayTable) Merge(other HolidayTable) {
	for k, v := range other {
		t[k] = v
	}
}

// formatDate formats a date as YYYY-MM-DD
func formatDate(year, month, day int) string {
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC).Format(DateKeyFormat)
}
