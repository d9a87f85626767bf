package roster

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestKoreanHolidays2026(t *testing.T) {
	holidays := KoreanHolidays(2026)

	wantLabels := map[string]string{
		"2026-01-01": "신정",
		"2026-02-17": "설날",
		"2026-03-01": "삼일절",
		"2026-09-25": "추석",
		"2026-12-25": "성탄절",
	}
	for key, label := range wantLabels {
		if got := holidays[key]; got != label {
			t.Errorf("holidays[%s] = %q, want %q", key, got, label)
		}
	}

	d, _ := ParseKey("2026-01-02")
	if _, ok := holidays.Lookup(d); ok {
		t.Error("2026-01-02 should not be a holiday")
	}
}

func TestKoreanHolidaysUnknownYearKeepsFixedDays(t *testing.T) {
	holidays := KoreanHolidays(2099)
	if holidays["2099-01-01"] != "신정" {
		t.Error("Fixed holidays should apply outside the lunar table range")
	}
	for key := range holidays {
		if key[5:7] == "02" {
			t.Errorf("No lunar holiday should be present for 2099, found %s", key)
		}
	}
}

func TestLoadHolidayFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.json")
	content := `{"2026-07-17": "제헌절"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	table, err := LoadHolidayFile(path)
	if err != nil {
		t.Fatalf("LoadHolidayFile: %v", err)
	}
	d := time.Date(2026, 7, 17, 0, 0, 0, 0, time.UTC)
	if label, ok := table.Lookup(d); !ok || label != "제헌절" {
		t.Errorf("Lookup(2026-07-17) = %q, %v", label, ok)
	}

	base := KoreanHolidays(2026)
	base.Merge(table)
	if base["2026-07-17"] != "제헌절" {
		t.Error("Merge should overlay the file table")
	}
}

func TestLoadHolidayFileRejectsBadKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.json")
	if err := os.WriteFile(path, []byte(`{"July 17": "nope"}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadHolidayFile(path); err == nil {
		t.Error("Expected error for non-ISO key")
	}
}
