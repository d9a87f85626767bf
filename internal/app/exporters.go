package app

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/haneul-services/work-roster/internal/roster"
)

// RosterRow is one day of the exported month roster.
type RosterRow struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Workers string `json:"workers"`
	Remark  string `json:"remark"`
}

// MonthRows builds the export rows for one month: every day of the month
// in order, with its weekday label, comma-joined workers and holiday
// remark.
func (a *App) MonthRows(month time.Month) []RosterRow {
	assignments := a.Assignments()
	first, last := roster.MonthSpan(a.Cfg.Year, month)

	rows := make([]RosterRow, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := roster.DateKey(d)
		rows = append(rows, RosterRow{
			Date:    key,
			Weekday: WeekdayLabels[int(d.Weekday())],
			Workers: strings.Join(assignments.Get(key), ", "),
			Remark:  a.Classifier.HolidayLabel(d),
		})
	}
	return rows
}

// GenerateCSV writes the month roster as a CSV download.
func GenerateCSV(w http.ResponseWriter, month int, rows []RosterRow) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=work_roster_%02d.csv", month))

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"날짜", "요일", "근무자", "비고"}); err != nil {
		logrus.WithError(err).Error("error writing CSV header")
		return
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Date, row.Weekday, row.Workers, row.Remark}); err != nil {
			logrus.WithError(err).Error("error writing CSV row")
			return
		}
	}
}

// GenerateJSON writes the month roster as a JSON download.
func GenerateJSON(w http.ResponseWriter, year, month int, rows []RosterRow) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=work_roster_%02d.json", month))
	WriteJSON(w, map[string]interface{}{
		"year":  year,
		"month": month,
		"days":  rows,
	})
}

const xlsxSheetName = "근무일정"

// GenerateXLSX writes the month roster as an Excel workbook, one row per
// day on a single sheet.
func GenerateXLSX(w http.ResponseWriter, month int, rows []RosterRow) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logrus.WithError(err).Error("error closing workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		logrus.WithError(err).Error("error naming sheet")
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
		return
	}

	header := []string{"날짜", "요일", "근무자", "비고"}
	for col, label := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(xlsxSheetName, cell, label); err != nil {
			logrus.WithError(err).Error("error writing header cell")
		}
	}
	for i, row := range rows {
		values := []string{row.Date, row.Weekday, row.Workers, row.Remark}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(xlsxSheetName, cell, v); err != nil {
				logrus.WithError(err).Error("error writing cell")
			}
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=work_roster_%02d.xlsx", month))
	if err := f.Write(w); err != nil {
		logrus.WithError(err).Error("error writing workbook")
	}
}

// GenerateWorkerICS serves an iCalendar subscription feed of one
// worker's duty days:
// - All-day events with stable UIDs so calendar apps update in place
// - METHOD:PUBLISH and a refresh interval header
// - No alarms (most calendar apps ignore them in subscriptions)
func GenerateWorkerICS(w http.ResponseWriter, worker string, assignments roster.Assignments) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")

	var keys []string
	for key, workers := range assignments {
		for _, name := range workers {
			if name == worker {
				keys = append(keys, key)
				break
			}
		}
	}
	sort.Strings(keys)

	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", ICSProductID)
	fmt.Fprintln(w, "METHOD:PUBLISH")
	fmt.Fprintf(w, "X-WR-CALNAME:근무일정 %s\n", worker)
	fmt.Fprintf(w, "X-WR-TIMEZONE:%s\n", ICSTimezone)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")
	fmt.Fprintln(w, "X-PUBLISHED-TTL:PT1H")

	for _, key := range keys {
		dutyDate, err := roster.ParseKey(key)
		if err != nil {
			continue
		}

		uid := fmt.Sprintf("%s-%s@work-roster", key, worker)

		fmt.Fprintln(w, "BEGIN:VEVENT")
		fmt.Fprintf(w, "UID:%s\n", uid)
		fmt.Fprintf(w, "DTSTAMP:%s\n", time.Now().UTC().Format("20060102T150405Z"))
		fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", dutyDate.Format("20060102"))
		fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", dutyDate.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(w, "SUMMARY:근무 %s\n", worker)
		fmt.Fprintf(w, "DESCRIPTION:%s 근무일\n", worker)
		fmt.Fprintln(w, "END:VEVENT")
	}

	fmt.Fprintln(w, "END:VCALENDAR")
}
