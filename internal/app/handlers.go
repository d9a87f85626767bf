package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/haneul-services/work-roster/internal/roster"
)

// ServeIndex serves the board interface HTML
func (a *App) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(a.IndexHTML); err != nil {
		logrus.WithError(err).Error("error writing index HTML")
	}
}

// ServeEdit serves the admin editor HTML
func (a *App) ServeEdit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(a.EditHTML); err != nil {
		logrus.WithError(err).Error("error writing edit HTML")
	}
}

// GetConfig returns the application configuration
func (a *App) GetConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	config := map[string]interface{}{
		"year":          a.Cfg.Year,
		"workers":       a.Roster.Names(),
		"colors":        a.Roster.Colors(),
		"weekdayLabels": WeekdayLabels,
		"maxPerDay":     a.Cfg.MaxPerDay,
		"adminGate":     a.Gate.Enabled(),
		"holidays":      a.Classifier.Holidays,
	}
	WriteJSON(w, config)
}

// HandleGrid returns the classified month grid with assignments.
// Query param: month (1-12, optional, defaults to the current month)
func (a *App) HandleGrid(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	month, ok := a.monthParam(r)
	if !ok {
		http.Error(w, ErrInvalidMonth, http.StatusBadRequest)
		return
	}

	cells := roster.MonthGrid(a.Cfg.Year, month)
	a.Classifier.Classify(cells, a.Assignments())

	WriteJSON(w, map[string]interface{}{
		"year":  a.Cfg.Year,
		"month": int(month),
		"cells": cells,
	})
}

// HandleAssignments serves the raw month map (GET) and applies an admin
// edit (POST, gated).
func (a *App) HandleAssignments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		month, ok := a.monthParam(r)
		if !ok {
			http.Error(w, ErrInvalidMonth, http.StatusBadRequest)
			return
		}
		WriteJSON(w, a.Assignments().Month(a.Cfg.Year, month))
	case http.MethodPost:
		a.Gate.Require(a.postAssignment)(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (a *App) postAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date    string   `json:"date"`
		Workers []string `json:"workers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := roster.ParseKey(req.Date); err != nil {
		http.Error(w, ErrInvalidDateFormat, http.StatusBadRequest)
		return
	}

	outcome, next, err := a.Editor.Apply(a.Assignments(), req.Date, req.Workers)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrTooManyWorkers):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, roster.ErrUnknownWorker), errors.Is(err, roster.ErrDuplicateWorker):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			// Store write failed: the mutation did not take effect and
			// the prior state stands. Tell the admin to retry later.
			logrus.WithError(err).WithField("date", req.Date).Error("assignment save failed")
			http.Error(w, ErrFailedToSave, http.StatusBadGateway)
		}
		return
	}

	status := "unchanged"
	if outcome == roster.Saved {
		a.replaceSnapshot(next)
		status = "ok"
	}
	WriteJSON(w, map[string]string{"status": status})
}

// HandleStats returns per-worker counts for one month.
// Query params: month (1-12), worker (optional filter)
func (a *App) HandleStats(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	month, ok := a.monthParam(r)
	if !ok {
		http.Error(w, ErrInvalidMonth, http.StatusBadRequest)
		return
	}
	filter := r.URL.Query().Get("worker")
	if filter != "" && !a.Roster.Contains(filter) {
		http.Error(w, "Unknown worker", http.StatusBadRequest)
		return
	}

	counts := roster.MonthCounts(a.Roster, a.Assignments(), a.Cfg.Year, month, filter)
	WriteJSON(w, map[string]interface{}{
		"year":   a.Cfg.Year,
		"month":  int(month),
		"counts": counts,
	})
}

// HandleAuditLog returns the retained audit entries, most recent first.
func (a *App) HandleAuditLog(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, a.Audit.Recent())
}

// HandleDownload exports one month's roster in CSV, XLSX or JSON format
func (a *App) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	month, ok := a.monthParam(r)
	if !ok {
		http.Error(w, ErrInvalidMonth, http.StatusBadRequest)
		return
	}

	rows := a.MonthRows(month)

	switch r.URL.Query().Get("format") {
	case "csv":
		GenerateCSV(w, int(month), rows)
	case "xlsx":
		GenerateXLSX(w, int(month), rows)
	case "json":
		GenerateJSON(w, a.Cfg.Year, int(month), rows)
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
	}
}

// HandleSubscribe serves an ICS feed of one worker's duty days.
// URL: /api/subscribe/{worker}
func (a *App) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	worker := strings.TrimPrefix(r.URL.Path, "/api/subscribe/")
	if !a.Roster.Contains(worker) {
		http.Error(w, "Unknown worker", http.StatusNotFound)
		return
	}

	GenerateWorkerICS(w, worker, a.Assignments())
}
