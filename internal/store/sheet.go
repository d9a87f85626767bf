package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/haneul-services/work-roster/internal/roster"
)

const (
	defaultSheetTimeout = 10 * time.Second
	// DefaultSheetTTL bounds read traffic against the remote service;
	// within the window Load serves the in-process copy.
	DefaultSheetTTL = time.Minute
)

// sheetRow is one row of the remote tabular service: a date key and the
// comma-joined worker names for that day.
type sheetRow struct {
	Date    string `json:"date"`
	Workers string `json:"workers"`
}

// SheetStore persists the assignment map in a remote two-column tabular
// service. Reads go through a short-lived cache; writes PUT the complete
// row set and refresh the cache. When the service is unreachable, Load
// falls back to the stale cached copy if one exists, otherwise to an
// empty map.
type SheetStore struct {
	url    string
	client *http.Client
	ttl    time.Duration

	mu        sync.RWMutex
	cached    roster.Assignments
	fetchedAt time.Time
}

// NewSheetStore returns a store talking to the tabular service at url.
// A zero ttl selects DefaultSheetTTL.
func NewSheetStore(url string, ttl time.Duration) *SheetStore {
	if ttl == 0 {
		ttl = DefaultSheetTTL
	}
	return &SheetStore{
		url:    url,
		client: &http.Client{Timeout: defaultSheetTimeout},
		ttl:    ttl,
	}
}

// Load returns the assignment map, served from cache within the TTL.
func (s *SheetStore) Load() (roster.Assignments, error) {
	s.mu.RLock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.ttl {
		a := s.cached.Clone()
		s.mu.RUnlock()
		return a, nil
	}
	s.mu.RUnlock()

	a, err := s.fetch()
	if err != nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.cached != nil {
			logrus.WithError(err).Warn("sheet service unreachable, serving stale copy")
			return s.cached.Clone(), nil
		}
		logrus.WithError(err).Warn("sheet service unreachable, starting empty")
		return roster.Assignments{}, nil
	}

	s.mu.Lock()
	s.cached = a.Clone()
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return a, nil
}

// SetAll replaces every row of the remote sheet with the full map.
func (s *SheetStore) SetAll(a roster.Assignments) error {
	out := a.Clone()
	out.Normalize()

	rows := make([]sheetRow, 0, len(out))
	for date, workers := range out {
		rows = append(rows, sheetRow{Date: date, Workers: strings.Join(workers, ",")})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })

	body, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode sheet rows: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sheet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sheet service returned status %d", resp.StatusCode)
	}

	s.mu.Lock()
	s.cached = out
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return nil
}

// fetch GETs all rows from the remote service.
func (s *SheetStore) fetch() (roster.Assignments, error) {
	resp, err := s.client.Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet service returned status %d", resp.StatusCode)
	}

	var rows []sheetRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("sheet response malformed: %w", err)
	}

	a := make(roster.Assignments, len(rows))
	for _, row := range rows {
		if row.Date == "" || row.Workers == "" {
			continue
		}
		if _, err := roster.ParseKey(row.Date); err != nil {
			logrus.WithField("date", row.Date).Warn("sheet row has malformed date, skipping")
			continue
		}
		var workers []string
		for _, name := range strings.Split(row.Workers, ",") {
			if name = strings.TrimSpace(name); name != "" {
				workers = append(workers, name)
			}
		}
		if len(workers) > 0 {
			a[row.Date] = workers
		}
	}
	return a, nil
}
