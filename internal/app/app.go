package app

import (
	"net/http"
	"sync"
	"time"

	"github.com/haneul-services/work-roster/internal/roster"
	"github.com/haneul-services/work-roster/internal/store"
)

// App wires the board together: configuration, roster, store backend,
// audit log, classifier and editor. It also owns the rendering session's
// assignment snapshot, a disposable read-through copy of the store,
// marked stale after every write and re-read after SnapshotTTL.
type App struct {
	Cfg        *Config
	Roster     roster.Roster
	Store      store.Store
	Audit      *store.AuditLog
	Classifier *roster.Classifier
	Editor     *roster.Editor
	Gate       *Gate

	IndexHTML []byte
	EditHTML  []byte

	mu       sync.RWMutex
	snapshot roster.Assignments
	loadedAt time.Time
	stale    bool
}

// New assembles the application.
func New(cfg *Config, r roster.Roster, st store.Store, audit *store.AuditLog, cl *roster.Classifier, gate *Gate) *App {
	return &App{
		Cfg:        cfg,
		Roster:     r,
		Store:      st,
		Audit:      audit,
		Classifier: cl,
		Editor: &roster.Editor{
			Store:     st,
			Log:       audit,
			Roster:    r,
			MaxPerDay: cfg.MaxPerDay,
		},
		Gate:  gate,
		stale: true,
	}
}

// Assignments returns the session snapshot, re-reading the store when the
// snapshot is stale or older than SnapshotTTL. Load never fails hard: a
// broken backend yields an empty board, not an error page.
func (a *App) Assignments() roster.Assignments {
	a.mu.RLock()
	if !a.stale && time.Since(a.loadedAt) < SnapshotTTL {
		snap := a.snapshot
		a.mu.RUnlock()
		return snap
	}
	a.mu.RUnlock()

	loaded, _ := a.Store.Load()

	a.mu.Lock()
	a.snapshot = loaded
	a.loadedAt = time.Now()
	a.stale = false
	a.mu.Unlock()
	return loaded
}

// replaceSnapshot installs the map returned by a confirmed store write.
func (a *App) replaceSnapshot(next roster.Assignments) {
	a.mu.Lock()
	a.snapshot = next
	a.loadedAt = time.Now()
	a.stale = false
	a.mu.Unlock()
}

// MarkStale forces the next read to go back to the store. Any code path
// that cannot guarantee freshness (e.g. after an external-medium write by
// another process) must call this rather than trust the snapshot.
func (a *App) MarkStale() {
	a.mu.Lock()
	a.stale = true
	a.mu.Unlock()
}

// Routes registers the HTTP API on mux. Mutation and log-viewing routes
// sit behind the admin gate.
func (a *App) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/", a.ServeIndex)
	mux.HandleFunc("/edit", a.ServeEdit)
	mux.HandleFunc("/api/config", a.GetConfig)
	mux.HandleFunc("/api/grid", a.HandleGrid)
	mux.HandleFunc("/api/assignments", a.HandleAssignments)
	mux.HandleFunc("/api/stats", a.HandleStats)
	mux.HandleFunc("/api/download", a.HandleDownload)
	mux.HandleFunc("/api/subscribe/", a.HandleSubscribe)
	mux.HandleFunc("/api/log", a.Gate.Require(a.HandleAuditLog))
}
