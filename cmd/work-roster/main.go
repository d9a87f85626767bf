package main

import (
	"embed"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/haneul-services/work-roster/internal/app"
	"github.com/haneul-services/work-roster/internal/commands"
	"github.com/haneul-services/work-roster/internal/roster"
	"github.com/haneul-services/work-roster/internal/store"
)

//go:embed static/*
var staticFiles embed.FS

//go:embed static/index.html
var indexHTML []byte

//go:embed static/edit.html
var editHTML []byte

func main() {
	// Check for subcommands
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		commands.HashPassword(os.Args[2:])
		return
	}

	port := flag.Int("port", 0, "Port to listen on (overrides PORT)")
	flag.Parse()

	cfg, err := app.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}

	team := roster.DefaultRoster
	if cfg.RosterFile != "" {
		if team, err = roster.LoadRoster(cfg.RosterFile); err != nil {
			logrus.Fatalf("Failed to load roster: %v", err)
		}
	}

	holidays := roster.KoreanHolidays(cfg.Year)
	if cfg.HolidayFile != "" {
		extra, err := roster.LoadHolidayFile(cfg.HolidayFile)
		if err != nil {
			logrus.Fatalf("Failed to load holiday file: %v", err)
		}
		holidays.Merge(extra)
	}

	classifier := roster.NewClassifier(cfg.Zone, holidays)
	classifier.Weekend = cfg.Weekend

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		logrus.Fatalf("Failed to open %s backend: %v", cfg.Backend, err)
	}
	defer closeBackend()

	gate, err := app.LoadGate(cfg.Passphrase)
	if err != nil {
		logrus.Fatalf("Failed to load auth credentials: %v", err)
	}

	audit := store.OpenAuditLog(cfg.AuditFile)

	a := app.New(cfg, team, backend, audit, classifier, gate)
	a.IndexHTML = indexHTML
	a.EditHTML = editHTML

	mux := http.NewServeMux()
	a.Routes(mux)
	mux.Handle("/static/", http.FileServer(http.FS(staticFiles)))

	logrus.WithFields(logrus.Fields{
		"port":    cfg.Port,
		"year":    cfg.Year,
		"backend": cfg.Backend,
		"workers": len(team),
	}).Info("Starting work roster")

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), mux); err != nil {
		logrus.Fatal(err)
	}
}

// openBackend builds the configured assignment store. The returned close
// function is a no-op for backends without a connection to release.
func openBackend(cfg *app.Config) (store.Store, func(), error) {
	switch cfg.Backend {
	case store.BackendFile:
		return store.NewFileStore(cfg.DataFile), func() {}, nil
	case store.BackendSheet:
		return store.NewSheetStore(cfg.SheetURL, cfg.SheetTTL), func() {}, nil
	case store.BackendSQLite:
		s, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logrus.WithError(err).Error("Error closing database")
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
