package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/haneul-services/work-roster/internal/roster"
	"github.com/haneul-services/work-roster/internal/store"
)

// Constants
const (
	DefaultPort     = 8080
	DefaultYear     = 2026
	DefaultZone     = "Asia/Seoul"
	DefaultWeekend  = "Sat,Sun"
	DefaultBackend  = store.BackendFile
	DefaultDataFile = "assignments.json"
	DefaultAudit    = "audit_log.json"
	DefaultSQLite   = "work_roster.db"

	// SnapshotTTL bounds how long a rendering session may serve the
	// in-process assignment copy before re-reading the store.
	SnapshotTTL = time.Minute

	// Error messages
	ErrInvalidMonth      = "Invalid month"
	ErrInvalidDateFormat = "Invalid date format"
	ErrInvalidFormat     = "Invalid format"
	ErrInternalServer    = "Internal server error"
	ErrFailedToSave      = "Failed to save assignments"

	// ICS constants
	ICSProductID = "-//HaneulServices//WorkRoster//KR"
	ICSTimezone  = "Asia/Seoul"
)

// WeekdayLabels are the Sunday-first weekday names used on the board and
// in exports.
var WeekdayLabels = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// Config carries everything main needs to assemble the service.
type Config struct {
	Port      int
	Year      int
	Zone      *time.Location
	Weekend   map[time.Weekday]bool
	MaxPerDay int

	Backend    string
	DataFile   string
	AuditFile  string
	SQLitePath string
	SheetURL   string
	SheetTTL   time.Duration

	RosterFile  string
	HolidayFile string

	// Passphrase is the shared admin secret; empty means the Argon2id
	// auth file (or open dev mode) decides.
	Passphrase string
}

// LoadConfig reads configuration from the environment, loading a .env
// file first when one is present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not load .env file")
	}

	cfg := &Config{
		Port:        getEnvAsInt("PORT", DefaultPort),
		Year:        getEnvAsInt("ROSTER_YEAR", DefaultYear),
		MaxPerDay:   getEnvAsInt("MAX_PER_DAY", 0),
		Backend:     getEnv("STORE_BACKEND", DefaultBackend),
		DataFile:    getEnv("DATA_FILE", DefaultDataFile),
		AuditFile:   getEnv("AUDIT_FILE", DefaultAudit),
		SQLitePath:  getEnv("SQLITE_PATH", DefaultSQLite),
		SheetURL:    getEnv("SHEET_URL", ""),
		RosterFile:  getEnv("ROSTER_FILE", ""),
		HolidayFile: getEnv("HOLIDAY_FILE", ""),
		Passphrase:  getEnv("ADMIN_PASSPHRASE", ""),
	}

	zone, err := time.LoadLocation(getEnv("ROSTER_TZ", DefaultZone))
	if err != nil {
		return nil, fmt.Errorf("invalid ROSTER_TZ: %w", err)
	}
	cfg.Zone = zone

	weekend, err := roster.ParseWeekend(getEnv("WEEKEND_DAYS", DefaultWeekend))
	if err != nil {
		return nil, fmt.Errorf("invalid WEEKEND_DAYS: %w", err)
	}
	cfg.Weekend = weekend

	cfg.SheetTTL = time.Duration(getEnvAsInt("SHEET_CACHE_TTL", 0)) * time.Second

	switch cfg.Backend {
	case store.BackendFile, store.BackendSQLite:
	case store.BackendSheet:
		if cfg.SheetURL == "" {
			return nil, fmt.Errorf("STORE_BACKEND=sheet requires SHEET_URL")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
	}

	if cfg.MaxPerDay < 0 {
		return nil, fmt.Errorf("MAX_PER_DAY must not be negative")
	}

	return cfg, nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}
	return defaultVal
}
