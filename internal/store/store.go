// ABOUTME: CSV-backed canonical store for sleep records.
// ABOUTME: Handles source precedence, append-with-rewrite, and XDG paths.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hweilin/sleeplog/internal/models"
)

// File names inside the data directory. The cleaned override and the device
// export are consumed read-only; only the live log is ever written.
const (
	LogFile     = "sleep_log.csv"
	CleanedFile = "cleaned_sleep_data.csv"
	DeviceFile  = "device_sleep_export.csv"
)

// Store is the persisted collection of sleep records.
//
// Mutations are read-then-overwrite-whole-file: a crash mid-write can
// corrupt the log. Acceptable for a single-user, single-writer tool, and
// deliberately not papered over with locking.
type Store struct {
	dataDir string
	loc     *time.Location
}

// New creates a store rooted at dataDir, creating the directory if needed.
func New(dataDir string, loc *time.Location) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dataDir: dataDir, loc: loc}, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "sleeplog")
}

// Location returns the store's configured local zone.
func (s *Store) Location() *time.Location { return s.loc }

// LogPath returns the live append-log path.
func (s *Store) LogPath() string { return filepath.Join(s.dataDir, LogFile) }

// CleanedPath returns the hand-cleaned override path.
func (s *Store) CleanedPath() string { return filepath.Join(s.dataDir, CleanedFile) }

// DevicePath returns the device-export fallback path.
func (s *Store) DevicePath() string { return filepath.Join(s.dataDir, DeviceFile) }

// Load resolves the primary data source in fixed precedence order:
//
//  1. the hand-cleaned override file,
//  2. the live log (if non-empty),
//  3. the device export, converted from UTC with minute durations fixed,
//  4. an empty collection.
//
// Timestamps come back local-naive and durations in hours. Load itself does
// not guarantee order; sorting happens when the store is persisted.
func (s *Store) Load() ([]*models.SleepRecord, error) {
	if fileExists(s.CleanedPath()) {
		recs, err := readLog(s.CleanedPath(), s.loc)
		if err != nil {
			return nil, fmt.Errorf("read cleaned override: %w", err)
		}
		return recs, nil
	}
	if fileNonEmpty(s.LogPath()) {
		recs, err := readLog(s.LogPath(), s.loc)
		if err != nil {
			return nil, fmt.Errorf("read sleep log: %w", err)
		}
		return recs, nil
	}
	if fileExists(s.DevicePath()) {
		recs, err := readDeviceExport(s.DevicePath(), s.loc)
		if err != nil {
			return nil, fmt.Errorf("read device export: %w", err)
		}
		return recs, nil
	}
	return nil, nil
}

// Append loads the existing store, concatenates newRecords, sorts ascending
// by start_time, and overwrites the log in full. Missing optional fields
// stay nil and persist as blanks.
func (s *Store) Append(newRecords []*models.SleepRecord) error {
	existing, err := s.Load()
	if err != nil {
		return err
	}
	all := append(existing, newRecords...)
	return s.Write(all)
}

// Write persists the full record set, sorted ascending by start_time.
// Records with unresolved start times sort last so the log stays scannable.
func (s *Store) Write(recs []*models.SleepRecord) error {
	SortByStart(recs)
	f, err := os.Create(s.LogPath())
	if err != nil {
		return fmt.Errorf("write sleep log: %w", err)
	}
	if err := writeCSV(f, recs); err != nil {
		_ = f.Close()
		return fmt.Errorf("write sleep log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write sleep log: %w", err)
	}
	return nil
}

// Delete removes the live log file. Missing file is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.LogPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete sleep log: %w", err)
	}
	return nil
}

// SortByStart orders records ascending by start_time, unresolved starts last.
func SortByStart(recs []*models.SleepRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i].StartTime, recs[j].StartTime
		switch {
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		default:
			return a.Before(b)
		}
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func fileNonEmpty(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}
