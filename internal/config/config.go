// ABOUTME: Sleeplog configuration management: data dir, zone, gap-fill window.
// ABOUTME: JSON config under XDG config home, with an install ID minted once.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hweilin/sleeplog/internal/store"
)

// DefaultZone is the single local zone the tracker is hard-wired to unless
// the config overrides it. All stored timestamps are wall-clock in this zone.
const DefaultZone = "Asia/Taipei"

// DefaultGapFillStart anchors the editable calendar window.
const DefaultGapFillStart = "2025-01-01"

// Config stores sleeplog configuration.
type Config struct {
	// DataDir is the root directory for data storage. Supports ~ expansion.
	// Defaults to ~/.local/share/sleeplog.
	DataDir string `json:"data_dir,omitempty"`

	// Zone is the IANA name of the local zone (default Asia/Taipei).
	Zone string `json:"zone,omitempty"`

	// GapFillStart is the first date of the editable calendar window
	// (YYYY-MM-DD).
	GapFillStart string `json:"gap_fill_start,omitempty"`

	// InstallID identifies this installation in exports and sync payloads.
	// Minted on first save.
	InstallID string `json:"install_id,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return store.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// Location resolves the configured zone.
func (c *Config) Location() (*time.Location, error) {
	name := c.Zone
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", name, err)
	}
	return loc, nil
}

// GetGapFillStart returns the first date of the calendar window in loc.
func (c *Config) GetGapFillStart(loc *time.Location) (time.Time, error) {
	s := c.GapFillStart
	if s == "" {
		s = DefaultGapFillStart
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse gap_fill_start %q: %w", s, err)
	}
	return t, nil
}

// OpenStore creates the record store for the configured data dir and zone.
func (c *Config) OpenStore() (*store.Store, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return store.New(c.GetDataDir(), loc)
}

// EnsureInstallID mints and persists an install ID on first use.
func (c *Config) EnsureInstallID() (string, error) {
	if c.InstallID != "" {
		return c.InstallID, nil
	}
	c.InstallID = uuid.NewString()
	if err := c.Save(); err != nil {
		return "", fmt.Errorf("persist install id: %w", err)
	}
	return c.InstallID, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "sleeplog", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
