// ABOUTME: Export functionality for the sleep log.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hweilin/sleeplog/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData is the full export format for the sleep log.
type ExportData struct {
	Version    string                `json:"version" yaml:"version"`
	ExportedAt time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool       string                `json:"tool" yaml:"tool"`
	InstallID  string                `json:"install_id,omitempty" yaml:"install_id,omitempty"`
	Records    []*models.SleepRecord `json:"records" yaml:"records"`
}

// GetAllData retrieves everything for export, sorted by start time.
func (s *Store) GetAllData(installID string) (*ExportData, error) {
	recs, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	SortByStart(recs)
	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().In(s.loc),
		Tool:       "sleeplog",
		InstallID:  installID,
		Records:    recs,
	}, nil
}

// ExportJSON exports all records as indented JSON.
func (s *Store) ExportJSON(installID string) ([]byte, error) {
	data, err := s.GetAllData(installID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all records as YAML.
func (s *Store) ExportYAML(installID string) ([]byte, error) {
	data, err := s.GetAllData(installID)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ExportMarkdown exports records since the given time as a Markdown table.
// A zero since includes everything.
func (s *Store) ExportMarkdown(since time.Time) ([]byte, error) {
	recs, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	SortByStart(recs)

	var b strings.Builder
	b.WriteString("# Sleep Log\n\n")
	b.WriteString("| Start | End | Duration (h) | Score | Phys % | Ment % | Cycles |\n")
	b.WriteString("|-------|-----|--------------|-------|--------|--------|--------|\n")
	for _, rec := range recs {
		if !since.IsZero() && rec.StartTime.Before(since) {
			continue
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			mdTime(rec.StartTime), mdTime(rec.EndTime),
			mdFloat(rec.SleepDuration), mdInt(rec.SleepScore),
			mdInt(rec.PhysicalRecovery), mdInt(rec.MentalRecovery),
			mdInt(rec.SleepCycle)))
	}
	return []byte(b.String()), nil
}

func mdTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func mdInt(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d", *p)
}

func mdFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *p)
}
