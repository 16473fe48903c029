// ABOUTME: Tests for JSON, YAML, and Markdown export of the sleep log.
// ABOUTME: Verifies envelope fields, record payloads, and the since filter.
package store

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hweilin/sleeplog/internal/models"
	"gopkg.in/yaml.v3"
)

func seedExportStore(t *testing.T) *Store {
	t.Helper()
	st := testStore(t)
	loc := st.Location()
	now := mustTime(t, loc, "2025-03-10 12:00:00")

	a := models.NewRecord(
		mustTime(t, loc, "2025-03-01 23:30:00"),
		mustTime(t, loc, "2025-03-02 06:15:00"), now)
	a.SleepScore = models.IntPtr(82)
	a.SleepDuration = models.FloatPtr(6.75)
	b := models.NewRecord(
		mustTime(t, loc, "2025-03-05 23:00:00"),
		mustTime(t, loc, "2025-03-06 07:00:00"), now)
	b.SleepDuration = models.FloatPtr(8)

	if err := st.Write([]*models.SleepRecord{a, b}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return st
}

func TestExportJSON(t *testing.T) {
	st := seedExportStore(t)

	out, err := st.ExportJSON("install-123")
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(out, &data); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if data.Version != "1.0" || data.Tool != "sleeplog" {
		t.Errorf("envelope = %s/%s, want 1.0/sleeplog", data.Version, data.Tool)
	}
	if data.InstallID != "install-123" {
		t.Errorf("install_id = %s", data.InstallID)
	}
	if len(data.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(data.Records))
	}
	if data.Records[0].SleepScore == nil || *data.Records[0].SleepScore != 82 {
		t.Errorf("first record score = %v, want 82", data.Records[0].SleepScore)
	}
}

func TestExportYAML(t *testing.T) {
	st := seedExportStore(t)

	out, err := st.ExportYAML("")
	if err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(out, &data); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if data["tool"] != "sleeplog" {
		t.Errorf("tool = %v, want sleeplog", data["tool"])
	}
	if strings.Contains(string(out), "install_id") {
		t.Error("empty install_id should be omitted")
	}
}

func TestExportMarkdownSinceFilter(t *testing.T) {
	st := seedExportStore(t)
	loc := st.Location()

	out, err := st.ExportMarkdown(mustTime(t, loc, "2025-03-03 00:00:00"))
	if err != nil {
		t.Fatalf("ExportMarkdown: %v", err)
	}
	md := string(out)
	if !strings.Contains(md, "# Sleep Log") {
		t.Error("missing title")
	}
	if strings.Contains(md, "2025-03-01") {
		t.Error("record before since cutoff leaked into export")
	}
	if !strings.Contains(md, "2025-03-05 23:00") {
		t.Error("record after cutoff missing from export")
	}
}
