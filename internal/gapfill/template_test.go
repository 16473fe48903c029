// ABOUTME: Tests for gap-fill template CSV writing and reading.
// ABOUTME: Verifies schema, value rendering, and tolerant re-parsing.
package gapfill

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hweilin/sleeplog/internal/models"
)

func TestWriteTemplate(t *testing.T) {
	loc := testLoc(t)

	rows := []Candidate{
		{
			Date:       date(t, loc, "2025-03-02"),
			Start:      "23:00",
			End:        "06:30",
			SleepScore: models.IntPtr(85),
		},
		{Date: date(t, loc, "2025-03-01")},
	}

	var buf bytes.Buffer
	if err := WriteTemplate(&buf, rows); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "date_only,start_time,end_time,physical_recovery,mental_recovery,sleep_cycle,sleep_score,sleep_duration" {
		t.Errorf("header = %s", lines[0])
	}
	if lines[1] != "2025-03-02,23:00,06:30,,,,85," {
		t.Errorf("filled row = %s", lines[1])
	}
	if lines[2] != "2025-03-01,,,,,,," {
		t.Errorf("blank row = %s", lines[2])
	}
}

func TestReadEditedRoundTrip(t *testing.T) {
	loc := testLoc(t)

	rows := []Candidate{{
		Date:          date(t, loc, "2025-03-02"),
		Start:         "23:00",
		End:           "06:30",
		SleepScore:    models.IntPtr(85),
		SleepDuration: models.FloatPtr(7.5),
	}}

	var buf bytes.Buffer
	if err := WriteTemplate(&buf, rows); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}
	got, err := ReadEdited(&buf, loc)
	if err != nil {
		t.Fatalf("ReadEdited: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	row := got[0]
	if !row.Date.Equal(rows[0].Date) || row.Start != "23:00" || row.End != "06:30" {
		t.Errorf("round trip mangled row: %+v", row)
	}
	if row.SleepScore == nil || *row.SleepScore != 85 {
		t.Errorf("score = %v", row.SleepScore)
	}
	if row.SleepDuration == nil || *row.SleepDuration != 7.5 {
		t.Errorf("duration = %v", row.SleepDuration)
	}
}

func TestReadEditedDropsBadDates(t *testing.T) {
	loc := testLoc(t)

	csvData := "date_only,start_time,end_time\n" +
		"not-a-date,23:00,06:30\n" +
		"2025-03-02,23:00,06:30\n"

	got, err := ReadEdited(strings.NewReader(csvData), loc)
	if err != nil {
		t.Fatalf("ReadEdited: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected bad-date row dropped, got %d rows", len(got))
	}
}

func TestReadEditedMissingDateColumn(t *testing.T) {
	loc := testLoc(t)

	if _, err := ReadEdited(strings.NewReader("start_time,end_time\n23:00,06:30\n"), loc); err == nil {
		t.Error("expected error for grid without date_only")
	}
}

func TestReadEditedEmpty(t *testing.T) {
	loc := testLoc(t)

	got, err := ReadEdited(strings.NewReader(""), loc)
	if err != nil {
		t.Fatalf("ReadEdited: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}
