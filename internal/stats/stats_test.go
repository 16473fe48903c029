// ABOUTME: Tests for sleep-log summary statistics.
// ABOUTME: Covers averages, coherent bedtimes, consistency, and chronotype.
package stats

import (
	"testing"
	"time"

	"github.com/hweilin/sleeplog/internal/models"
)

func testLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func night(t *testing.T, loc *time.Location, start, end string) *models.SleepRecord {
	t.Helper()
	s, err := time.ParseInLocation("2006-01-02 15:04", start, loc)
	if err != nil {
		t.Fatalf("parse %q: %v", start, err)
	}
	e, err := time.ParseInLocation("2006-01-02 15:04", end, loc)
	if err != nil {
		t.Fatalf("parse %q: %v", end, err)
	}
	return models.NewRecord(s, e, s)
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	if s.Records != 0 {
		t.Errorf("records = %d", s.Records)
	}
	if s.Chronotype != ChronotypeUnknown {
		t.Errorf("chronotype = %s, want unknown", s.Chronotype)
	}
	if s.MedianBedtime != "" {
		t.Errorf("median bedtime = %q, want empty", s.MedianBedtime)
	}
}

func TestComputeAverages(t *testing.T) {
	loc := testLoc(t)

	a := night(t, loc, "2025-03-01 23:00", "2025-03-02 06:00")
	a.SleepDuration = models.FloatPtr(7)
	a.SleepScore = models.IntPtr(80)
	a.SleepCycle = models.IntPtr(4)
	b := night(t, loc, "2025-03-02 23:00", "2025-03-03 07:00")
	b.SleepDuration = models.FloatPtr(8)
	b.SleepScore = models.IntPtr(85)
	c := night(t, loc, "2025-03-03 23:00", "2025-03-04 06:00")
	// c has no optional fields; must not drag averages down.

	s := Compute([]*models.SleepRecord{a, b, c})
	if s.Records != 3 {
		t.Errorf("records = %d, want 3", s.Records)
	}
	if s.AvgDurationHours != 7.5 {
		t.Errorf("avg duration = %v, want 7.5", s.AvgDurationHours)
	}
	if s.AvgScore != 82.5 {
		t.Errorf("avg score = %v, want 82.5", s.AvgScore)
	}
	if s.AvgCycles != 4 {
		t.Errorf("avg cycles = %v, want 4", s.AvgCycles)
	}
}

func TestComputeMedianBedtimeCoherent(t *testing.T) {
	loc := testLoc(t)

	// 23:50 and 00:10 straddle midnight; the median must be 00:00, not noon.
	recs := []*models.SleepRecord{
		night(t, loc, "2025-03-01 23:50", "2025-03-02 07:00"),
		night(t, loc, "2025-03-03 00:10", "2025-03-03 07:30"),
	}

	s := Compute(recs)
	if s.MedianBedtime != "00:00" {
		t.Errorf("median bedtime = %s, want 00:00", s.MedianBedtime)
	}
}

func TestComputeConsistency(t *testing.T) {
	loc := testLoc(t)

	same := []*models.SleepRecord{
		night(t, loc, "2025-03-01 23:00", "2025-03-02 06:00"),
		night(t, loc, "2025-03-02 23:00", "2025-03-03 06:00"),
	}
	if s := Compute(same); s.ConsistencyScore != 100 {
		t.Errorf("identical bedtimes score = %v, want 100", s.ConsistencyScore)
	}

	wild := []*models.SleepRecord{
		night(t, loc, "2025-03-01 20:00", "2025-03-02 04:00"),
		night(t, loc, "2025-03-03 04:00", "2025-03-03 11:00"),
	}
	if s := Compute(wild); s.ConsistencyScore != 0 {
		t.Errorf("eight-hour spread score = %v, want 0", s.ConsistencyScore)
	}
}

func TestComputeChronotype(t *testing.T) {
	loc := testLoc(t)

	tests := []struct {
		name       string
		start, end string
		want       Chronotype
	}{
		{"early bird", "2025-03-01 21:30", "2025-03-02 05:00", ChronotypeEarlyBird},     // mid 01:15
		{"intermediate", "2025-03-01 23:30", "2025-03-02 07:00", ChronotypeIntermediate}, // mid 03:15
		{"night owl", "2025-03-02 02:00", "2025-03-02 10:00", ChronotypeNightOwl},        // mid 06:00
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compute([]*models.SleepRecord{night(t, loc, tt.start, tt.end)})
			if s.Chronotype != tt.want {
				t.Errorf("chronotype = %s, want %s", s.Chronotype, tt.want)
			}
		})
	}
}
