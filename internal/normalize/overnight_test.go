// ABOUTME: Tests for overnight span resolution.
// ABOUTME: Covers midnight wrap, same-day intervals, and missing clocks.
package normalize

import (
	"testing"
	"time"
)

func clockPtr(t *testing.T, s string) *Clock {
	t.Helper()
	c, err := ParseClock(s)
	if err != nil {
		t.Fatalf("ParseClock(%q): %v", s, err)
	}
	return &c
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		wantHour int
		wantMin  int
		wantErr  bool
	}{
		{"23:30", 23, 30, false},
		{"06:15", 6, 15, false},
		{"6:15", 6, 15, false},
		{"23:30:45", 23, 30, false},
		{" 23:30 ", 23, 30, false},
		{"", 0, 0, true},
		{"nope", 0, 0, true},
	}

	for _, tt := range tests {
		c, err := ParseClock(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) error: %v", tt.input, err)
			continue
		}
		if c.Hour != tt.wantHour || c.Minute != tt.wantMin {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tt.input, c.Hour, c.Minute, tt.wantHour, tt.wantMin)
		}
	}
}

func TestResolveOvernight(t *testing.T) {
	loc := taipei(t)
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, loc)

	tests := []struct {
		name         string
		start, end   string
		wantStart    string
		wantEnd      string
		wantDuration float64
	}{
		{
			name:  "wraps midnight",
			start: "23:30", end: "06:15",
			wantStart:    "2025-03-01 23:30:00",
			wantEnd:      "2025-03-02 06:15:00",
			wantDuration: 6.75,
		},
		{
			name:  "same day nap",
			start: "13:00", end: "14:30",
			wantStart:    "2025-03-01 13:00:00",
			wantEnd:      "2025-03-01 14:30:00",
			wantDuration: 1.5,
		},
		{
			name:  "equal clocks roll a full day",
			start: "22:00", end: "22:00",
			wantStart:    "2025-03-01 22:00:00",
			wantEnd:      "2025-03-02 22:00:00",
			wantDuration: 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := ResolveOvernight(date, clockPtr(t, tt.start), clockPtr(t, tt.end), nil)
			if span.Start == nil || span.End == nil || span.Duration == nil {
				t.Fatal("expected fully resolved span")
			}
			if got := span.Start.Format("2006-01-02 15:04:05"); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := span.End.Format("2006-01-02 15:04:05"); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
			if *span.Duration != tt.wantDuration {
				t.Errorf("duration = %v, want %v", *span.Duration, tt.wantDuration)
			}
		})
	}
}

func TestResolveOvernightMissingClock(t *testing.T) {
	loc := taipei(t)
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, loc)
	prev := 7.25

	span := ResolveOvernight(date, nil, clockPtr(t, "06:15"), &prev)
	if span.Start != nil || span.End != nil {
		t.Error("expected nil endpoints when start clock missing")
	}
	if span.Duration == nil || *span.Duration != prev {
		t.Errorf("expected previous duration carried forward, got %v", span.Duration)
	}

	span = ResolveOvernight(date, clockPtr(t, "23:30"), nil, nil)
	if span.Start != nil || span.End != nil || span.Duration != nil {
		t.Error("expected empty span when end clock missing and no previous duration")
	}
}
