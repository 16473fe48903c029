// ABOUTME: Tests for timestamp parsing and zone normalization.
// ABOUTME: Covers naive, UTC-sourced, and date-only inputs plus failure cases.
package normalize

import (
	"errors"
	"testing"
	"time"
)

func taipei(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestParseLocalNaive(t *testing.T) {
	loc := taipei(t)

	tests := []struct {
		input string
		want  string
	}{
		{"2025-03-01 23:30:00", "2025-03-01 23:30:00"},
		{"2025-03-01T23:30:00", "2025-03-01 23:30:00"},
		{"2025-03-01 23:30", "2025-03-01 23:30:00"},
		{"  2025-03-01 23:30:00  ", "2025-03-01 23:30:00"},
		{"2025-03-01", "2025-03-01 00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLocalNaive(tt.input, loc)
			if err != nil {
				t.Fatalf("ParseLocalNaive(%q) error: %v", tt.input, err)
			}
			if got.Format("2006-01-02 15:04:05") != tt.want {
				t.Errorf("got %s, want %s", got.Format("2006-01-02 15:04:05"), tt.want)
			}
			if got.Location() != loc {
				t.Errorf("location = %v, want %v", got.Location(), loc)
			}
		})
	}
}

func TestParseLocalNaiveInvalid(t *testing.T) {
	loc := taipei(t)

	for _, input := range []string{"", "garbage", "25:99:00"} {
		_, err := ParseLocalNaive(input, loc)
		if err == nil {
			t.Errorf("ParseLocalNaive(%q) expected error", input)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseLocalNaive(%q) error type = %T, want *ParseError", input, err)
		}
	}
}

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestParseLocalNaiveAmbiguousDSTOverlap(t *testing.T) {
	loc := newYork(t)

	// 2025-11-02 01:30 occurs twice in New York: once in EDT, once an hour
	// of real time later in EST. The naive input cannot say which.
	_, err := ParseLocalNaive("2025-11-02 01:30:00", loc)
	if err == nil {
		t.Fatal("expected error for twice-occurring wall clock")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.Kind != "ambiguous timestamp" {
		t.Errorf("Kind = %q, want %q", pe.Kind, "ambiguous timestamp")
	}

	// Readings outside the overlap parse normally on the same day.
	got, err := ParseLocalNaive("2025-11-02 03:30:00", loc)
	if err != nil {
		t.Fatalf("ParseLocalNaive after overlap: %v", err)
	}
	if got.Format("2006-01-02 15:04:05") != "2025-11-02 03:30:00" {
		t.Errorf("got %s", got.Format("2006-01-02 15:04:05"))
	}
}

func TestAmbiguous(t *testing.T) {
	nyc := newYork(t)
	tpe := taipei(t)

	tests := []struct {
		name  string
		input string
		loc   *time.Location
		want  bool
	}{
		{"fall-back overlap", "2025-11-02 01:30:00", nyc, true},
		{"just before overlap", "2025-11-02 00:59:00", nyc, false},
		{"after overlap", "2025-11-02 02:30:00", nyc, false},
		{"no DST in zone", "2025-11-02 01:30:00", tpe, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := time.Parse("2006-01-02 15:04:05", tt.input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := Ambiguous(raw, tt.loc); got != tt.want {
				t.Errorf("Ambiguous(%s, %v) = %v, want %v", tt.input, tt.loc, got, tt.want)
			}
		})
	}
}

func TestParseUTCConvertsToLocal(t *testing.T) {
	loc := taipei(t)

	// Taipei is UTC+8 year-round.
	got, err := ParseUTC("2025-03-01 16:00:00", loc)
	if err != nil {
		t.Fatalf("ParseUTC error: %v", err)
	}
	want := "2025-03-02 00:00:00"
	if got.Format("2006-01-02 15:04:05") != want {
		t.Errorf("got %s, want %s", got.Format("2006-01-02 15:04:05"), want)
	}
}

func TestParseDate(t *testing.T) {
	loc := taipei(t)

	tests := []struct {
		input string
		want  string
	}{
		{"2025-03-01", "2025-03-01"},
		{"2025/03/01", "2025-03-01"},
		{"03/01/2025", "2025-03-01"},
		{"2025-03-01 23:30:00", "2025-03-01"}, // full timestamp tolerated
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input, loc)
			if err != nil {
				t.Fatalf("ParseDate(%q) error: %v", tt.input, err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("got %s, want %s", got.Format("2006-01-02"), tt.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("expected midnight, got %s", got.Format("15:04:05"))
			}
		})
	}
}

func TestMinutesSinceMidnight(t *testing.T) {
	loc := taipei(t)

	tests := []struct {
		clock string
		want  int
	}{
		{"00:00", 0},
		{"01:30", 90},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		ts, err := ParseLocalNaive("2025-03-01 "+tt.clock, loc)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if got := MinutesSinceMidnight(ts); got != tt.want {
			t.Errorf("MinutesSinceMidnight(%s) = %d, want %d", tt.clock, got, tt.want)
		}
	}
}

func TestMidnight(t *testing.T) {
	loc := taipei(t)

	ts, _ := ParseLocalNaive("2025-03-01 23:30:45", loc)
	got := Midnight(ts)
	if got.Format("2006-01-02 15:04:05") != "2025-03-01 00:00:00" {
		t.Errorf("Midnight = %s", got.Format("2006-01-02 15:04:05"))
	}
	if got.Location() != loc {
		t.Errorf("location changed to %v", got.Location())
	}
}
