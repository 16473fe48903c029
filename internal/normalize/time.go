// ABOUTME: Timestamp parsing and zone normalization for sleep records.
// ABOUTME: Converts UTC-sourced and naive inputs into local wall-clock times.
package normalize

import (
	"fmt"
	"strings"
	"time"
)

// ParseError reports an input string that could not be parsed as a date or
// time under any attempted layout.
type ParseError struct {
	Input string
	Kind  string // "timestamp", "ambiguous timestamp", "date", "clock", "number"
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %q", e.Kind, e.Input)
}

// Layouts attempted when parsing timestamps, most specific first.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ParseLocalNaive parses s as a local wall-clock timestamp in loc. The input
// carries no zone of its own; it already represents local time.
func ParseLocalNaive(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ParseError{Input: s, Kind: "timestamp"}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			pinned := Localize(t, loc)
			if Ambiguous(pinned, loc) {
				// Fall-back DST overlap: the reading occurred twice, and
				// nothing in the input says which. Unresolvable.
				return time.Time{}, &ParseError{Input: s, Kind: "ambiguous timestamp"}
			}
			return pinned, nil
		}
	}
	return time.Time{}, &ParseError{Input: s, Kind: "timestamp"}
}

// ParseUTC parses s as a UTC timestamp and converts it to local wall-clock
// time in loc. Device exports store UTC; everything downstream is local.
func ParseUTC(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ParseError{Input: s, Kind: "timestamp"}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, &ParseError{Input: s, Kind: "timestamp"}
}

// ParseDate parses s as a calendar date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ParseError{Input: s, Kind: "date"}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	// Tolerate a full timestamp where a date was expected.
	if t, err := ParseLocalNaive(s, loc); err == nil {
		return Midnight(t), nil
	}
	return time.Time{}, &ParseError{Input: s, Kind: "date"}
}

// Localize pins a wall-clock reading to loc. Nonexistent local times (spring
// DST gaps) shift forward to the time the clock actually showed next;
// time.Date already normalizes that way, so the round trip below only
// re-reads the clock fields.
func Localize(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// Ambiguous reports whether the wall-clock reading of t occurs twice in loc
// (fall-back DST overlap). Callers treat ambiguous times as unresolvable.
func Ambiguous(t time.Time, loc *time.Location) bool {
	pinned := Localize(t, loc)
	// time.Date pins an overlapping wall clock to its first occurrence, so
	// the repeat sits an hour of real time later. Check both directions in
	// case the value arrived already pinned to the second occurrence.
	for _, d := range []time.Duration{time.Hour, -time.Hour} {
		shifted := pinned.Add(d)
		if shifted.Hour() == pinned.Hour() && shifted.Minute() == pinned.Minute() {
			return true
		}
	}
	return false
}

// Midnight truncates t to the start of its calendar day in its location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MinutesSinceMidnight maps a timestamp onto the 0-1439 clock scale used by
// the forecaster.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
