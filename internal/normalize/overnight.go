// ABOUTME: Overnight span resolution: combines dates with clock times.
// ABOUTME: Rolls the end timestamp past midnight when the interval wraps.
package normalize

import (
	"strings"
	"time"
)

// Clock is a time-of-day without a date.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (or "HH:MM:SS", seconds ignored).
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return Clock{}, &ParseError{Input: s, Kind: "clock"}
}

// On combines the clock with a calendar date in the date's location.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

// String renders the clock as HH:MM.
func (c Clock) String() string {
	return c.On(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)).Format("15:04")
}

// Span is the outcome of resolving a (date, start clock, end clock) triple.
// Start and End are nil when either clock was missing; Duration then carries
// forward whatever the record previously stored.
type Span struct {
	Start    *time.Time
	End      *time.Time
	Duration *float64 // hours, 2-decimal
}

// ResolveOvernight combines date with the two clocks. An end on or before
// the start means the interval crosses midnight, so the end advances one
// calendar day. prevDuration is returned untouched when either clock is
// missing; a record with unresolvable times is not dropped.
func ResolveOvernight(date time.Time, start, end *Clock, prevDuration *float64) Span {
	if start == nil || end == nil {
		return Span{Duration: prevDuration}
	}
	s := start.On(date)
	e := end.On(date)
	if !e.After(s) {
		e = e.AddDate(0, 0, 1)
	}
	d := RoundHours(e.Sub(s).Hours())
	return Span{Start: &s, End: &e, Duration: &d}
}
