// ABOUTME: SleepRecord model and identity key for the sleep log.
// ABOUTME: Defines the canonical column set shared by the CSV store and exports.
package models

import (
	"fmt"
	"time"
)

// TimeLayout is the local-naive timestamp format used everywhere a record
// crosses a file boundary. No zone suffix: stored values are wall-clock
// times in the single configured zone.
const TimeLayout = "2006-01-02 15:04:05"

// DateLayout formats calendar dates.
const DateLayout = "2006-01-02"

// Columns is the canonical column order of the persisted store.
var Columns = []string{
	"start_time", "end_time",
	"physical_recovery", "mental_recovery",
	"sleep_cycle", "sleep_score",
	"sleep_duration", "create_time", "update_time",
}

// SleepRecord is one logged sleep interval.
//
// StartTime and EndTime are local-naive wall-clock values. A zero time means
// the field could not be resolved from its source; such records are kept
// (their duration may still be useful) but excluded from forecasting.
// Optional integer and float fields are nil when absent.
type SleepRecord struct {
	StartTime        time.Time `json:"start_time" yaml:"start_time"`
	EndTime          time.Time `json:"end_time" yaml:"end_time"`
	PhysicalRecovery *int      `json:"physical_recovery,omitempty" yaml:"physical_recovery,omitempty"`
	MentalRecovery   *int      `json:"mental_recovery,omitempty" yaml:"mental_recovery,omitempty"`
	SleepCycle       *int      `json:"sleep_cycle,omitempty" yaml:"sleep_cycle,omitempty"`
	SleepScore       *int      `json:"sleep_score,omitempty" yaml:"sleep_score,omitempty"`
	SleepDuration    *float64  `json:"sleep_duration,omitempty" yaml:"sleep_duration,omitempty"`
	CreateTime       time.Time `json:"create_time" yaml:"create_time"`
	UpdateTime       time.Time `json:"update_time" yaml:"update_time"`
}

// Key identifies a record for merge purposes. Two records with the same
// (start, end) pair are the same night: reconciliation updates in place
// rather than inserting a duplicate.
type Key struct {
	Start time.Time
	End   time.Time
}

// Key returns the record's merge identity.
func (r *SleepRecord) Key() Key {
	return Key{Start: r.StartTime, End: r.EndTime}
}

// String renders the key in the form used by the sync layer.
func (k Key) String() string {
	return fmt.Sprintf("%s|%s", k.Start.Format(TimeLayout), k.End.Format(TimeLayout))
}

// HasTimes reports whether both interval endpoints resolved.
func (r *SleepRecord) HasTimes() bool {
	return !r.StartTime.IsZero() && !r.EndTime.IsZero()
}

// NewRecord creates a record with create/update stamped to now.
func NewRecord(start, end time.Time, now time.Time) *SleepRecord {
	return &SleepRecord{
		StartTime:  start,
		EndTime:    end,
		CreateTime: now,
		UpdateTime: now,
	}
}

// IntPtr returns a pointer to v. Convenience for optional fields.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }
