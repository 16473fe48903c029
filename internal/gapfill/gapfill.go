// ABOUTME: Calendar gap-fill grid: template generation and reconciliation.
// ABOUTME: Matches edited rows to stored records by (start, end) identity.
package gapfill

import (
	"time"

	"github.com/hweilin/sleeplog/internal/models"
	"github.com/hweilin/sleeplog/internal/normalize"
	"github.com/hweilin/sleeplog/internal/store"
)

// Candidate is one editable calendar row: a date with at most one record's
// fields, clock times rendered HH:MM, blanks where the calendar has gaps.
type Candidate struct {
	Date             time.Time
	Start            string // "HH:MM" or ""
	End              string
	PhysicalRecovery *int
	MentalRecovery   *int
	SleepCycle       *int
	SleepScore       *int
	SleepDuration    *float64
}

// IsBlank reports whether every editable field is empty. Blank rows are
// untouched calendar slots and are skipped by Reconcile.
func (c *Candidate) IsBlank() bool {
	return c.Start == "" && c.End == "" &&
		c.PhysicalRecovery == nil && c.MentalRecovery == nil &&
		c.SleepCycle == nil && c.SleepScore == nil && c.SleepDuration == nil
}

// Window builds the editable grid for the contiguous date range [from, to],
// newest first. When several records share a date, the earliest start wins
// as the candidate; later naps stay in the store untouched.
func Window(recs []*models.SleepRecord, from, to time.Time) []Candidate {
	from = normalize.Midnight(from)
	to = normalize.Midnight(to)

	// Earliest record per date. Records are scanned in start order so the
	// first hit for a date is the one that wins.
	sorted := make([]*models.SleepRecord, len(recs))
	copy(sorted, recs)
	store.SortByStart(sorted)

	byDate := make(map[time.Time]*models.SleepRecord)
	for _, rec := range sorted {
		if rec.StartTime.IsZero() {
			continue
		}
		d := normalize.Midnight(rec.StartTime)
		if _, seen := byDate[d]; !seen {
			byDate[d] = rec
		}
	}

	var out []Candidate
	for d := to; !d.Before(from); d = d.AddDate(0, 0, -1) {
		c := Candidate{Date: d}
		if rec, ok := byDate[d]; ok {
			c.Start = rec.StartTime.Format("15:04")
			if !rec.EndTime.IsZero() {
				c.End = rec.EndTime.Format("15:04")
			}
			c.PhysicalRecovery = rec.PhysicalRecovery
			c.MentalRecovery = rec.MentalRecovery
			c.SleepCycle = rec.SleepCycle
			c.SleepScore = rec.SleepScore
			c.SleepDuration = rec.SleepDuration
		}
		out = append(out, c)
	}
	return out
}
