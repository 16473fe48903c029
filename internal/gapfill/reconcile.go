// ABOUTME: Reconciliation of edited calendar rows into the record store.
// ABOUTME: Updates in place on identity match, inserts otherwise, then persists.
package gapfill

import (
	"fmt"
	"time"

	"github.com/hweilin/sleeplog/internal/models"
	"github.com/hweilin/sleeplog/internal/normalize"
	"github.com/hweilin/sleeplog/internal/store"
)

// Result summarizes a reconciliation pass.
type Result struct {
	Inserted int
	Updated  int
	Skipped  int
}

// Changed reports whether the pass mutated the store.
func (r Result) Changed() bool { return r.Inserted > 0 || r.Updated > 0 }

// Reconcile merges edited calendar rows back into the store.
//
// Blank rows are untouched slots and are skipped. Each remaining row's
// (date, start, end) resolves through the overnight rule; the resulting
// (start_time, end_time) pair is the exact-match identity key. A match
// updates only the fields that are present and differ, bumping update_time;
// no match inserts a fresh record. The store is rewritten in full, sorted,
// only when something actually changed.
//
// Known fragility, kept on purpose: editing a row's start time orphans the
// old record instead of correcting it, since identity is exact (start, end)
// equality.
func Reconcile(st *store.Store, edited []Candidate, now time.Time) (Result, error) {
	existing, err := st.Load()
	if err != nil {
		return Result{}, fmt.Errorf("load store: %w", err)
	}

	index := make(map[models.Key]*models.SleepRecord, len(existing))
	for _, rec := range existing {
		if rec.HasTimes() {
			index[rec.Key()] = rec
		}
	}

	var res Result
	for i := range edited {
		row := &edited[i]
		if row.IsBlank() {
			res.Skipped++
			continue
		}

		span := resolveRow(row)
		if span.Start == nil || span.End == nil {
			// Times unresolvable: nothing to match against.
			res.Skipped++
			continue
		}

		key := models.Key{Start: *span.Start, End: *span.End}
		if rec, ok := index[key]; ok {
			if updateRecord(rec, row, span.Duration) {
				rec.UpdateTime = now
				res.Updated++
			} else {
				res.Skipped++
			}
			continue
		}

		rec := models.NewRecord(*span.Start, *span.End, now)
		rec.PhysicalRecovery = row.PhysicalRecovery
		rec.MentalRecovery = row.MentalRecovery
		rec.SleepCycle = row.SleepCycle
		rec.SleepScore = row.SleepScore
		rec.SleepDuration = span.Duration
		existing = append(existing, rec)
		index[key] = rec
		res.Inserted++
	}

	if !res.Changed() {
		return res, nil
	}
	if err := st.Write(existing); err != nil {
		return res, err
	}
	return res, nil
}

// resolveRow runs the row's clocks through the overnight rule. The row's
// pre-populated duration is the carry-forward value when recomputation is
// not possible.
func resolveRow(row *Candidate) normalize.Span {
	var start, end *normalize.Clock
	if c, err := normalize.ParseClock(row.Start); err == nil && row.Start != "" {
		start = &c
	}
	if c, err := normalize.ParseClock(row.End); err == nil && row.End != "" {
		end = &c
	}
	return normalize.ResolveOvernight(row.Date, start, end, row.SleepDuration)
}

// updateRecord applies the edited fields onto rec, returning true when
// anything changed. Absent edited values never clear stored ones.
func updateRecord(rec *models.SleepRecord, row *Candidate, duration *float64) bool {
	changed := false
	changed = setInt(&rec.PhysicalRecovery, row.PhysicalRecovery) || changed
	changed = setInt(&rec.MentalRecovery, row.MentalRecovery) || changed
	changed = setInt(&rec.SleepCycle, row.SleepCycle) || changed
	changed = setInt(&rec.SleepScore, row.SleepScore) || changed
	// A nil recomputed duration keeps whatever the record already stores.
	if duration != nil {
		changed = setFloat(&rec.SleepDuration, duration) || changed
	}
	return changed
}

func setInt(dst **int, v *int) bool {
	if v == nil {
		return false
	}
	if *dst != nil && **dst == *v {
		return false
	}
	val := *v
	*dst = &val
	return true
}

func setFloat(dst **float64, v *float64) bool {
	if v == nil {
		return false
	}
	if *dst != nil && **dst == *v {
		return false
	}
	val := *v
	*dst = &val
	return true
}
