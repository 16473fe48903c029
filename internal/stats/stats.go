// ABOUTME: Summary statistics over the sleep log.
// ABOUTME: Averages, median bedtime, consistency score, chronotype.
package stats

import (
	"math"
	"sort"

	"github.com/hweilin/sleeplog/internal/models"
	"github.com/hweilin/sleeplog/internal/normalize"
)

// Chronotype classifies a sleeper by mid-sleep clock time.
type Chronotype string

const (
	ChronotypeEarlyBird    Chronotype = "early_bird"
	ChronotypeIntermediate Chronotype = "intermediate"
	ChronotypeNightOwl     Chronotype = "night_owl"
	ChronotypeUnknown      Chronotype = "unknown"
)

// Summary aggregates the whole log.
type Summary struct {
	Records          int
	AvgDurationHours float64
	AvgScore         float64
	AvgCycles        float64
	MedianBedtime    string // HH:MM
	// ConsistencyScore is 0-100, derived from bedtime spread: 100 means
	// the same bedtime every night, 0 a spread of four hours or more.
	ConsistencyScore float64
	Chronotype       Chronotype
}

// Compute builds a summary from the record set. Records without a start
// time still contribute their duration; everything else needs the clock.
func Compute(recs []*models.SleepRecord) Summary {
	var s Summary

	var durSum float64
	var durN int
	var scoreSum, scoreN int
	var cycleSum, cycleN int
	var bedtimes []float64 // minutes, late-evening coherent
	var midSleeps []float64

	for _, rec := range recs {
		s.Records++
		if rec.SleepDuration != nil {
			durSum += *rec.SleepDuration
			durN++
		}
		if rec.SleepScore != nil {
			scoreSum += *rec.SleepScore
			scoreN++
		}
		if rec.SleepCycle != nil {
			cycleSum += *rec.SleepCycle
			cycleN++
		}
		if !rec.StartTime.IsZero() {
			bedtimes = append(bedtimes, coherentMinutes(normalize.MinutesSinceMidnight(rec.StartTime)))
			if !rec.EndTime.IsZero() {
				mid := rec.StartTime.Add(rec.EndTime.Sub(rec.StartTime) / 2)
				midSleeps = append(midSleeps, float64(normalize.MinutesSinceMidnight(mid)))
			}
		}
	}

	if durN > 0 {
		s.AvgDurationHours = normalize.RoundHours(durSum / float64(durN))
	}
	if scoreN > 0 {
		s.AvgScore = math.Round(float64(scoreSum)/float64(scoreN)*10) / 10
	}
	if cycleN > 0 {
		s.AvgCycles = math.Round(float64(cycleSum)/float64(cycleN)*10) / 10
	}

	if len(bedtimes) > 0 {
		s.MedianBedtime = clockString(median(bedtimes))
		s.ConsistencyScore = consistency(bedtimes)
	}
	s.Chronotype = classify(midSleeps)
	return s
}

// coherentMinutes shifts after-midnight bedtimes past 1440 so that 23:50
// and 00:10 sit 20 minutes apart instead of nearly a full day.
func coherentMinutes(m int) float64 {
	if m < 12*60 {
		return float64(m + 24*60)
	}
	return float64(m)
}

func clockString(m float64) string {
	total := int(math.Round(m)) % (24 * 60)
	c := normalize.Clock{Hour: total / 60, Minute: total % 60}
	return c.String()
}

func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// consistency maps bedtime standard deviation onto 0-100: zero spread is a
// perfect 100, 240 minutes or more scores 0.
func consistency(bedtimes []float64) float64 {
	if len(bedtimes) < 2 {
		return 100
	}
	mean := 0.0
	for _, b := range bedtimes {
		mean += b
	}
	mean /= float64(len(bedtimes))

	variance := 0.0
	for _, b := range bedtimes {
		variance += (b - mean) * (b - mean)
	}
	sd := math.Sqrt(variance / float64(len(bedtimes)))

	score := 100 * (1 - sd/240)
	if score < 0 {
		score = 0
	}
	return math.Round(score*10) / 10
}

// classify buckets the median mid-sleep time: before 03:00 is an early
// bird, after 05:00 a night owl.
func classify(midSleeps []float64) Chronotype {
	if len(midSleeps) == 0 {
		return ChronotypeUnknown
	}
	m := median(midSleeps)
	switch {
	case m < 3*60:
		return ChronotypeEarlyBird
	case m > 5*60:
		return ChronotypeNightOwl
	default:
		return ChronotypeIntermediate
	}
}
