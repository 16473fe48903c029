// ABOUTME: Sleep onset forecasting from historical start times.
// ABOUTME: Adjacent-pair kNN over minutes-since-midnight, rolled forward.
package forecast

import (
	"errors"
	"sort"
	"time"

	"github.com/hweilin/sleeplog/internal/models"
	"github.com/hweilin/sleeplog/internal/normalize"
)

// DefaultNeighbors is the default k for the regressor.
const DefaultNeighbors = 3

// ErrInsufficientData is returned when fewer than k+1 usable records exist.
// It is a structured outcome for the caller, never a fatal condition.
var ErrInsufficientData = errors.New("need more sleep records before forecasting")

// Result is a projected sleep window. Sleep and Wake are HH:MM clock
// strings; DurationHours is the median historical duration, 2-decimal.
type Result struct {
	Date          time.Time `json:"date"`
	Sleep         string    `json:"sleep"`
	Wake          string    `json:"wake"`
	DurationHours float64   `json:"duration"`
}

// Forecaster is a stateless predictor over the record history passed to each
// call; no model is persisted.
type Forecaster struct {
	K int
}

// New returns a Forecaster with the given neighbor count, defaulting to 3.
func New(k int) *Forecaster {
	if k <= 0 {
		k = DefaultNeighbors
	}
	return &Forecaster{K: k}
}

// NextSleep projects the next sleep onset from the last known start time and
// derives the wake time from the median historical duration.
func (f *Forecaster) NextSleep(recs []*models.SleepRecord) (Result, error) {
	model, usable, err := f.fit(recs)
	if err != nil {
		return Result{}, err
	}
	last := usable[len(usable)-1].StartTime
	next := rollOneStep(model, last)
	return buildResult(next, usable), nil
}

// ForDate rolls the single-step forecast forward, feeding each prediction
// back in as the next input, until the predicted date reaches or passes
// target. Uncertainty compounds with every step; this is a point estimate.
func (f *Forecaster) ForDate(recs []*models.SleepRecord, target time.Time) (Result, error) {
	model, usable, err := f.fit(recs)
	if err != nil {
		return Result{}, err
	}
	cur := usable[len(usable)-1].StartTime
	target = normalize.Midnight(target)
	for normalize.Midnight(cur).Before(target) {
		cur = rollOneStep(model, cur)
	}
	return buildResult(cur, usable), nil
}

// fit drops records without a start time, sorts chronologically, and trains
// on adjacent pairs: minutes-since-midnight of record i predicts record i+1.
// Short-range autocorrelation in bedtime habit, not calendar trend.
func (f *Forecaster) fit(recs []*models.SleepRecord) (*knnRegressor, []*models.SleepRecord, error) {
	k := f.K
	if k <= 0 {
		k = DefaultNeighbors
	}

	usable := make([]*models.SleepRecord, 0, len(recs))
	for _, rec := range recs {
		if !rec.StartTime.IsZero() {
			usable = append(usable, rec)
		}
	}
	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].StartTime.Before(usable[j].StartTime)
	})

	if len(usable) < k+1 {
		return nil, nil, ErrInsufficientData
	}

	minutes := make([]float64, len(usable))
	for i, rec := range usable {
		minutes[i] = float64(normalize.MinutesSinceMidnight(rec.StartTime))
	}
	xs := minutes[:len(minutes)-1]
	ys := minutes[1:]
	return fitKNN(xs, ys, k), usable, nil
}

// rollOneStep predicts the next onset clock time and pins it to the first
// calendar day that keeps the sequence strictly increasing.
func rollOneStep(model *knnRegressor, last time.Time) time.Time {
	lastMin := float64(normalize.MinutesSinceMidnight(last))
	nextMin := int(model.predict(lastMin)) % (24 * 60)
	h, m := nextMin/60, nextMin%60

	next := normalize.Midnight(last).Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	if !next.After(last) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func buildResult(next time.Time, usable []*models.SleepRecord) Result {
	dur := medianDuration(usable)
	wake := next.Add(time.Duration(dur * float64(time.Hour)))
	return Result{
		Date:          normalize.Midnight(next),
		Sleep:         next.Format("15:04"),
		Wake:          wake.Format("15:04"),
		DurationHours: normalize.RoundHours(dur),
	}
}

// medianDuration is the median stored duration across usable rows, skipping
// records that never resolved one.
func medianDuration(recs []*models.SleepRecord) float64 {
	var durs []float64
	for _, rec := range recs {
		if rec.SleepDuration != nil {
			durs = append(durs, *rec.SleepDuration)
		}
	}
	if len(durs) == 0 {
		return 0
	}
	sort.Float64s(durs)
	mid := len(durs) / 2
	if len(durs)%2 == 1 {
		return durs[mid]
	}
	return (durs[mid-1] + durs[mid]) / 2
}
