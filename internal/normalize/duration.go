// ABOUTME: Duration unit normalization for sleep records.
// ABOUTME: Detects minute-valued durations and converts them to hours.
package normalize

import "math"

// Duration fixes a duration whose unit is ambiguous. Device exports store
// minutes, user entries store hours; no plausible sleep lasts more than a
// day, so any value above 24 is minutes and is divided by 60.
func Duration(v float64) float64 {
	if v > 24 {
		return v / 60.0
	}
	return v
}

// RoundHours rounds a duration in hours to 2 decimals, the precision stored
// in the log.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
