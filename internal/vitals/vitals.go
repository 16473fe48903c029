// ABOUTME: Read-only loaders for device heart-rate and stress exports.
// ABOUTME: Tolerates vendor column prefixes; bad rows are dropped, not fatal.
package vitals

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hweilin/sleeplog/internal/normalize"
	"github.com/hweilin/sleeplog/internal/store"
)

// HeartSample is one heart-rate reading.
type HeartSample struct {
	Time time.Time
	BPM  float64
}

// StressSample is one stress-score reading.
type StressSample struct {
	Time  time.Time
	Score float64
}

// LoadHeart reads a device heart-rate CSV. The exporter prefixes column
// names with its package path; matching is done on the trailing segment, so
// both "heart_rate" and "com.samsung.health.heart_rate.heart_rate" work.
// Rows with unparseable timestamps or rates are dropped; output is sorted
// by time ascending.
func LoadHeart(path string, loc *time.Location) ([]HeartSample, error) {
	rows, idx, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("read heart-rate export: %w", err)
	}
	timeCol := findColumn(idx, "create_time", "time", "start_time")
	rateCol := findColumn(idx, "heart_rate", "bpm")
	if timeCol < 0 || rateCol < 0 {
		return nil, fmt.Errorf("heart-rate export: missing time or rate column")
	}

	var out []HeartSample
	for _, row := range rows {
		t, err := normalize.ParseLocalNaive(field(row, timeCol), loc)
		if err != nil {
			continue
		}
		bpm, err := strconv.ParseFloat(field(row, rateCol), 64)
		if err != nil {
			continue
		}
		out = append(out, HeartSample{Time: t, BPM: bpm})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

// LoadStress reads a device stress CSV: start_time plus a score column.
// Rows with a missing score are dropped; output is sorted by time.
func LoadStress(path string, loc *time.Location) ([]StressSample, error) {
	rows, idx, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("read stress export: %w", err)
	}
	timeCol := findColumn(idx, "start_time", "time")
	scoreCol := findColumn(idx, "score", "stress_score")
	if timeCol < 0 || scoreCol < 0 {
		return nil, fmt.Errorf("stress export: missing time or score column")
	}

	var out []StressSample
	for _, row := range rows {
		t, err := normalize.ParseLocalNaive(field(row, timeCol), loc)
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(field(row, scoreCol), 64)
		if err != nil {
			continue
		}
		out = append(out, StressSample{Time: t, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func readTable(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, err
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[trimVendorPrefix(store.NormalizeColumn(name))] = i
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return rows, idx, nil
}

// trimVendorPrefix strips a dotted vendor path, keeping the trailing
// segment ("com.samsung.health.heart_rate.create_time" -> "create_time").
func trimVendorPrefix(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

func findColumn(idx map[string]int, names ...string) int {
	for _, name := range names {
		if i, ok := idx[name]; ok {
			return i
		}
	}
	return -1
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
