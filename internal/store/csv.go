// ABOUTME: CSV codec for the sleep log and the device-export fallback.
// ABOUTME: Bad cells degrade to nil fields; a bad file surfaces an error.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hweilin/sleeplog/internal/models"
	"github.com/hweilin/sleeplog/internal/normalize"
)

// readLog reads a CSV in the canonical schema with local-naive timestamps.
func readLog(path string, loc *time.Location) ([]*models.SleepRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeCSV(f, loc, false)
}

// ReadDevice reads a device export directly, for read-only viewing.
// A missing file is an empty result, not an error.
func ReadDevice(path string, loc *time.Location) ([]*models.SleepRecord, error) {
	if !fileExists(path) {
		return nil, nil
	}
	return readDeviceExport(path, loc)
}

// readDeviceExport reads the device CSV: UTC timestamps, minute durations.
func readDeviceExport(path string, loc *time.Location) ([]*models.SleepRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeCSV(f, loc, true)
}

func decodeCSV(r io.Reader, loc *time.Location, utcTimes bool) ([]*models.SleepRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := headerIndex(header)

	var recs []*models.SleepRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		recs = append(recs, decodeRow(row, idx, loc, utcTimes))
	}
	return recs, nil
}

// headerIndex maps normalized column names to positions. Normalization is
// the same trim/lowercase/space-to-underscore rule the importer applies.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[NormalizeColumn(name)] = i
	}
	return idx
}

// NormalizeColumn canonicalizes a column name: trimmed, lower-cased,
// spaces replaced with underscores.
func NormalizeColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// decodeRow builds a record from one CSV row. Unparseable cells become nil
// fields rather than aborting the batch: one bad row never blocks the rest.
func decodeRow(row []string, idx map[string]int, loc *time.Location, utcTimes bool) *models.SleepRecord {
	parseTS := func(s string) time.Time {
		if s == "" {
			return time.Time{}
		}
		var t time.Time
		var err error
		if utcTimes {
			t, err = normalize.ParseUTC(s, loc)
		} else {
			t, err = normalize.ParseLocalNaive(s, loc)
		}
		if err != nil {
			return time.Time{}
		}
		return t
	}

	rec := &models.SleepRecord{
		StartTime: parseTS(cell(row, idx, "start_time")),
		EndTime:   parseTS(cell(row, idx, "end_time")),
	}
	// Create/update stamps are always local-naive, even in the device file.
	if s := cell(row, idx, "create_time"); s != "" {
		if t, err := normalize.ParseLocalNaive(s, loc); err == nil {
			rec.CreateTime = t
		}
	}
	if s := cell(row, idx, "update_time"); s != "" {
		if t, err := normalize.ParseLocalNaive(s, loc); err == nil {
			rec.UpdateTime = t
		}
	}

	rec.PhysicalRecovery = parseOptInt(cell(row, idx, "physical_recovery"))
	rec.MentalRecovery = parseOptInt(cell(row, idx, "mental_recovery"))
	rec.SleepCycle = parseOptInt(cell(row, idx, "sleep_cycle"))
	rec.SleepScore = parseOptInt(cell(row, idx, "sleep_score"))
	if d := parseOptFloat(cell(row, idx, "sleep_duration")); d != nil {
		fixed := normalize.Duration(*d)
		rec.SleepDuration = &fixed
	}
	return rec
}

func parseOptInt(s string) *int {
	if s == "" {
		return nil
	}
	// Tolerate float renderings of integer columns ("80.0").
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int(f)
	return &v
}

func parseOptFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// writeCSV emits the canonical schema, one row per record.
func writeCSV(w io.Writer, recs []*models.SleepRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Columns); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := cw.Write(encodeRow(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeRow(rec *models.SleepRecord) []string {
	ts := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(models.TimeLayout)
	}
	oi := func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	}
	of := func(p *float64) string {
		if p == nil {
			return ""
		}
		return strconv.FormatFloat(*p, 'f', 2, 64)
	}
	return []string{
		ts(rec.StartTime), ts(rec.EndTime),
		oi(rec.PhysicalRecovery), oi(rec.MentalRecovery),
		oi(rec.SleepCycle), oi(rec.SleepScore),
		of(rec.SleepDuration), ts(rec.CreateTime), ts(rec.UpdateTime),
	}
}
