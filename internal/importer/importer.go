// ABOUTME: Importer for uploaded tabular sleep data of varying shapes.
// ABOUTME: Accepts CSV or JSON; tolerates bad rows, never drops them.
package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hweilin/sleeplog/internal/models"
	"github.com/hweilin/sleeplog/internal/normalize"
	"github.com/hweilin/sleeplog/internal/store"
)

// SchemaError reports a required column missing from an imported table.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}

// Row is one imported row after column-name normalization.
type Row map[string]string

// ImportCSV parses an uploaded CSV into normalized records. The table needs
// at least date_only; start/end may be full timestamps or HH:MM clocks
// resolved against date_only. The result is NOT merged into the store;
// the caller decides between Append and gap-fill reconciliation.
func ImportCSV(r io.Reader, loc *time.Location, now time.Time) ([]*models.SleepRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{Column: "date_only"}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	names := make([]string, len(header))
	for i, h := range header {
		names[i] = store.NormalizeColumn(h)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := Row{}
		for i, v := range rec {
			if i < len(names) {
				row[names[i]] = strings.TrimSpace(v)
			}
		}
		rows = append(rows, row)
	}
	return importRows(rows, loc, now)
}

// ImportJSON parses an uploaded JSON array of flat objects with the same
// flexible column naming as the CSV surface.
func ImportJSON(r io.Reader, loc *time.Location, now time.Time) ([]*models.SleepRecord, error) {
	var raw []map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	rows := make([]Row, 0, len(raw))
	for _, obj := range raw {
		row := Row{}
		for k, v := range obj {
			row[store.NormalizeColumn(k)] = stringify(v)
		}
		rows = append(rows, row)
	}
	return importRows(rows, loc, now)
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// importRows applies the full normalization pipeline. Per-row parse failures
// degrade to nil fields; duplicate dates are legitimate (naps) and kept.
func importRows(rows []Row, loc *time.Location, now time.Time) ([]*models.SleepRecord, error) {
	if !hasColumn(rows, "date_only") {
		return nil, &SchemaError{Column: "date_only"}
	}

	recs := make([]*models.SleepRecord, 0, len(rows))
	for _, row := range rows {
		var date time.Time
		if d, err := normalize.ParseDate(row["date_only"], loc); err == nil {
			date = d
		}

		start := parseFlexible(row["start_time"], date, loc)
		end := parseFlexible(row["end_time"], date, loc)

		// Cross-midnight fix: only when both endpoints resolved.
		if !start.IsZero() && !end.IsZero() && end.Before(start) {
			end = end.AddDate(0, 0, 1)
		}

		rec := &models.SleepRecord{
			StartTime:        start,
			EndTime:          end,
			PhysicalRecovery: optInt(row["physical_recovery"]),
			MentalRecovery:   optInt(row["mental_recovery"]),
			SleepCycle:       optInt(row["sleep_cycle"]),
			SleepScore:       optInt(row["sleep_score"]),
			CreateTime:       now,
			UpdateTime:       now,
		}

		// A supplied duration is trusted; only missing ones are computed.
		if d := optFloat(row["sleep_duration"]); d != nil {
			rec.SleepDuration = d
		} else if !start.IsZero() && !end.IsZero() {
			h := normalize.RoundHours(end.Sub(start).Hours())
			rec.SleepDuration = &h
		}

		recs = append(recs, rec)
	}
	return recs, nil
}

// hasColumn reports whether any row carries the column. JSON objects may
// omit fields per-row, so the schema is the union of keys, not row one.
func hasColumn(rows []Row, name string) bool {
	for _, row := range rows {
		if _, ok := row[name]; ok {
			return true
		}
	}
	return false
}

// parseFlexible tries a full datetime first, then falls back to an HH:MM
// clock combined with the row's date. Anything else resolves to zero.
func parseFlexible(val string, date time.Time, loc *time.Location) time.Time {
	if val == "" {
		return time.Time{}
	}
	if t, err := normalize.ParseLocalNaive(val, loc); err == nil {
		return t
	}
	if date.IsZero() {
		return time.Time{}
	}
	c, err := normalize.ParseClock(val)
	if err != nil {
		return time.Time{}
	}
	return c.On(date)
}

func optInt(s string) *int {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int(f)
	return &v
}

func optFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
