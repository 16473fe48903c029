// ABOUTME: CSV template IO for the gap-fill grid.
// ABOUTME: Writes the editable calendar out and reads edited copies back.
package gapfill

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hweilin/sleeplog/internal/models"
	"github.com/hweilin/sleeplog/internal/normalize"
	"github.com/hweilin/sleeplog/internal/store"
)

// templateColumns is the grid schema: date plus HH:MM clocks, one row per
// calendar day.
var templateColumns = []string{
	"date_only", "start_time", "end_time",
	"physical_recovery", "mental_recovery",
	"sleep_cycle", "sleep_score", "sleep_duration",
}

// WriteTemplate emits the editable calendar grid as CSV, suitable for
// filling in a spreadsheet and feeding back through Reconcile.
func WriteTemplate(w io.Writer, rows []Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(templateColumns); err != nil {
		return err
	}
	for i := range rows {
		row := &rows[i]
		rec := []string{
			row.Date.Format(models.DateLayout),
			row.Start, row.End,
			optIntStr(row.PhysicalRecovery), optIntStr(row.MentalRecovery),
			optIntStr(row.SleepCycle), optIntStr(row.SleepScore),
			optFloatStr(row.SleepDuration),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadEdited parses an edited template CSV back into candidate rows. Rows
// whose date cannot be parsed are dropped; everything else is kept, blank
// or not, and left to Reconcile to classify.
func ReadEdited(r io.Reader, loc *time.Location) ([]Candidate, error) {
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
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[store.NormalizeColumn(h)] = i
	}
	if _, ok := idx["date_only"]; !ok {
		return nil, fmt.Errorf("edited grid: %w", &normalize.ParseError{Input: "date_only", Kind: "date"})
	}

	get := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []Candidate
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		date, err := normalize.ParseDate(get(row, "date_only"), loc)
		if err != nil {
			continue
		}
		out = append(out, Candidate{
			Date:             date,
			Start:            get(row, "start_time"),
			End:              get(row, "end_time"),
			PhysicalRecovery: optIntParse(get(row, "physical_recovery")),
			MentalRecovery:   optIntParse(get(row, "mental_recovery")),
			SleepCycle:       optIntParse(get(row, "sleep_cycle")),
			SleepScore:       optIntParse(get(row, "sleep_score")),
			SleepDuration:    optFloatParse(get(row, "sleep_duration")),
		})
	}
	return out, nil
}

func optIntStr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func optFloatStr(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}

func optIntParse(s string) *int {
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

func optFloatParse(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
