// ABOUTME: MCP tool implementations for the sleep log.
// ABOUTME: Add/list records, summary stats, and forecasting tools.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/hweilin/sleeplog/internal/forecast"
	"github.com/hweilin/sleeplog/internal/models"
	"github.com/hweilin/sleeplog/internal/normalize"
	"github.com/hweilin/sleeplog/internal/stats"
	"github.com/hweilin/sleeplog/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_sleep
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_sleep",
		Description: "Record a sleep interval (date plus sleep/wake clock times)",
	}, s.handleAddSleep)

	// list_sleep
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_sleep",
		Description: "List recent sleep records, newest first",
	}, s.handleListSleep)

	// sleep_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "sleep_stats",
		Description: "Summary statistics: averages, median bedtime, consistency, chronotype",
	}, s.handleStats)

	// next_sleep_forecast
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "next_sleep_forecast",
		Description: "Forecast the next sleep/wake window from history",
	}, s.handleNextForecast)

	// forecast_for_date
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "forecast_for_date",
		Description: "Forecast the sleep window on or after a future date (YYYY-MM-DD)",
	}, s.handleForecastForDate)
}

// Tool input/output types

type addSleepInput struct {
	Date             string   `json:"date,omitempty" jsonschema:"Calendar date (YYYY-MM-DD); defaults to today"`
	Sleep            string   `json:"sleep" jsonschema:"Sleep clock time (HH:MM)"`
	Wake             string   `json:"wake" jsonschema:"Wake clock time (HH:MM); earlier than sleep means the interval crosses midnight"`
	PhysicalRecovery *int     `json:"physical_recovery,omitempty" jsonschema:"Physical recovery percent (0-100)"`
	MentalRecovery   *int     `json:"mental_recovery,omitempty" jsonschema:"Mental recovery percent (0-100)"`
	SleepCycle       *int     `json:"sleep_cycle,omitempty" jsonschema:"REM cycle count"`
	SleepScore       *int     `json:"sleep_score,omitempty" jsonschema:"Sleep score (0-100)"`
	SleepDuration    *float64 `json:"sleep_duration,omitempty" jsonschema:"Duration in hours; computed when omitted"`
}

type recordOutput struct {
	Start    string  `json:"start_time"`
	End      string  `json:"end_time"`
	Duration float64 `json:"duration_hours"`
	Message  string  `json:"message"`
}

type listSleepInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type forecastForDateInput struct {
	Date string `json:"date" jsonschema:"Target date (YYYY-MM-DD)"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleAddSleep(ctx context.Context, req *mcp.CallToolRequest, input addSleepInput) (*mcp.CallToolResult, recordOutput, error) {
	loc := s.store.Location()
	now := s.now()

	date := normalize.Midnight(now)
	if input.Date != "" {
		d, err := normalize.ParseDate(input.Date, loc)
		if err != nil {
			return nil, recordOutput{}, fmt.Errorf("invalid date: %s", input.Date)
		}
		date = d
	}

	sleepClock, err := normalize.ParseClock(input.Sleep)
	if err != nil {
		return nil, recordOutput{}, fmt.Errorf("invalid sleep time: %s", input.Sleep)
	}
	wakeClock, err := normalize.ParseClock(input.Wake)
	if err != nil {
		return nil, recordOutput{}, fmt.Errorf("invalid wake time: %s", input.Wake)
	}

	span := normalize.ResolveOvernight(date, &sleepClock, &wakeClock, input.SleepDuration)
	rec := models.NewRecord(*span.Start, *span.End, now)
	rec.PhysicalRecovery = input.PhysicalRecovery
	rec.MentalRecovery = input.MentalRecovery
	rec.SleepCycle = input.SleepCycle
	rec.SleepScore = input.SleepScore
	rec.SleepDuration = span.Duration
	if input.SleepDuration != nil {
		d := normalize.Duration(*input.SleepDuration)
		rec.SleepDuration = &d
	}

	if err := s.store.Append([]*models.SleepRecord{rec}); err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to append record: %w", err)
	}

	dur := 0.0
	if rec.SleepDuration != nil {
		dur = *rec.SleepDuration
	}
	return nil, recordOutput{
		Start:    rec.StartTime.Format(models.TimeLayout),
		End:      rec.EndTime.Format(models.TimeLayout),
		Duration: dur,
		Message:  fmt.Sprintf("Logged sleep %s to %s (%.2f h)", rec.StartTime.Format("2006-01-02 15:04"), rec.EndTime.Format("2006-01-02 15:04"), dur),
	}, nil
}

func (s *Server) handleListSleep(ctx context.Context, req *mcp.CallToolRequest, input listSleepInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	recs, err := s.store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}
	if len(recs) == 0 {
		return nil, map[string]any{"message": "No sleep records found."}, nil
	}

	// Newest first for display.
	sortDescending(recs)
	if len(recs) > input.Limit {
		recs = recs[:input.Limit]
	}
	return nil, recs, nil
}

func (s *Server) handleStats(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	recs, err := s.store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}
	return nil, stats.Compute(recs), nil
}

func (s *Server) handleNextForecast(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	recs, err := s.store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}
	res, err := s.forecaster.NextSleep(recs)
	if errors.Is(err, forecast.ErrInsufficientData) {
		return nil, simpleOutput{Message: err.Error()}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return nil, res, nil
}

func (s *Server) handleForecastForDate(ctx context.Context, req *mcp.CallToolRequest, input forecastForDateInput) (*mcp.CallToolResult, any, error) {
	target, err := normalize.ParseDate(input.Date, s.store.Location())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid date: %s", input.Date)
	}

	recs, err := s.store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}
	res, err := s.forecaster.ForDate(recs, target)
	if errors.Is(err, forecast.ErrInsufficientData) {
		return nil, simpleOutput{Message: err.Error()}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return nil, res, nil
}

// sortDescending orders records newest first for display.
func sortDescending(recs []*models.SleepRecord) {
	store.SortByStart(recs)
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
}
