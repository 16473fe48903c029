// ABOUTME: MCP resource implementations for the sleep log.
// ABOUTME: Provides sleeplog://recent, sleeplog://summary, sleeplog://forecast.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hweilin/sleeplog/internal/forecast"
	"github.com/hweilin/sleeplog/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// sleeplog://recent - last 10 sleep records
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "sleeplog://recent",
		Name:        "Recent Sleep Records",
		Description: "Last 10 sleep records, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// sleeplog://summary - aggregate stats over the whole log
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "sleeplog://summary",
		Name:        "Sleep Summary",
		Description: "Averages, median bedtime, consistency score, chronotype",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	// sleeplog://forecast - projected next sleep window
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "sleeplog://forecast",
		Name:        "Next Sleep Forecast",
		Description: "Projected next sleep/wake window from history",
		MIMEType:    "application/json",
	}, s.handleForecastResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	recs, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	sortDescending(recs)
	if len(recs) > 10 {
		recs = recs[:10]
	}
	return jsonResource("sleeplog://recent", recs)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	recs, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return jsonResource("sleeplog://summary", stats.Compute(recs))
}

func (s *Server) handleForecastResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	recs, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	res, err := s.forecaster.NextSleep(recs)
	if errors.Is(err, forecast.ErrInsufficientData) {
		return jsonResource("sleeplog://forecast", map[string]string{"error": err.Error()})
	}
	if err != nil {
		return nil, err
	}
	return jsonResource("sleeplog://forecast", res)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
