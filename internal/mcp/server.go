// ABOUTME: MCP server setup for the sleep log.
// ABOUTME: Wraps MCP server with the CSV record store and forecaster.
package mcp

import (
	"context"
	"time"

	"github.com/hweilin/sleeplog/internal/forecast"
	"github.com/hweilin/sleeplog/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with store access.
type Server struct {
	mcpServer  *mcp.Server
	store      *store.Store
	forecaster *forecast.Forecaster
}

// NewServer creates a new MCP server over the given record store.
func NewServer(st *store.Store) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "sleeplog",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer:  mcpServer,
		store:      st,
		forecaster: forecast.New(forecast.DefaultNeighbors),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) now() time.Time {
	return time.Now().In(s.store.Location())
}
