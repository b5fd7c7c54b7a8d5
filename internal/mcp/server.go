// ABOUTME: MCP server setup for the vitals derivation engine.
// ABOUTME: Wraps the MCP server with storage and pipeline access.
package mcp

import (
	"context"

	"github.com/harperreed/vitals/internal/engine"
	"github.com/harperreed/vitals/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage and engine access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	pipeline  *engine.Pipeline
}

// NewServer creates a new MCP server with the given storage and thresholds.
func NewServer(repo storage.Repository, th engine.Thresholds) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "vitals",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		pipeline:  engine.NewPipeline(repo, th),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
