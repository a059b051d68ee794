// ABOUTME: MCP server setup for the freely learning session.
// ABOUTME: Wraps the MCP server around a session store shared with the CLI.
package mcp

import (
	"context"

	"github.com/harperreed/freely/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with session access.
type Server struct {
	mcpServer *mcp.Server
	store     *session.Store
}

// NewServer creates a new MCP server over an initialized session store.
func NewServer(store *session.Store, version string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "freely",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
