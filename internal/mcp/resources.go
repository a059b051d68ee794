// ABOUTME: MCP resource implementations for the learning session.
// ABOUTME: Provides freely://metrics, freely://progress, and freely://history resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "freely://metrics",
		Name:        "Bird Metrics",
		Description: "Current distance, altitude, freedom and animation state",
		MIMEType:    "application/json",
	}, s.handleMetricsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "freely://progress",
		Name:        "Learning Progress",
		Description: "Answer counts, streaks and accuracy",
		MIMEType:    "application/json",
	}, s.handleProgressResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "freely://history",
		Name:        "Recent Answers",
		Description: "Last 20 answers, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// Resource handlers

func (s *Server) handleMetricsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource("freely://metrics", toMetricsOutput(s.store.MetricsSnapshot()))
}

func (s *Server) handleProgressResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource("freely://progress", toProgressOutput(s.store.ProgressSnapshot()))
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource("freely://history", s.history(20, time.Time{}))
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
