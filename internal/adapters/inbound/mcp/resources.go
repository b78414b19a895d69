package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/upkeepdev/upkeep/internal/domain"
)

// registerResources registers all upkeep MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. upkeep://ecosystems - the ecosystem catalog
	s.AddResource(
		mcplib.NewResource(
			"upkeep://ecosystems",
			"Ecosystem Catalog",
			mcplib.WithResourceDescription("Every ecosystem upkeep knows: marker files and lockfiles, in catalog order"),
			mcplib.WithMIMEType("application/json"),
		),
		handleEcosystemsResource(),
	)

	// 2. upkeep://history - recorded runs
	s.AddResource(
		mcplib.NewResource(
			"upkeep://history",
			"Run History",
			mcplib.WithResourceDescription("Recorded run summaries for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath),
	)
}

func handleEcosystemsResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(domain.Catalog, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling catalog: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "upkeep://ecosystems",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleHistoryResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := newService().History(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		if entries == nil {
			entries = []domain.RunEntry{}
		}

		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling history: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "upkeep://history",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
