package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewUpkeepMCPServer creates an MCP server with the upkeep tools and
// resources registered. The projectPath is the root directory of the
// project the tools operate on. Only non-mutating modes are exposed:
// update always runs check-only and clean always runs dry-run, so an
// assistant can inspect a project but never change it.
func NewUpkeepMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"upkeep",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
