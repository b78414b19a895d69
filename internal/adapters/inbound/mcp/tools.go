package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/upkeepdev/upkeep/internal/adapters/outbound/config"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/detector"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/gitinfo"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/history"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/runner"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/toolprobe"
	"github.com/upkeepdev/upkeep/internal/application"
	"github.com/upkeepdev/upkeep/internal/domain"
	"github.com/upkeepdev/upkeep/internal/logging"
)

// registerTools registers all upkeep MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. upkeep_detect
	s.AddTool(
		mcplib.NewTool("upkeep_detect",
			mcplib.WithDescription("Detect which ecosystems (rust, python, node) the project uses, with their marker files and lockfiles"),
		),
		handleDetect(projectPath),
	)

	// 2. upkeep_check
	s.AddTool(
		mcplib.NewTool("upkeep_check",
			mcplib.WithDescription("Run the project's health checks (format, lint, typecheck, test) and return the step results as JSON"),
			mcplib.WithString("only", mcplib.Description("Limit to one ecosystem: rust, python, or node")),
			mcplib.WithBoolean("strict", mcplib.Description("Treat lint warnings as errors")),
		),
		handleCheck(projectPath),
	)

	// 3. upkeep_update (check-only; never applies changes)
	s.AddTool(
		mcplib.NewTool("upkeep_update",
			mcplib.WithDescription("Report outdated dependencies per ecosystem. Always runs in check mode and never modifies the project."),
			mcplib.WithString("only", mcplib.Description("Limit to one ecosystem: rust, python, or node")),
		),
		handleUpdate(projectPath),
	)

	// 4. upkeep_clean (dry-run; never deletes)
	s.AddTool(
		mcplib.NewTool("upkeep_clean",
			mcplib.WithDescription("List the build artifacts a clean would remove. Always runs as a dry run and never deletes anything."),
			mcplib.WithString("only", mcplib.Description("Limit to one ecosystem: rust, python, or node")),
			mcplib.WithBoolean("all", mcplib.Description("Include dependency directories like node_modules and .venv")),
		),
		handleClean(projectPath),
	)
}

// newService creates the run service over the standard outbound adapters.
// MCP handlers keep the logger silent; stdout carries the protocol.
func newService() *application.RunService {
	logger := logging.Nop()
	executor := application.NewExecutor(toolprobe.New(), runner.New(logger), runner.NewSweeper(logger), logger)
	return application.NewRunService(detector.New(), config.New(), executor, history.New(), gitinfo.New(), logger)
}

func parseOnlyArg(request mcplib.CallToolRequest) (domain.Ecosystem, error) {
	only, _ := request.GetArguments()["only"].(string)
	if only == "" {
		return "", nil
	}
	return domain.ParseEcosystem(only)
}

func handleDetect(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		info, err := newService().Inspect(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("detection failed: %v", err)), nil
		}
		return jsonResult(info)
	}
}

func handleCheck(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		eco, err := parseOnlyArg(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		strict, _ := request.GetArguments()["strict"].(bool)

		mode := domain.RunMode{Task: domain.TaskCheck, Only: eco, Strict: strict}
		summary, err := newService().Run(ctx, projectPath, mode)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(summary)
	}
}

func handleUpdate(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		eco, err := parseOnlyArg(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		mode := domain.RunMode{Task: domain.TaskUpdate, Only: eco, CheckOnly: true}
		summary, err := newService().Run(ctx, projectPath, mode)
		if err != nil {
			return errorResult(fmt.Sprintf("update check failed: %v", err)), nil
		}
		return jsonResult(summary)
	}
}

func handleClean(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		eco, err := parseOnlyArg(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		all, _ := request.GetArguments()["all"].(bool)

		mode := domain.RunMode{Task: domain.TaskClean, Only: eco, DryRun: true, CleanAll: all}
		summary, err := newService().Run(ctx, projectPath, mode)
		if err != nil {
			return errorResult(fmt.Sprintf("clean enumeration failed: %v", err)), nil
		}
		return jsonResult(summary)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
