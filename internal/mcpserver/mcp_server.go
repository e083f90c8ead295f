// Package mcpserver provides the Model Context Protocol (MCP) server implementation.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prgate/prgate/internal/contract"
)

// NewMCPServer initializes and configures the prgate MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"PR Gate Validation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: validate_pr ---
	s.AddTool(mcp.NewTool("validate_pr",
		mcp.WithDescription("Run the configured validation suite against a pull request and return the scored report."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
		mcp.WithString("base_ref", mcp.Description("The merge target ref."), mcp.Required()),
		mcp.WithString("head_ref", mcp.Description("The candidate ref under validation."), mcp.Required()),
		mcp.WithNumber("pr_number", mcp.Description("The pull request number.")),
		mcp.WithString("environments", mcp.Description("Comma-separated environment tags to apply (e.g. 'staging,nightly').")),
		mcp.WithString("suite", mcp.Description("Path to the suite config file, relative to the repository root.")),
	), h.handleValidatePR)

	// --- 2. Tool: describe_suite ---
	s.AddTool(mcp.NewTool("describe_suite",
		mcp.WithDescription("Resolve the validation suite config for the given environments without running any checks."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("environments", mcp.Description("Comma-separated environment tags to apply.")),
		mcp.WithString("suite", mcp.Description("Path to the suite config file.")),
	), h.handleDescribeSuite)

	// --- 3. Tool: get_run_history ---
	s.AddTool(mcp.NewTool("get_run_history",
		mcp.WithDescription("List recent validation runs from the history store, newest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of runs returned.")),
	), h.handleGetRunHistory)

	return s
}

// StartMCPServer starts the prgate MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
