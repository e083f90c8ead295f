package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prgate/prgate/core"
	"github.com/prgate/prgate/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

func (h *toolHandler) handleValidatePR(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.BaseRef = request.GetString("base_ref", "")
	cfg.HeadRef = request.GetString("head_ref", "")
	if n := request.GetInt("pr_number", 0); n > 0 {
		cfg.PRNumber = n
	}
	applyCommonParams(cfg, request)

	eff, err := core.LoadEffective(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("suite config failed to load: %v", err)), nil
	}

	report, err := core.ExecuteValidation(ctx, cfg, eff, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDescribeSuite(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyCommonParams(cfg, request)

	eff, err := core.LoadEffective(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("suite config failed to load: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(eff, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRunHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := h.mgr.GetHistoryStore()
	if store == nil {
		return mcp.NewToolResultError("history tracking is not enabled"), nil
	}

	limit := request.GetInt("limit", 10)
	runs, err := store.ListRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list runs: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// applyCommonParams overlays the optional repo/suite/environment parameters
// shared by the suite-driven tools.
func applyCommonParams(cfg *contract.Config, request mcp.CallToolRequest) {
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if s := request.GetString("suite", ""); s != "" {
		cfg.SuitePath = s
	}
	if envs := request.GetString("environments", ""); envs != "" {
		var tags []string
		for _, tag := range strings.Split(envs, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		cfg.Environments = tags
	}
}
