package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/liushen/calheat/core"
	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	engine  *core.Engine
}

// selectionFromRequest starts from the configured filter selection and applies
// any per-request overrides.
func (h *toolHandler) selectionFromRequest(request mcp.CallToolRequest) schema.FilterSelection {
	sel := h.baseCfg.FilterSelection()
	if r := request.GetString("range", ""); r != "" {
		sel.TimeRange = schema.TimeRange(r)
	}
	if s := request.GetString("start", ""); s != "" {
		sel.CustomStartDate = s
	}
	if e := request.GetString("end", ""); e != "" {
		sel.CustomEndDate = e
	}
	if u := request.GetString("user", ""); u != "" {
		sel.UserScope = schema.UserScope(u)
	}
	if cu := request.GetString("custom_user", ""); cu != "" {
		sel.CustomUser = cu
	}
	if m := request.GetString("metric", ""); m != "" {
		sel.Metric = schema.Metric(m)
	}
	if ds := request.GetString("date_source", ""); ds != "" {
		sel.DateSource = schema.DateSource(ds)
	}
	sel.IncludeMerges = request.GetBool("merges", sel.IncludeMerges)
	return sel
}

func (h *toolHandler) handleGetHeatmap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sel := h.selectionFromRequest(request)
	forceRefresh := request.GetBool("refresh", false)

	ds, err := h.engine.GetFilteredHeatmapData(ctx, sel, forceRefresh)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("heatmap aggregation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(ds, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCommitsForDate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := request.GetString("date", "")
	if date == "" {
		return mcp.NewToolResultError("date is required (YYYY-MM-DD)"), nil
	}
	sel := h.selectionFromRequest(request)

	records, err := h.engine.GetCommitsForDate(ctx, date, sel)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("commit lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(records, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetUserList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	users, err := h.engine.GetUserList(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("user listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(users, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDiscoverRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repos, err := h.engine.DiscoverRepositories(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("repository discovery failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(repos, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
