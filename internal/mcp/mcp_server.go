// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/liushen/calheat/core"
	"github.com/liushen/calheat/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the calheat MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, engine *core.Engine) *server.MCPServer {
	s := server.NewMCPServer(
		"Calheat Activity Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		engine:  engine,
	}

	// --- 1. Tool: get_heatmap ---
	s.AddTool(mcp.NewTool("get_heatmap",
		mcp.WithDescription("Aggregate local git commit activity into a calendar heatmap dataset."),
		mcp.WithString("range", mcp.Description("Time range (month, quarter, halfyear, year, custom). Defaults to the configured range."), mcp.Enum("month", "quarter", "halfyear", "year", "custom")),
		mcp.WithString("start", mcp.Description("Custom range start date (YYYY-MM-DD), used with range=custom.")),
		mcp.WithString("end", mcp.Description("Custom range end date (YYYY-MM-DD), used with range=custom.")),
		mcp.WithString("user", mcp.Description("User scope (current, all, custom)."), mcp.Enum("current", "all", "custom")),
		mcp.WithString("custom_user", mcp.Description("Author email or name pattern, used with user=custom.")),
		mcp.WithString("metric", mcp.Description("Aggregated metric (commits, lines, added, deleted)."), mcp.Enum("commits", "lines", "added", "deleted")),
		mcp.WithString("date_source", mcp.Description("Commit timestamp to bucket by (committer, author)."), mcp.Enum("committer", "author")),
		mcp.WithBoolean("merges", mcp.Description("Include merge commits.")),
		mcp.WithBoolean("refresh", mcp.Description("Bypass the cache and recompute.")),
	), h.handleGetHeatmap)

	// --- 2. Tool: get_commits_for_date ---
	s.AddTool(mcp.NewTool("get_commits_for_date",
		mcp.WithDescription("List the commits behind one heatmap day under the same filters."),
		mcp.WithString("date", mcp.Description("The calendar day to inspect (YYYY-MM-DD)."), mcp.Required()),
		mcp.WithString("user", mcp.Description("User scope (current, all, custom)."), mcp.Enum("current", "all", "custom")),
		mcp.WithString("custom_user", mcp.Description("Author email or name pattern, used with user=custom.")),
		mcp.WithString("date_source", mcp.Description("Commit timestamp to match on (committer, author)."), mcp.Enum("committer", "author")),
		mcp.WithBoolean("merges", mcp.Description("Include merge commits.")),
	), h.handleGetCommitsForDate)

	// --- 3. Tool: get_user_list ---
	s.AddTool(mcp.NewTool("get_user_list",
		mcp.WithDescription("List distinct commit authors across all discovered repositories."),
	), h.handleGetUserList)

	// --- 4. Tool: discover_repositories ---
	s.AddTool(mcp.NewTool("discover_repositories",
		mcp.WithDescription("List the git repositories found under the configured scan roots."),
	), h.handleDiscoverRepositories)

	return s
}

// StartMCPServer starts the calheat MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, engine *core.Engine) error {
	s := NewMCPServer(baseCfg, engine)
	return server.ServeStdio(s)
}
