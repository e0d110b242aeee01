package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// HistoryTool handles the tasks_history MCP tool. It is registered even
// when the activity log is disabled so callers get a clear answer.
type HistoryTool struct {
	hist *history.Store
}

// NewHistoryTool creates a HistoryTool over the given activity log,
// which may be nil when history is disabled.
func NewHistoryTool(hist *history.Store) *HistoryTool {
	return &HistoryTool{hist: hist}
}

// Definition returns the MCP tool definition for registration.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_history",
		mcp.WithDescription(
			"Show recent mutations from the activity log: which tool ran, "+
				"what it targeted, and when.",
		),
		mcp.WithString("tool",
			mcp.Description("Only show entries recorded by this tool (e.g. \"tasks_set_status\")."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum entries to return. Default: 20."),
		),
	)
}

// Handle processes the tasks_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.hist == nil {
		return mcp.NewToolResultText("Activity history is disabled for this project. Enable it in .taskmaster/config.yml."), nil
	}

	limit := req.GetInt("limit", 20)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be at least 1"), nil
	}

	entries, err := t.hist.Recent(req.GetString("tool", ""), limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read activity log: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("No activity recorded yet."), nil
	}

	total, err := t.hist.Count()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read activity log: %v", err)), nil
	}

	var b strings.Builder
	b.WriteString("# Recent Activity\n\n| When | Tool | Target | Detail |\n|---|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", e.CreatedAt, e.Tool, e.Target, e.Detail)
	}
	fmt.Fprintf(&b, "\nShowing %d of %d recorded entries.", len(entries), total)
	return mcp.NewToolResultText(b.String()), nil
}
