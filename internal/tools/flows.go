package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// FlowsTool handles the tasks_flows MCP tool.
type FlowsTool struct {
	store store.Store
}

// NewFlowsTool creates a FlowsTool with the given task store.
func NewFlowsTool(s store.Store) *FlowsTool {
	return &FlowsTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *FlowsTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_flows",
		mcp.WithDescription(
			"List business flows across the collection with per-flow task "+
				"counts and completion percentage.",
		),
		mcp.WithNumber("min_total",
			mcp.Description("Only list flows spanning at least this many tasks. Default: 1."),
		),
		mcp.WithBoolean("incomplete_only",
			mcp.Description("Only list flows below 100% completion. Default: false."),
		),
	)
}

// Handle processes the tasks_flows tool call.
func (t *FlowsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minTotal := req.GetInt("min_total", 1)
	if minTotal < 1 {
		return mcp.NewToolResultError("min_total must be at least 1"), nil
	}
	incompleteOnly := req.GetBool("incomplete_only", false)

	f, _, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	flows := task.FlowCompletions(f.Tasks)
	if len(flows) == 0 {
		return mcp.NewToolResultText("No flows recorded yet. Add tasks with 1-4 flow names each to enable flow tracking."), nil
	}

	var b strings.Builder
	b.WriteString("# Flows\n\n| Flow | Tasks | Completed | Done |\n|---|---|---|---|\n")
	listed := 0
	for _, fc := range flows {
		if fc.Total < minTotal {
			continue
		}
		if incompleteOnly && fc.Completed == fc.Total {
			continue
		}
		fmt.Fprintf(&b, "| %s | %d | %d | %.1f%% |\n", fc.Flow, fc.Total, fc.Completed, fc.PctDone)
		listed++
	}
	if listed == 0 {
		return mcp.NewToolResultText("No flows matched the given filters."), nil
	}

	return mcp.NewToolResultText(b.String()), nil
}
