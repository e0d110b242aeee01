package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// NextTool handles the tasks_next MCP tool.
type NextTool struct {
	store store.Store
}

// NewNextTool creates a NextTool with the given task store.
func NewNextTool(s store.Store) *NextTool {
	return &NextTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *NextTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_next",
		mcp.WithDescription(
			"Pick the single best task to work on next: all dependencies "+
				"complete, ranked by in-progress status, priority, how many "+
				"other tasks it unblocks, then age. Explains itself when "+
				"nothing is eligible.",
		),
	)
}

// Handle processes the tasks_next tool call.
func (t *NextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, _, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	next := task.SelectNext(f)
	if next == nil {
		d := task.DiagnoseNext(f)
		if d.Total == 0 {
			return mcp.NewToolResultText("No tasks yet. Add one with `tasks_add`."), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"# No Eligible Task\n\n"+
				"Of %d task(s): %d complete, %d in progress, %d parked "+
				"(blocked/deferred/cancelled), %d waiting on incomplete dependencies.\n\n"+
				"Unblock a dependency or revisit a parked task.",
			d.Total, d.Completed, d.InProgress, d.Blocked, d.DependencyStarved,
		)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Next Task: %d — %s\n\n", next.ID, next.Title)
	fmt.Fprintf(&b, "**Status:** %s\n**Priority:** %s\n", statusBadge(next.Status), next.Priority)
	fmt.Fprintf(&b, "**Unblocks:** %d task(s)\n", task.DependentCount(f, next.ID))
	if next.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", next.Description)
	}
	fmt.Fprintf(&b, "\nStart it with `tasks_set_status` ids=\"%d\" status=\"in-progress\".", next.ID)

	return mcp.NewToolResultText(b.String()), nil
}
