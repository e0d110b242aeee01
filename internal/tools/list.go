package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListTool handles the tasks_list MCP tool.
type ListTool struct {
	store store.Store
}

// NewListTool creates a ListTool with the given task store.
func NewListTool(s store.Store) *ListTool {
	return &ListTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_list",
		mcp.WithDescription(
			"List tasks with completion statistics. Optionally filter by "+
				"status and include subtask rows.",
		),
		mcp.WithString("status",
			mcp.Description("Only show tasks with this status."),
			mcp.Enum("pending", "in-progress", "done", "completed", "blocked", "deferred", "cancelled"),
		),
		mcp.WithBoolean("with_subtasks",
			mcp.Description("Include each task's subtasks as indented rows. Default: false."),
		),
	)
}

// Handle processes the tasks_list tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	statusFilter := task.Status(req.GetString("status", ""))
	if statusFilter != "" {
		if err := task.ValidateStatus(statusFilter); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	withSubtasks := req.GetBool("with_subtasks", false)

	f, _, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	counts := task.CountStatuses(f.Tasks, withSubtasks)

	var table strings.Builder
	table.WriteString("| ID | Title | Status | Priority | Deps |\n")
	table.WriteString("|----|-------|--------|----------|------|\n")

	shown := 0
	for i := range f.Tasks {
		tsk := &f.Tasks[i]
		if statusFilter != "" && tsk.Status != statusFilter {
			continue
		}
		shown++
		fmt.Fprintf(&table, "| %d | %s | %s | %s | %s |\n",
			tsk.ID, tsk.Title, statusBadge(tsk.Status), tsk.Priority, refListOrDash(tsk.Dependencies))
		if withSubtasks {
			for j := range tsk.Subtasks {
				sub := &tsk.Subtasks[j]
				fmt.Fprintf(&table, "| %d.%d | ↳ %s | %s | | %s |\n",
					tsk.ID, sub.ID, sub.Title, statusBadge(sub.Status), refListOrDash(sub.Dependencies))
			}
		}
	}

	if shown == 0 {
		if statusFilter != "" {
			return mcp.NewToolResultText(fmt.Sprintf("No tasks with status %q.", statusFilter)), nil
		}
		return mcp.NewToolResultText("No tasks yet. Add one with `tasks_add`."), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Tasks — %s\n\n"+
			"**Progress:** %d/%d complete (%.1f%%) · %d in progress · %d pending · %d blocked\n\n%s",
		f.Metadata.ProjectName,
		counts.Completed, counts.Total, counts.PctDone,
		counts.InProgress, counts.Pending, counts.Blocked,
		table.String(),
	)), nil
}
