package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// SetStatusTool handles the tasks_set_status MCP tool.
type SetStatusTool struct {
	store store.Store
	rec   *Recorder
}

// NewSetStatusTool creates a SetStatusTool with the given task store.
func NewSetStatusTool(s store.Store, rec *Recorder) *SetStatusTool {
	return &SetStatusTool{store: s, rec: rec}
}

// Definition returns the MCP tool definition for registration.
func (t *SetStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_set_status",
		mcp.WithDescription(
			"Set the status of one or more tasks/subtasks. Valid ids are "+
				"applied even when others in the list fail — the response "+
				"carries a per-id result.",
		),
		mcp.WithString("ids",
			mcp.Required(),
			mcp.Description("Comma-separated task/subtask ids (e.g. \"3,4.1,7\")."),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status for every id in the list."),
			mcp.Enum("pending", "in-progress", "done", "completed", "blocked", "deferred", "cancelled"),
		),
	)
}

// Handle processes the tasks_set_status tool call.
func (t *SetStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := task.Status(req.GetString("status", ""))
	if err := task.ValidateStatus(status); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	refs, err := task.ParseRefList(req.GetString("ids", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, root, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	results, changed := task.SetStatus(f, refs, status)
	if changed {
		if err := t.store.SaveTasks(root, f); err != nil {
			return saveFailed(err), nil
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Status → %s\n\n", status)
	applied := 0
	for _, r := range results {
		if r.OK {
			applied++
			fmt.Fprintf(&b, "- ✅ %s\n", r.ID)
			t.rec.Log("tasks_set_status", r.ID, "status -> "+string(status))
		} else {
			fmt.Fprintf(&b, "- ❌ %s — %s\n", r.ID, r.Err)
		}
	}
	fmt.Fprintf(&b, "\n%d applied, %d failed.", applied, len(results)-applied)

	return mcp.NewToolResultText(b.String()), nil
}
