package tools

import (
	"context"
	"fmt"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// RemoveDependencyTool handles the tasks_remove_dependency MCP tool.
type RemoveDependencyTool struct {
	store store.Store
	rec   *Recorder
}

// NewRemoveDependencyTool creates a RemoveDependencyTool with the given task store.
func NewRemoveDependencyTool(s store.Store, rec *Recorder) *RemoveDependencyTool {
	return &RemoveDependencyTool{store: s, rec: rec}
}

// Definition returns the MCP tool definition for registration.
func (t *RemoveDependencyTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_remove_dependency",
		mcp.WithDescription("Remove a dependency edge from a task or subtask."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task or subtask id that loses the dependency (e.g. \"4\" or \"4.2\")."),
		),
		mcp.WithString("depends_on",
			mcp.Required(),
			mcp.Description("Dependency id to remove."),
		),
	)
}

// Handle processes the tasks_remove_dependency tool call.
func (t *RemoveDependencyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := task.ParseRef(req.GetString("id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid id: %v", err)), nil
	}
	dep, err := task.ParseRef(req.GetString("depends_on", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid depends_on: %v", err)), nil
	}

	f, root, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	if err := task.RemoveDependency(f, ref, dep); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.store.SaveTasks(root, f); err != nil {
		return saveFailed(err), nil
	}
	t.rec.Log("tasks_remove_dependency", ref.String(), "no longer depends on "+dep.String())

	return mcp.NewToolResultText(fmt.Sprintf("✅ %s no longer depends on %s.", ref, dep)), nil
}
