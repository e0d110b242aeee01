package tools

import (
	"context"
	"fmt"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// AddDependencyTool handles the tasks_add_dependency MCP tool.
type AddDependencyTool struct {
	store store.Store
	rec   *Recorder
}

// NewAddDependencyTool creates an AddDependencyTool with the given task store.
func NewAddDependencyTool(s store.Store, rec *Recorder) *AddDependencyTool {
	return &AddDependencyTool{store: s, rec: rec}
}

// Definition returns the MCP tool definition for registration.
func (t *AddDependencyTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_add_dependency",
		mcp.WithDescription(
			"Record that a task or subtask depends on another. The dependent "+
				"will not be offered by tasks_next until the dependency is complete.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task or subtask id that gains the dependency (e.g. \"4\" or \"4.2\")."),
		),
		mcp.WithString("depends_on",
			mcp.Required(),
			mcp.Description("Task or subtask id it depends on."),
		),
	)
}

// Handle processes the tasks_add_dependency tool call.
func (t *AddDependencyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	if err := task.AddDependency(f, ref, dep); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.store.SaveTasks(root, f); err != nil {
		return saveFailed(err), nil
	}
	t.rec.Log("tasks_add_dependency", ref.String(), "depends on "+dep.String())

	return mcp.NewToolResultText(fmt.Sprintf("✅ %s now depends on %s.", ref, dep)), nil
}
