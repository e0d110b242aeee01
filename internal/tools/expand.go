package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/algae514/task-master-ai-algae/internal/prompts"
	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// ExpandTool handles the tasks_expand MCP tool.
type ExpandTool struct {
	store store.Store
}

// NewExpandTool creates an ExpandTool with the given task store.
func NewExpandTool(s store.Store) *ExpandTool {
	return &ExpandTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *ExpandTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_expand",
		mcp.WithDescription(
			"Produce a prompt for breaking a task into subtasks. If the task "+
				"has a complexity analysis on file, its recommended subtask "+
				"count and expansion prompt seed the breakdown. The resulting "+
				"subtasks are created with tasks_add_subtask.",
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Task id to expand."),
		),
		mcp.WithNumber("num_subtasks",
			mcp.Description("How many subtasks to aim for. Default: the analysis recommendation, or 4."),
		),
	)
}

// Handle processes the tasks_expand tool call.
func (t *ExpandTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetInt("id", 0)
	if id < 1 {
		return mcp.NewToolResultError("id must be a positive task id"), nil
	}
	num := req.GetInt("num_subtasks", 0)

	f, root, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	target := f.Task(id)
	if target == nil {
		return mcp.NewToolResultError(fmt.Sprintf("task %d not found", id)), nil
	}
	if target.Status.IsComplete() {
		return mcp.NewToolResultError(fmt.Sprintf("task %d is %s; completed tasks are not expanded", id, target.Status)), nil
	}

	var analysis *task.ComplexityAnalysis
	report, err := t.store.LoadReport(root)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load complexity report: %v", err)), nil
	}
	if report != nil {
		analysis = report.Analysis(id)
	}

	if num == 0 {
		num = 4
		if analysis != nil && analysis.RecommendedSubtasks > 0 {
			num = analysis.RecommendedSubtasks
		}
	}
	if num < 1 || num > 20 {
		return mcp.NewToolResultError("num_subtasks must be between 1 and 20"), nil
	}

	pair := prompts.Expand(target, num, analysis)
	return mcp.NewToolResultText(pair.Render()), nil
}
