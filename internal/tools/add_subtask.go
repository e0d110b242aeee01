package tools

import (
	"context"
	"fmt"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// AddSubtaskTool handles the tasks_add_subtask MCP tool.
// It either creates a new subtask from fields or converts an existing
// top-level task into a subtask of the parent.
type AddSubtaskTool struct {
	store store.Store
	rec   *Recorder
}

// NewAddSubtaskTool creates an AddSubtaskTool with the given task store.
func NewAddSubtaskTool(s store.Store, rec *Recorder) *AddSubtaskTool {
	return &AddSubtaskTool{store: s, rec: rec}
}

// Definition returns the MCP tool definition for registration.
func (t *AddSubtaskTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_add_subtask",
		mcp.WithDescription(
			"Add a subtask under a parent task. Either supply `title` (and "+
				"optional content fields) to create a new subtask, or "+
				"`convert_task_id` to demote an existing top-level task into "+
				"a subtask of the parent. Subtask ids are per-parent.",
		),
		mcp.WithNumber("parent_id",
			mcp.Required(),
			mcp.Description("Id of the task receiving the subtask."),
		),
		mcp.WithString("title",
			mcp.Description("Title for a newly created subtask."),
		),
		mcp.WithString("description",
			mcp.Description("What the subtask delivers."),
		),
		mcp.WithString("details",
			mcp.Description("Implementation notes."),
		),
		mcp.WithString("test_strategy",
			mcp.Description("How completion is verified."),
		),
		mcp.WithNumber("convert_task_id",
			mcp.Description("Existing top-level task to convert instead of creating new."),
		),
	)
}

// Handle processes the tasks_add_subtask tool call.
func (t *AddSubtaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	parentID := req.GetInt("parent_id", 0)
	if parentID <= 0 {
		return mcp.NewToolResultError("parent_id must be a positive task id"), nil
	}
	convertID := req.GetInt("convert_task_id", 0)
	title := req.GetString("title", "")

	if convertID == 0 && title == "" {
		return mcp.NewToolResultError("provide either `title` (new subtask) or `convert_task_id` (convert existing task)"), nil
	}
	if convertID != 0 && title != "" {
		return mcp.NewToolResultError("`title` and `convert_task_id` are mutually exclusive"), nil
	}

	f, root, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	var sub *task.Subtask
	var action string
	if convertID != 0 {
		sub, err = task.ConvertToSubtask(f, parentID, convertID)
		action = fmt.Sprintf("converted task %d", convertID)
	} else {
		sub, err = task.AddSubtask(f, parentID, task.NewSubtaskFields{
			Title:        title,
			Description:  req.GetString("description", ""),
			Details:      req.GetString("details", ""),
			TestStrategy: req.GetString("test_strategy", ""),
		})
		action = "created"
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := t.store.SaveTasks(root, f); err != nil {
		return saveFailed(err), nil
	}

	ref := task.SubtaskRef(parentID, sub.ID)
	t.rec.Log("tasks_add_subtask", ref.String(), action)

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Subtask %s\n\n**ID:** %s\n**Title:** %s\n**Status:** %s\n",
		action, ref, sub.Title, statusBadge(sub.Status),
	)), nil
}
