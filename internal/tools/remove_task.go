package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// RemoveTaskTool handles the tasks_remove MCP tool.
type RemoveTaskTool struct {
	store store.Store
	rec   *Recorder
}

// NewRemoveTaskTool creates a RemoveTaskTool with the given task store.
func NewRemoveTaskTool(s store.Store, rec *Recorder) *RemoveTaskTool {
	return &RemoveTaskTool{store: s, rec: rec}
}

// Definition returns the MCP tool definition for registration.
func (t *RemoveTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_remove",
		mcp.WithDescription(
			"Delete tasks and their subtasks. Every reference to the removed "+
				"tasks is swept from dependency and related-task lists across "+
				"the collection.",
		),
		mcp.WithString("ids",
			mcp.Required(),
			mcp.Description("Comma-separated task ids to delete (e.g. \"3,7\")."),
		),
	)
}

// Handle processes the tasks_remove tool call.
func (t *RemoveTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	refs, err := task.ParseRefList(req.GetString("ids", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, ref := range refs {
		if ref.IsSubtask() {
			return mcp.NewToolResultError(fmt.Sprintf("%s is a subtask id; use tasks_remove_subtask instead", ref)), nil
		}
	}

	f, root, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	var b strings.Builder
	b.WriteString("# Tasks Removed\n\n")
	swept := map[int]int{}
	for _, ref := range refs {
		n, err := task.RemoveTask(f, ref.Task)
		if err != nil {
			fmt.Fprintf(&b, "- ❌ Task %d: %v\n", ref.Task, err)
			continue
		}
		swept[ref.Task] = n
		fmt.Fprintf(&b, "- ✅ Task %d removed (%d reference(s) swept)\n", ref.Task, n)
	}

	if len(swept) > 0 {
		if err := t.store.SaveTasks(root, f); err != nil {
			return saveFailed(err), nil
		}
		for id, n := range swept {
			t.rec.Log("tasks_remove", strconv.Itoa(id), fmt.Sprintf("%d references swept", n))
		}
	}

	fmt.Fprintf(&b, "\n%d of %d removed.", len(swept), len(refs))
	return mcp.NewToolResultText(b.String()), nil
}
