package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// RemoveSubtaskTool handles the tasks_remove_subtask MCP tool.
type RemoveSubtaskTool struct {
	store store.Store
	rec   *Recorder
}

// NewRemoveSubtaskTool creates a RemoveSubtaskTool with the given task store.
func NewRemoveSubtaskTool(s store.Store, rec *Recorder) *RemoveSubtaskTool {
	return &RemoveSubtaskTool{store: s, rec: rec}
}

// Definition returns the MCP tool definition for registration.
func (t *RemoveSubtaskTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_remove_subtask",
		mcp.WithDescription(
			"Remove one or more subtasks. With `convert` each subtask is "+
				"promoted to a new top-level task instead of being discarded. "+
				"References to removed subtasks are swept from all dependency lists.",
		),
		mcp.WithString("ids",
			mcp.Required(),
			mcp.Description("Comma-separated subtask ids in \"parent.sub\" form (e.g. \"3.1,3.2\")."),
		),
		mcp.WithBoolean("convert",
			mcp.Description("Promote removed subtasks to top-level tasks. Default: false."),
		),
	)
}

// Handle processes the tasks_remove_subtask tool call.
func (t *RemoveSubtaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	refs, err := task.ParseRefList(req.GetString("ids", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, ref := range refs {
		if !ref.IsSubtask() {
			return mcp.NewToolResultError(fmt.Sprintf("%s is not a subtask id; use \"parent.sub\" form", ref)), nil
		}
	}
	convert := req.GetBool("convert", false)

	f, root, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	action := "removed"
	if convert {
		action = "converted"
	}

	var b strings.Builder
	b.WriteString("# Subtasks Removed\n\n")
	var done []task.Ref
	for _, ref := range refs {
		promoted, err := task.RemoveSubtask(f, ref, convert)
		if err != nil {
			fmt.Fprintf(&b, "- ❌ %s: %v\n", ref, err)
			continue
		}
		done = append(done, ref)
		if promoted != nil {
			fmt.Fprintf(&b, "- ✅ %s promoted to task %d\n", ref, promoted.ID)
		} else {
			fmt.Fprintf(&b, "- ✅ %s removed\n", ref)
		}
	}

	if len(done) > 0 {
		if err := t.store.SaveTasks(root, f); err != nil {
			return saveFailed(err), nil
		}
		for _, ref := range done {
			t.rec.Log("tasks_remove_subtask", ref.String(), action)
		}
	}

	fmt.Fprintf(&b, "\n%d of %d processed.", len(done), len(refs))
	return mcp.NewToolResultText(b.String()), nil
}
