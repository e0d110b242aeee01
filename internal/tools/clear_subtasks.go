package tools

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// ClearSubtasksTool handles the tasks_clear_subtasks MCP tool.
type ClearSubtasksTool struct {
	store store.Store
	rec   *Recorder
}

// NewClearSubtasksTool creates a ClearSubtasksTool with the given task store.
func NewClearSubtasksTool(s store.Store, rec *Recorder) *ClearSubtasksTool {
	return &ClearSubtasksTool{store: s, rec: rec}
}

// Definition returns the MCP tool definition for registration.
func (t *ClearSubtasksTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_clear_subtasks",
		mcp.WithDescription(
			"Remove all subtasks from the given tasks. References to the "+
				"removed subtasks are swept from every dependency list.",
		),
		mcp.WithString("ids",
			mcp.Description("Comma-separated task ids whose subtasks should be cleared (e.g. \"3,7\")."),
		),
		mcp.WithBoolean("all",
			mcp.Description("Clear subtasks from every task instead of a specific id list."),
		),
	)
}

// Handle processes the tasks_clear_subtasks tool call.
func (t *ClearSubtasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawIDs := req.GetString("ids", "")
	all := req.GetBool("all", false)
	if all == (rawIDs != "") {
		return mcp.NewToolResultError("provide either `ids` or `all`, not both"), nil
	}

	var ids []int
	if !all {
		refs, err := task.ParseRefList(rawIDs)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		for _, ref := range refs {
			if ref.IsSubtask() {
				return mcp.NewToolResultError(fmt.Sprintf("%s is a subtask id; pass parent task ids only", ref)), nil
			}
			ids = append(ids, ref.Task)
		}
	}

	f, root, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	if all {
		for i := range f.Tasks {
			ids = append(ids, f.Tasks[i].ID)
		}
	}

	cleared := task.ClearSubtasks(f, ids)
	if len(cleared) == 0 {
		return mcp.NewToolResultText("No subtasks to clear on the given tasks."), nil
	}

	if err := t.store.SaveTasks(root, f); err != nil {
		return saveFailed(err), nil
	}

	var clearedIDs []int
	for id := range cleared {
		clearedIDs = append(clearedIDs, id)
	}
	sort.Ints(clearedIDs)

	total := 0
	var b strings.Builder
	b.WriteString("# Subtasks Cleared\n\n")
	for _, id := range clearedIDs {
		n := cleared[id]
		total += n
		fmt.Fprintf(&b, "- Task %d: %d subtask(s) removed\n", id, n)
		t.rec.Log("tasks_clear_subtasks", strconv.Itoa(id), fmt.Sprintf("%d cleared", n))
	}
	fmt.Fprintf(&b, "\n%d subtask(s) removed in total.", total)
	return mcp.NewToolResultText(b.String()), nil
}
