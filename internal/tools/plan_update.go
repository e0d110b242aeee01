package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/prompts"
	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// PlanUpdateTool handles the tasks_plan_update MCP tool.
type PlanUpdateTool struct {
	store store.Store
}

// NewPlanUpdateTool creates a PlanUpdateTool with the given task store.
func NewPlanUpdateTool(s store.Store) *PlanUpdateTool {
	return &PlanUpdateTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *PlanUpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_plan_update",
		mcp.WithDescription(
			"Plan a content-update pass over a set of tasks given new project "+
				"context. Large sets are split into token-budgeted batches; "+
				"each call returns the rewrite prompt for one batch. Apply the "+
				"rewrites with the mutation tools, then resume with the next "+
				"batch number.",
		),
		mcp.WithString("context",
			mcp.Required(),
			mcp.Description("What changed in the project; the tasks are rewritten against this."),
		),
		mcp.WithString("from_id",
			mcp.Description("Only update tasks with id greater than or equal to this."),
		),
		mcp.WithString("ids",
			mcp.Description("Comma-separated task ids to update. Overrides from_id."),
		),
		mcp.WithNumber("batch",
			mcp.Description("1-based batch number to produce the prompt for. Default: 1."),
		),
		mcp.WithNumber("batch_size",
			mcp.Description("Explicit batch size, overriding the token-budget estimate."),
		),
	)
}

// Handle processes the tasks_plan_update tool call.
func (t *PlanUpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	updateContext := strings.TrimSpace(req.GetString("context", ""))
	if updateContext == "" {
		return mcp.NewToolResultError("context must describe what changed"), nil
	}
	batchNum := req.GetInt("batch", 1)
	if batchNum < 1 {
		return mcp.NewToolResultError("batch must be at least 1"), nil
	}
	explicitSize := req.GetInt("batch_size", 0)
	if explicitSize < 0 {
		return mcp.NewToolResultError("batch_size must be positive"), nil
	}

	fromID := 0
	if raw := strings.TrimSpace(req.GetString("from_id", "")); raw != "" {
		ref, err := task.ParseRef(raw)
		if err != nil || ref.IsSubtask() {
			return mcp.NewToolResultError("from_id must be a task id"), nil
		}
		fromID = ref.Task
	}

	f, _, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	subset, errResult := selectSubset(f, req.GetString("ids", ""), func(t *task.Task) bool {
		return t.ID >= fromID && !t.Status.IsComplete()
	})
	if errResult != nil {
		return errResult, nil
	}
	if len(subset) == 0 {
		return mcp.NewToolResultText("No tasks to update; nothing matches the given range."), nil
	}

	plan := task.UpdateBatching.Plan(subset, explicitSize)
	batches := task.Partition(subset, plan.BatchSize, batchNum)
	if batches == nil {
		return mcp.NewToolResultError(fmt.Sprintf(
			"batch %d is out of range; the plan has %d batch(es)", batchNum, plan.TotalBatches)), nil
	}

	pair := prompts.UpdateBatch(batches[0], batchNum, plan.TotalBatches, updateContext)

	var b strings.Builder
	writePlanHeader(&b, "Task Update Plan", plan, batchNum, len(batches[0]))
	b.WriteString(pair.Render())
	if batchNum < plan.TotalBatches {
		fmt.Fprintf(&b, "\n\nAfter applying this batch, call tasks_plan_update with batch=%d.", batchNum+1)
	}
	return mcp.NewToolResultText(b.String()), nil
}
