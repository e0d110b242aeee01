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

// PlanComplexityTool handles the tasks_plan_complexity MCP tool.
type PlanComplexityTool struct {
	store store.Store
}

// NewPlanComplexityTool creates a PlanComplexityTool with the given task store.
func NewPlanComplexityTool(s store.Store) *PlanComplexityTool {
	return &PlanComplexityTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *PlanComplexityTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_plan_complexity",
		mcp.WithDescription(
			"Plan a complexity analysis pass over the pending tasks. Large "+
				"collections are split into token-budgeted batches; each call "+
				"returns the analysis prompt for one batch. Persist each "+
				"batch's results with tasks_save_complexity, then resume with "+
				"the next batch number.",
		),
		mcp.WithNumber("batch",
			mcp.Description("1-based batch number to produce the prompt for. Default: 1."),
		),
		mcp.WithNumber("batch_size",
			mcp.Description("Explicit batch size, overriding the token-budget estimate."),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Complexity score (1-10) above which task expansion is recommended. Default: 5."),
		),
		mcp.WithBoolean("research",
			mcp.Description("Ask for research-backed analysis. Default: false."),
		),
		mcp.WithString("ids",
			mcp.Description("Comma-separated task ids to analyze. Default: every non-complete task."),
		),
	)
}

// Handle processes the tasks_plan_complexity tool call.
func (t *PlanComplexityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	batchNum := req.GetInt("batch", 1)
	if batchNum < 1 {
		return mcp.NewToolResultError("batch must be at least 1"), nil
	}
	explicitSize := req.GetInt("batch_size", 0)
	if explicitSize < 0 {
		return mcp.NewToolResultError("batch_size must be positive"), nil
	}
	threshold := req.GetInt("threshold", 5)
	if threshold < 1 || threshold > 10 {
		return mcp.NewToolResultError("threshold must be between 1 and 10"), nil
	}
	research := req.GetBool("research", false)

	f, _, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	subset, errResult := selectSubset(f, req.GetString("ids", ""), func(t *task.Task) bool {
		return !t.Status.IsComplete()
	})
	if errResult != nil {
		return errResult, nil
	}
	if len(subset) == 0 {
		return mcp.NewToolResultText("No tasks to analyze; every task is already complete."), nil
	}

	plan := task.ComplexityBatching.Plan(subset, explicitSize)
	batches := task.Partition(subset, plan.BatchSize, batchNum)
	if batches == nil {
		return mcp.NewToolResultError(fmt.Sprintf(
			"batch %d is out of range; the plan has %d batch(es)", batchNum, plan.TotalBatches)), nil
	}

	pair := prompts.ComplexityBatch(batches[0], batchNum, plan.TotalBatches, threshold, research)

	var b strings.Builder
	writePlanHeader(&b, "Complexity Analysis Plan", plan, batchNum, len(batches[0]))
	b.WriteString(pair.Render())
	if batchNum < plan.TotalBatches {
		fmt.Fprintf(&b, "\n\nAfter saving this batch, call tasks_plan_complexity with batch=%d.", batchNum+1)
	}
	return mcp.NewToolResultText(b.String()), nil
}
