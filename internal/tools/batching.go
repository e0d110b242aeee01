package tools

import (
	"fmt"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// selectSubset returns the tasks named by the comma-separated id list,
// or every task passing keep when the list is empty.
func selectSubset(f *task.File, rawIDs string, keep func(*task.Task) bool) ([]task.Task, *mcp.CallToolResult) {
	if strings.TrimSpace(rawIDs) == "" {
		var out []task.Task
		for i := range f.Tasks {
			if keep(&f.Tasks[i]) {
				out = append(out, f.Tasks[i])
			}
		}
		return out, nil
	}

	refs, err := task.ParseRefList(rawIDs)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	var out []task.Task
	for _, ref := range refs {
		if ref.IsSubtask() {
			return nil, mcp.NewToolResultError(fmt.Sprintf("%s is a subtask id; pass task ids only", ref))
		}
		t := f.Task(ref.Task)
		if t == nil {
			return nil, mcp.NewToolResultError(fmt.Sprintf("task %d not found", ref.Task))
		}
		out = append(out, *t)
	}
	return out, nil
}

func writePlanHeader(b *strings.Builder, title string, plan task.BatchPlan, batchNum, batchLen int) {
	fmt.Fprintf(b, "# %s\n\n", title)
	fmt.Fprintf(b, "- Batch %d of %d (%d task(s) in this batch)\n", batchNum, plan.TotalBatches, batchLen)
	fmt.Fprintf(b, "- Estimated tokens for the full set: %d\n", plan.EstimatedTokens)
	if plan.UseBatches {
		fmt.Fprintf(b, "- Batch size: %d\n", plan.BatchSize)
	} else {
		b.WriteString("- Fits in a single batch\n")
	}
	b.WriteString("\n")
}
