package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// ShowTool handles the tasks_show MCP tool.
// It renders full detail for one task or subtask, including its
// dependents and relevance chain.
type ShowTool struct {
	store store.Store
}

// NewShowTool creates a ShowTool with the given task store.
func NewShowTool(s store.Store) *ShowTool {
	return &ShowTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *ShowTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_show",
		mcp.WithDescription(
			"Show full detail for a task or subtask: content, dependencies, "+
				"dependents, related tasks, and complexity score when analyzed. "+
				"Subtask ids use the \"parent.sub\" form (e.g. \"3.1\").",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id (\"3\") or subtask id (\"3.1\")."),
		),
		mcp.WithString("subtask_status",
			mcp.Description("Only list subtasks with this status."),
			mcp.Enum("pending", "in-progress", "done", "completed", "blocked", "deferred", "cancelled"),
		),
	)
}

// Handle processes the tasks_show tool call.
func (t *ShowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := task.ParseRef(req.GetString("id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	subFilter := task.Status(req.GetString("subtask_status", ""))
	if subFilter != "" {
		if err := task.ValidateStatus(subFilter); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	f, root, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	r, ok := f.Resolve(ref)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Task %s not found", ref)), nil
	}

	if r.Subtask != nil {
		return mcp.NewToolResultText(t.renderSubtask(f, ref, r)), nil
	}
	return mcp.NewToolResultText(t.renderTask(f, root, r.Task, subFilter)), nil
}

func (t *ShowTool) renderTask(f *task.File, root string, tsk *task.Task, subFilter task.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Task %d: %s\n\n", tsk.ID, tsk.Title)
	fmt.Fprintf(&b, "**Status:** %s\n**Priority:** %s\n", statusBadge(tsk.Status), tsk.Priority)
	fmt.Fprintf(&b, "**Dependencies:** %s\n", refListOrDash(tsk.Dependencies))
	fmt.Fprintf(&b, "**Dependents:** %s\n", refListOrDash(task.DependentsOf(f, task.TaskRef(tsk.ID))))

	if len(tsk.Keywords) > 0 {
		fmt.Fprintf(&b, "**Keywords:** %s\n", strings.Join(tsk.Keywords, ", "))
	}
	if len(tsk.FlowNames) > 0 {
		fmt.Fprintf(&b, "**Flows:** %s\n", strings.Join(tsk.FlowNames, ", "))
	}

	// Complexity score, when the companion report covers this task.
	if report, err := t.store.LoadReport(root); err == nil {
		if a := report.Analysis(tsk.ID); a != nil {
			fmt.Fprintf(&b, "**Complexity:** %d/10 (recommends %d subtasks)\n",
				a.ComplexityScore, a.RecommendedSubtasks)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(&b, "**Complexity:** report unreadable: %v\n", err)
	}

	if tsk.Description != "" {
		fmt.Fprintf(&b, "\n## Description\n\n%s\n", tsk.Description)
	}
	if tsk.Details != "" {
		fmt.Fprintf(&b, "\n## Details\n\n%s\n", tsk.Details)
	}
	if tsk.TestStrategy != "" {
		fmt.Fprintf(&b, "\n## Test Strategy\n\n%s\n", tsk.TestStrategy)
	}

	if len(tsk.Subtasks) > 0 {
		b.WriteString("\n## Subtasks\n\n")
		for i := range tsk.Subtasks {
			sub := &tsk.Subtasks[i]
			if subFilter != "" && sub.Status != subFilter {
				continue
			}
			fmt.Fprintf(&b, "- **%d.%d** %s — %s\n", tsk.ID, sub.ID, sub.Title, statusBadge(sub.Status))
		}
	}

	// Related work, via the id-seeded relevance chain (one hop).
	chain := task.BuildChain(f, tsk.ID, 0)
	delete(chain, tsk.ID)
	if len(chain) > 0 {
		ids := make([]int, 0, len(chain))
		for id := range chain {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		b.WriteString("\n## Related Tasks\n\n")
		for _, id := range ids {
			if rt := f.Task(id); rt != nil {
				fmt.Fprintf(&b, "- **%d** %s — %s\n", id, rt.Title, statusBadge(rt.Status))
			}
		}
	}

	return b.String()
}

func (t *ShowTool) renderSubtask(f *task.File, ref task.Ref, r task.Resolved) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Subtask %s: %s\n\n", ref, r.Subtask.Title)
	fmt.Fprintf(&b, "**Parent:** %d (%s)\n**Status:** %s\n", r.Task.ID, r.Task.Title, statusBadge(r.Subtask.Status))
	fmt.Fprintf(&b, "**Dependencies:** %s\n", refListOrDash(r.Subtask.Dependencies))
	fmt.Fprintf(&b, "**Dependents:** %s\n", refListOrDash(task.DependentsOf(f, ref)))

	if r.Subtask.Description != "" {
		fmt.Fprintf(&b, "\n## Description\n\n%s\n", r.Subtask.Description)
	}
	if r.Subtask.Details != "" {
		fmt.Fprintf(&b, "\n## Details\n\n%s\n", r.Subtask.Details)
	}
	if r.Subtask.TestStrategy != "" {
		fmt.Fprintf(&b, "\n## Test Strategy\n\n%s\n", r.Subtask.TestStrategy)
	}
	return b.String()
}
