package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// SaveComplexityTool handles the tasks_save_complexity MCP tool.
type SaveComplexityTool struct {
	store store.Store
	rec   *Recorder
}

// NewSaveComplexityTool creates a SaveComplexityTool with the given task store.
func NewSaveComplexityTool(s store.Store, rec *Recorder) *SaveComplexityTool {
	return &SaveComplexityTool{store: s, rec: rec}
}

// Definition returns the MCP tool definition for registration.
func (t *SaveComplexityTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_save_complexity",
		mcp.WithDescription(
			"Persist one batch of complexity analyses into the project's "+
				"complexity report. Analyses are merged by task id, so batches "+
				"can be saved in any order and re-saving a task overwrites its "+
				"previous analysis.",
		),
		mcp.WithString("analyses",
			mcp.Required(),
			mcp.Description(`JSON array of analyses: [{"taskId":1,"taskTitle":"...","complexityScore":7,"recommendedSubtasks":4,"expansionPrompt":"...","reasoning":"..."}]`),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Complexity score above which expansion is recommended. Default: 5."),
		),
		mcp.WithBoolean("research",
			mcp.Description("Mark the report as research-backed. Default: false."),
		),
	)
}

// Handle processes the tasks_save_complexity tool call.
func (t *SaveComplexityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var batch []task.ComplexityAnalysis
	if err := json.Unmarshal([]byte(req.GetString("analyses", "")), &batch); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analyses is not a valid JSON array: %v", err)), nil
	}
	if len(batch) == 0 {
		return mcp.NewToolResultError("analyses must contain at least one entry"), nil
	}
	threshold := req.GetInt("threshold", 5)

	f, root, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	for _, a := range batch {
		if f.Task(a.TaskID) == nil {
			return mcp.NewToolResultError(fmt.Sprintf("analysis references unknown task %d", a.TaskID)), nil
		}
		if a.ComplexityScore < 1 || a.ComplexityScore > 10 {
			return mcp.NewToolResultError(fmt.Sprintf(
				"task %d: complexityScore must be between 1 and 10, got %d", a.TaskID, a.ComplexityScore)), nil
		}
	}

	report, err := t.store.LoadReport(root)
	if errors.Is(err, store.ErrNotFound) {
		report = &task.ComplexityReport{}
	} else if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load complexity report: %v", err)), nil
	}

	report.Merge(batch)
	report.Meta.GeneratedAt = task.Now()
	report.Meta.TotalTasks = len(f.Tasks)
	report.Meta.ThresholdScore = threshold
	report.Meta.UsedResearch = req.GetBool("research", false)
	report.Meta.BatchProcessing = report.Meta.TasksAnalyzed < len(f.Tasks)

	if err := t.store.SaveReport(root, report); err != nil {
		return saveFailed(err), nil
	}
	t.rec.Log("tasks_save_complexity", "-", fmt.Sprintf("%d analyses merged", len(batch)))

	var expandable []string
	for _, a := range batch {
		if a.ComplexityScore >= threshold {
			expandable = append(expandable, strconv.Itoa(a.TaskID))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Saved %d analyses (%d of %d tasks analyzed so far).",
		len(batch), report.Meta.TasksAnalyzed, len(f.Tasks))
	if len(expandable) > 0 {
		fmt.Fprintf(&b, "\n\nTasks scoring %d or higher could use expansion; consider tasks_expand for: %s.",
			threshold, strings.Join(expandable, ", "))
	}
	return mcp.NewToolResultText(b.String()), nil
}
