package tools

import (
	"strings"
	"testing"

	"github.com/algae514/task-master-ai-algae/internal/task"
)

// --- PlanComplexityTool ---

func TestPlanComplexityTool_Handle_SingleBatch(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewPlanComplexityTool(s)

	result := callTool(t, tool, map[string]interface{}{})
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	text := getResultText(result)
	if !strings.Contains(text, "Batch 1 of 1") {
		t.Errorf("small set should fit one batch, got: %s", text)
	}
	if !strings.Contains(text, "## System Prompt") || !strings.Contains(text, "## User Prompt") {
		t.Errorf("expected guidance prompt pair, got: %s", text)
	}
	// Task 1 is done and must not be analyzed.
	if strings.Contains(text, "Set up authentication") {
		t.Errorf("completed task should be excluded, got: %s", text)
	}
}

func TestPlanComplexityTool_Handle_ExplicitBatchSize(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewPlanComplexityTool(s)

	result := callTool(t, tool, map[string]interface{}{
		"batch_size": 2,
		"batch":      2,
	})
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	// 3 pending tasks at size 2 -> batch 2 holds the last one.
	text := getResultText(result)
	if !strings.Contains(text, "Batch 2 of 2") {
		t.Errorf("expected second batch, got: %s", text)
	}
	if strings.Contains(text, "batch=3") {
		t.Errorf("last batch should not carry a resume hint, got: %s", text)
	}
}

func TestPlanComplexityTool_Handle_BatchOutOfRange(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewPlanComplexityTool(s)

	result := callTool(t, tool, map[string]interface{}{"batch": 9})
	if !isErrorResult(result) {
		t.Fatal("expected error for out-of-range batch")
	}
}

func TestPlanComplexityTool_Handle_AllComplete(t *testing.T) {
	_, s := seedProject(t, []task.Task{
		{ID: 1, Title: "Shipped", Status: task.StatusDone},
	})
	tool := NewPlanComplexityTool(s)

	result := callTool(t, tool, map[string]interface{}{})
	if isErrorResult(result) {
		t.Fatalf("nothing to analyze is not an error: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "No tasks to analyze") {
		t.Errorf("unexpected text: %s", getResultText(result))
	}
}

// --- PlanUpdateTool ---

func TestPlanUpdateTool_Handle(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewPlanUpdateTool(s)

	result := callTool(t, tool, map[string]interface{}{
		"context": "Payments provider switched from Stripe to Adyen.",
	})
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	text := getResultText(result)
	if !strings.Contains(text, "Adyen") {
		t.Errorf("update context should be embedded in the prompt, got: %s", text)
	}
}

func TestPlanUpdateTool_Handle_FromID(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewPlanUpdateTool(s)

	result := callTool(t, tool, map[string]interface{}{
		"context": "New design system.",
		"from_id": "4",
	})
	text := getResultText(result)
	if !strings.Contains(text, "Write API docs") {
		t.Errorf("task 4 should be in the batch, got: %s", text)
	}
	if strings.Contains(text, "Build payments service") {
		t.Errorf("task 2 is below from_id and should be excluded, got: %s", text)
	}
}

func TestPlanUpdateTool_Handle_MissingContext(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewPlanUpdateTool(s)

	result := callTool(t, tool, map[string]interface{}{})
	if !isErrorResult(result) {
		t.Fatal("expected error for missing context")
	}
}

// --- SaveComplexityTool ---

func TestSaveComplexityTool_Handle_MergeAcrossBatches(t *testing.T) {
	tmpDir, s := seedProject(t, fixtureTasks())
	tool := NewSaveComplexityTool(s, NewRecorder(nil))

	first := callTool(t, tool, map[string]interface{}{
		"analyses": `[{"taskId":2,"taskTitle":"Build payments service","complexityScore":8,"recommendedSubtasks":5,"expansionPrompt":"Break into provider integration steps","reasoning":"External API, idempotency, retries"}]`,
	})
	if isErrorResult(first) {
		t.Fatalf("first save failed: %s", getResultText(first))
	}
	if !strings.Contains(getResultText(first), "tasks_expand") {
		t.Errorf("score above threshold should suggest expansion, got: %s", getResultText(first))
	}

	second := callTool(t, tool, map[string]interface{}{
		"analyses": `[{"taskId":4,"taskTitle":"Write API docs","complexityScore":2,"recommendedSubtasks":0,"expansionPrompt":"","reasoning":"Straightforward"}]`,
	})
	if isErrorResult(second) {
		t.Fatalf("second save failed: %s", getResultText(second))
	}

	report, err := s.LoadReport(tmpDir)
	if err != nil {
		t.Fatalf("LoadReport: %v", err)
	}
	if report.Meta.TasksAnalyzed != 2 {
		t.Errorf("tasksAnalyzed = %d, want 2", report.Meta.TasksAnalyzed)
	}
	if a := report.Analysis(2); a == nil || a.ComplexityScore != 8 {
		t.Errorf("analysis for task 2 = %+v, want score 8", a)
	}
	if a := report.Analysis(4); a == nil || a.ComplexityScore != 2 {
		t.Errorf("analysis for task 4 = %+v, want score 2", a)
	}
}

func TestSaveComplexityTool_Handle_UnknownTask(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewSaveComplexityTool(s, NewRecorder(nil))

	result := callTool(t, tool, map[string]interface{}{
		"analyses": `[{"taskId":99,"complexityScore":5}]`,
	})
	if !isErrorResult(result) {
		t.Fatal("expected error for unknown task id")
	}
}

func TestSaveComplexityTool_Handle_BadJSON(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewSaveComplexityTool(s, NewRecorder(nil))

	result := callTool(t, tool, map[string]interface{}{
		"analyses": "not json",
	})
	if !isErrorResult(result) {
		t.Fatal("expected error for malformed analyses")
	}
}

// --- ExpandTool ---

func TestExpandTool_Handle_UsesAnalysis(t *testing.T) {
	tmpDir, s := seedProject(t, fixtureTasks())
	report := &task.ComplexityReport{}
	report.Merge([]task.ComplexityAnalysis{{
		TaskID: 2, TaskTitle: "Build payments service",
		ComplexityScore: 8, RecommendedSubtasks: 5,
		ExpansionPrompt: "Split by provider integration milestone",
	}})
	if err := s.SaveReport(tmpDir, report); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	tool := NewExpandTool(s)
	result := callTool(t, tool, map[string]interface{}{"id": 2})
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	text := getResultText(result)
	if !strings.Contains(text, "Split by provider integration milestone") {
		t.Errorf("expansion prompt from the report should seed the guidance, got: %s", text)
	}
	if !strings.Contains(text, "5") {
		t.Errorf("recommended subtask count should be used, got: %s", text)
	}
}

func TestExpandTool_Handle_CompletedTask(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewExpandTool(s)

	result := callTool(t, tool, map[string]interface{}{"id": 1})
	if !isErrorResult(result) {
		t.Fatal("expected error for completed task")
	}
}

func TestExpandTool_Handle_NoReport(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewExpandTool(s)

	result := callTool(t, tool, map[string]interface{}{"id": 4})
	if isErrorResult(result) {
		t.Fatalf("missing report should not fail expansion: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "tasks_add_subtask") {
		t.Errorf("guidance should point at tasks_add_subtask, got: %s", getResultText(result))
	}
}
