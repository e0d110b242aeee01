package tools

import (
	"strings"
	"testing"
)

// --- ByKeywordsTool ---

func TestByKeywordsTool_Handle_ExactMatch(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewByKeywordsTool(s)

	result := callTool(t, tool, map[string]interface{}{"terms": "payments"})
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	text := getResultText(result)
	if !strings.Contains(text, "Build payments service") {
		t.Errorf("expected task 2 in matches, got: %s", text)
	}
	if !strings.Contains(text, "matched: payments") {
		t.Errorf("expected matched-terms explanation, got: %s", text)
	}
}

func TestByKeywordsTool_Handle_NoMatch(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewByKeywordsTool(s)

	result := callTool(t, tool, map[string]interface{}{"terms": "kubernetes"})
	if isErrorResult(result) {
		t.Fatalf("no matches is not an error: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "No tasks matched") {
		t.Errorf("unexpected text: %s", getResultText(result))
	}
}

func TestByKeywordsTool_Handle_StatusFilter(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewByKeywordsTool(s)

	result := callTool(t, tool, map[string]interface{}{
		"terms":  "auth",
		"status": "pending",
	})
	// Task 1 carries "auth" but is done, so the filter drops it.
	if !strings.Contains(getResultText(result), "No tasks matched") {
		t.Errorf("status filter should exclude task 1, got: %s", getResultText(result))
	}
}

func TestByKeywordsTool_Handle_MaxResults(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewByKeywordsTool(s)

	result := callTool(t, tool, map[string]interface{}{
		"terms":       "checkout,docs,payments",
		"min_score":   0.1,
		"max_results": 1,
	})
	text := getResultText(result)
	if !strings.Contains(text, "Showing first 1 matches") {
		t.Errorf("expected truncation notice, got: %s", text)
	}
}

func TestByKeywordsTool_Handle_InvalidMinScore(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewByKeywordsTool(s)

	result := callTool(t, tool, map[string]interface{}{
		"terms":     "auth",
		"min_score": 1.5,
	})
	if !isErrorResult(result) {
		t.Fatal("expected error for out-of-range min_score")
	}
}

// --- ByFlowsTool ---

func TestByFlowsTool_Handle(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewByFlowsTool(s)

	result := callTool(t, tool, map[string]interface{}{"terms": "checkout"})
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	text := getResultText(result)
	if !strings.Contains(text, "Build payments service") || !strings.Contains(text, "Wire checkout UI") {
		t.Errorf("expected both checkout-flow tasks, got: %s", text)
	}
	if strings.Contains(text, "Set up authentication") {
		t.Errorf("onboarding task should not match checkout, got: %s", text)
	}
}

func TestByFlowsTool_Handle_WithRelevant(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewByFlowsTool(s)

	result := callTool(t, tool, map[string]interface{}{
		"terms":         "checkout",
		"with_relevant": true,
	})
	// Task 2 lists task 4 as relevant, so the expansion pulls it in.
	text := getResultText(result)
	if !strings.Contains(text, "Related Tasks") || !strings.Contains(text, "Write API docs") {
		t.Errorf("expected related task 4 listed, got: %s", text)
	}
}

// --- KeywordsTool ---

func TestKeywordsTool_Handle(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewKeywordsTool(s)

	result := callTool(t, tool, map[string]interface{}{})
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	text := getResultText(result)
	for _, kw := range []string{"auth", "payments", "checkout", "docs"} {
		if !strings.Contains(text, kw) {
			t.Errorf("frequency table should contain %q", kw)
		}
	}
	if !strings.Contains(text, "auth + security") {
		t.Errorf("expected co-occurrence pair, got: %s", text)
	}
}

func TestKeywordsTool_Handle_MinCount(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewKeywordsTool(s)

	result := callTool(t, tool, map[string]interface{}{"min_count": 2})
	text := getResultText(result)
	// "checkout" appears on tasks 2 (flow)... only keywords count here:
	// task 3 carries it once, so nothing reaches count 2.
	if !strings.Contains(text, "No keyword is used by 2 or more tasks.") {
		t.Errorf("unexpected text: %s", text)
	}
}

func TestKeywordsTool_Handle_Empty(t *testing.T) {
	_, s := seedProject(t, nil)
	tool := NewKeywordsTool(s)

	result := callTool(t, tool, map[string]interface{}{})
	if !strings.Contains(getResultText(result), "No keywords recorded yet") {
		t.Errorf("unexpected text: %s", getResultText(result))
	}
}

// --- FlowsTool ---

func TestFlowsTool_Handle(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewFlowsTool(s)

	result := callTool(t, tool, map[string]interface{}{})
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	text := getResultText(result)
	// onboarding: 1 task, done -> 100%. checkout: 2 tasks, none done -> 0%.
	if !strings.Contains(text, "| onboarding | 1 | 1 | 100.0% |") {
		t.Errorf("expected onboarding row, got: %s", text)
	}
	if !strings.Contains(text, "| checkout | 2 | 0 | 0.0% |") {
		t.Errorf("expected checkout row, got: %s", text)
	}
}

func TestFlowsTool_Handle_IncompleteOnly(t *testing.T) {
	_, s := seedProject(t, fixtureTasks())
	tool := NewFlowsTool(s)

	result := callTool(t, tool, map[string]interface{}{"incomplete_only": true})
	text := getResultText(result)
	if strings.Contains(text, "onboarding") {
		t.Errorf("completed flow should be filtered out, got: %s", text)
	}
	if !strings.Contains(text, "checkout") {
		t.Errorf("incomplete flow should remain, got: %s", text)
	}
}
