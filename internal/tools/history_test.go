package tools

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/algae514/task-master-ai-algae/internal/history"
)

func newTestHistory(t *testing.T) *history.Store {
	t.Helper()
	h, err := history.New(history.Config{Path: filepath.Join(t.TempDir(), "history.db")})
	if err != nil {
		t.Fatalf("history.New: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestHistoryTool_Handle_Disabled(t *testing.T) {
	tool := NewHistoryTool(nil)

	result := callTool(t, tool, map[string]interface{}{})
	if isErrorResult(result) {
		t.Fatalf("disabled history is not an error: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "disabled") {
		t.Errorf("unexpected text: %s", getResultText(result))
	}
}

func TestHistoryTool_Handle_Empty(t *testing.T) {
	tool := NewHistoryTool(newTestHistory(t))

	result := callTool(t, tool, map[string]interface{}{})
	if !strings.Contains(getResultText(result), "No activity recorded yet.") {
		t.Errorf("unexpected text: %s", getResultText(result))
	}
}

func TestHistoryTool_Handle_Entries(t *testing.T) {
	h := newTestHistory(t)
	if err := h.Record("tasks_set_status", "2", "pending -> in-progress"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := h.Record("tasks_add", "5", "created"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	tool := NewHistoryTool(h)
	result := callTool(t, tool, map[string]interface{}{})
	text := getResultText(result)
	if !strings.Contains(text, "tasks_set_status") || !strings.Contains(text, "tasks_add") {
		t.Errorf("expected both entries, got: %s", text)
	}
	if !strings.Contains(text, "Showing 2 of 2 recorded entries.") {
		t.Errorf("unexpected footer: %s", text)
	}
}

func TestHistoryTool_Handle_ToolFilter(t *testing.T) {
	h := newTestHistory(t)
	_ = h.Record("tasks_set_status", "2", "pending -> in-progress")
	_ = h.Record("tasks_add", "5", "created")

	tool := NewHistoryTool(h)
	result := callTool(t, tool, map[string]interface{}{"tool": "tasks_add"})
	text := getResultText(result)
	if strings.Contains(text, "tasks_set_status") {
		t.Errorf("filter should drop other tools, got: %s", text)
	}
	if !strings.Contains(text, "tasks_add") {
		t.Errorf("filtered tool should remain, got: %s", text)
	}
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	r.Log("tasks_add", "1", "no-op")

	NewRecorder(nil).Log("tasks_add", "1", "no-op")
}
