// Package tools implements the MCP tool handlers over the task store.
//
// Each tool is a struct receiving its dependencies at construction
// (DIP) and exposing a Definition for registration plus a Handle
// compatible with mcp-go's CallToolRequest signature. One file per
// tool. Domain failures (not found, invalid argument, locked) come
// back as error-shaped tool results; only infrastructure failures
// return a Go error.
package tools

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/algae514/task-master-ai-algae/internal/history"
	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// findProjectRoot walks up from the current working directory looking
// for an existing .taskmaster/ data directory. If none is found,
// returns cwd — tasks_init creates the directory there. The
// TASKMASTER_DIR environment variable short-circuits the walk.
func findProjectRoot() (string, error) {
	if dir := os.Getenv("TASKMASTER_DIR"); dir != "" {
		return dir, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		candidate := filepath.Join(current, store.Dir, store.TasksFile)
		if _, err := os.Stat(candidate); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root with no project found.
			// Return original cwd — the caller decides what to do.
			return dir, nil
		}
		current = parent
	}
}

// ProjectRoot resolves the project root the same way the tool
// handlers do, so callers outside this package (config, history)
// anchor their files next to the task store rather than the bare
// working directory.
func ProjectRoot() (string, error) {
	return findProjectRoot()
}

// loadProject resolves the project root and loads the task collection.
// A missing store comes back as an error-shaped tool result (errResult
// non-nil); infrastructure failures come back as err.
func loadProject(s store.Store) (f *task.File, root string, errResult *mcp.CallToolResult, err error) {
	root, err = findProjectRoot()
	if err != nil {
		return nil, "", nil, fmt.Errorf("finding project root: %w", err)
	}

	f, err = s.LoadTasks(root)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", mcp.NewToolResultError("No task store found. Run `tasks_init` first."), nil
		}
		return nil, "", nil, fmt.Errorf("loading tasks: %w", err)
	}
	return f, root, nil, nil
}

// saveFailed formats the persistence-failure result. The in-memory
// change is discarded with the request — no partial commit is visible
// to subsequent calls.
func saveFailed(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Failed to persist changes, nothing was applied: %v", err))
}

// Recorder writes mutation entries to the history log. It is nil-safe:
// when history is disabled every Log call is a no-op, so mutation
// tools never need to care whether the subsystem initialized.
type Recorder struct {
	hist *history.Store
}

// NewRecorder creates a Recorder over the given history store (which
// may be nil).
func NewRecorder(h *history.Store) *Recorder {
	return &Recorder{hist: h}
}

// Log records one mutation, best-effort. History failures are logged
// and swallowed — the mutation already persisted.
func (r *Recorder) Log(tool, target, detail string) {
	if r == nil || r.hist == nil {
		return
	}
	if err := r.hist.Record(tool, target, detail); err != nil {
		slog.Warn("history record failed", "tool", tool, "error", err)
	}
}

// statusBadge renders a status with a scannable marker, matching the
// list/show output style.
func statusBadge(s task.Status) string {
	switch s {
	case task.StatusDone, task.StatusCompleted:
		return "✅ " + string(s)
	case task.StatusInProgress:
		return "🔄 " + string(s)
	case task.StatusBlocked:
		return "⛔ " + string(s)
	case task.StatusDeferred:
		return "⏸ " + string(s)
	case task.StatusCancelled:
		return "🚫 " + string(s)
	}
	return "⬜ " + string(s)
}
