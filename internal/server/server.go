// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts that depend on abstractions.
// No business logic lives here — only wiring.
package server

import (
	"log/slog"

	"github.com/algae514/task-master-ai-algae/internal/config"
	"github.com/algae514/task-master-ai-algae/internal/history"
	"github.com/algae514/task-master-ai-algae/internal/prompts"
	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools and prompts
// registered. This is the single place where all dependencies are
// resolved.
//
// The returned cleanup function closes the history database connection
// and must be called on shutdown (typically via defer). It is always
// non-nil and safe to call even if history init failed.
func New() (*server.MCPServer, func(), error) {
	taskStore := store.NewFileStore()

	s := server.NewMCPServer(
		"taskmaster",
		Version,
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- History subsystem ---
	//
	// History is independent from the task tools: if the activity log
	// fails to initialize, every tool keeps working. We log a warning
	// and hand the tools a nil-safe recorder instead.

	cleanup := noop
	var hist *history.Store
	root, err := tools.ProjectRoot()
	if err != nil {
		slog.Warn("project root resolution failed, using working directory", "error", err)
		root = "."
	}
	cfg, err := config.Load(root)
	if err != nil {
		slog.Warn("config load failed, using defaults", "error", err)
		cfg = config.Default()
	}
	if cfg.History {
		h, err := history.New(history.Config{Path: cfg.ResolveHistoryPath(root)})
		if err != nil {
			slog.Warn("activity history disabled", "error", err)
		} else {
			hist = h
			cleanup = func() {
				if err := h.Close(); err != nil {
					slog.Warn("history store close", "error", err)
				}
			}
		}
	}
	rec := tools.NewRecorder(hist)

	// --- Register task tools ---

	initTool := tools.NewInitTool(taskStore, rec)
	s.AddTool(initTool.Definition(), initTool.Handle)

	addTool := tools.NewAddTool(taskStore, rec)
	s.AddTool(addTool.Definition(), addTool.Handle)

	listTool := tools.NewListTool(taskStore)
	s.AddTool(listTool.Definition(), listTool.Handle)

	showTool := tools.NewShowTool(taskStore)
	s.AddTool(showTool.Definition(), showTool.Handle)

	nextTool := tools.NewNextTool(taskStore)
	s.AddTool(nextTool.Definition(), nextTool.Handle)

	setStatusTool := tools.NewSetStatusTool(taskStore, rec)
	s.AddTool(setStatusTool.Definition(), setStatusTool.Handle)

	// --- Subtask tools ---

	addSubtaskTool := tools.NewAddSubtaskTool(taskStore, rec)
	s.AddTool(addSubtaskTool.Definition(), addSubtaskTool.Handle)

	removeSubtaskTool := tools.NewRemoveSubtaskTool(taskStore, rec)
	s.AddTool(removeSubtaskTool.Definition(), removeSubtaskTool.Handle)

	clearSubtasksTool := tools.NewClearSubtasksTool(taskStore, rec)
	s.AddTool(clearSubtasksTool.Definition(), clearSubtasksTool.Handle)

	// --- Dependency and removal tools ---

	addDependencyTool := tools.NewAddDependencyTool(taskStore, rec)
	s.AddTool(addDependencyTool.Definition(), addDependencyTool.Handle)

	removeDependencyTool := tools.NewRemoveDependencyTool(taskStore, rec)
	s.AddTool(removeDependencyTool.Definition(), removeDependencyTool.Handle)

	removeTaskTool := tools.NewRemoveTaskTool(taskStore, rec)
	s.AddTool(removeTaskTool.Definition(), removeTaskTool.Handle)

	// --- Search and analytics tools ---

	byKeywordsTool := tools.NewByKeywordsTool(taskStore)
	s.AddTool(byKeywordsTool.Definition(), byKeywordsTool.Handle)

	byFlowsTool := tools.NewByFlowsTool(taskStore)
	s.AddTool(byFlowsTool.Definition(), byFlowsTool.Handle)

	keywordsTool := tools.NewKeywordsTool(taskStore)
	s.AddTool(keywordsTool.Definition(), keywordsTool.Handle)

	flowsTool := tools.NewFlowsTool(taskStore)
	s.AddTool(flowsTool.Definition(), flowsTool.Handle)

	// --- Batch planning and guidance tools ---

	planComplexityTool := tools.NewPlanComplexityTool(taskStore)
	s.AddTool(planComplexityTool.Definition(), planComplexityTool.Handle)

	planUpdateTool := tools.NewPlanUpdateTool(taskStore)
	s.AddTool(planUpdateTool.Definition(), planUpdateTool.Handle)

	saveComplexityTool := tools.NewSaveComplexityTool(taskStore, rec)
	s.AddTool(saveComplexityTool.Definition(), saveComplexityTool.Handle)

	expandTool := tools.NewExpandTool(taskStore)
	s.AddTool(expandTool.Definition(), expandTool.Handle)

	// History query tool registered unconditionally — it handles a nil
	// store internally by reporting that history is disabled.
	historyTool := tools.NewHistoryTool(hist)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	// --- Register prompts ---

	kickoffPrompt := prompts.NewKickoffPrompt()
	s.AddPrompt(kickoffPrompt.Definition(), kickoffPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when history
// is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system-level guidance clients show
// their model so it knows when to reach for the task tools.
func serverInstructions() string {
	return `You have access to Taskmaster, a task-tracking MCP server for development projects.

## WHEN TO USE Taskmaster

Reach for the task tools when the user:
- Starts a new project or feature and wants to break it into trackable work
- Asks "what should I work on next" (use tasks_next)
- Finishes a piece of work (use tasks_set_status)
- Wants an overview of progress (use tasks_list, tasks_flows)
- Mentions work related to a theme (use tasks_by_keywords / tasks_by_flows first)

## CONVENTIONS

- Every task should carry 3-8 keywords and 1-4 flow names so search works.
- Record dependencies with tasks_add_dependency; tasks_next respects them.
- Subtask ids are written "parent.sub", e.g. "3.1".
- For large collections, complexity analysis and content updates run in
  batches: tasks_plan_complexity / tasks_plan_update produce one batch
  prompt at a time, and tasks_save_complexity persists analysis results.

Do not edit .taskmaster/tasks.json by hand; always go through the tools.`
}
