package tools

import (
	"context"
	"fmt"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// InitTool handles the tasks_init MCP tool.
// It scaffolds the .taskmaster/ data directory with an empty collection.
type InitTool struct {
	store store.Store
	rec   *Recorder
}

// NewInitTool creates an InitTool with the given task store.
func NewInitTool(s store.Store, rec *Recorder) *InitTool {
	return &InitTool{store: s, rec: rec}
}

// Definition returns the MCP tool definition for registration.
func (t *InitTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_init",
		mcp.WithDescription(
			"Initialize task tracking for the current project. Creates the "+
				".taskmaster/ directory with an empty task collection. Fails if "+
				"the project is already initialized.",
		),
		mcp.WithString("project_name",
			mcp.Required(),
			mcp.Description("Name of the project, recorded in the collection metadata."),
		),
	)
}

// Handle processes the tasks_init tool call.
func (t *InitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectName := req.GetString("project_name", "")
	if projectName == "" {
		return mcp.NewToolResultError("project_name is required"), nil
	}

	root, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	f, err := t.store.InitProject(root, projectName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Init failed: %v", err)), nil
	}

	t.rec.Log("tasks_init", "-", "project "+projectName)

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Project Initialized\n\n"+
			"**Project:** %s\n"+
			"**Store:** `%s`\n\n"+
			"The collection is empty. Capture work with `tasks_add`, or "+
			"describe the project via the `tasks-kickoff` prompt.",
		f.Metadata.ProjectName, store.TasksPath(root),
	)), nil
}
