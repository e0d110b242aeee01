package tools

import (
	"context"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ByFlowsTool handles the tasks_by_flows MCP tool.
type ByFlowsTool struct {
	store store.Store
}

// NewByFlowsTool creates a ByFlowsTool with the given task store.
func NewByFlowsTool(s store.Store) *ByFlowsTool {
	return &ByFlowsTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *ByFlowsTool) Definition() mcp.Tool {
	return flowSearch.definition(
		"Find tasks whose flow names fuzzily match the given terms. Flow " +
			"matching uses stricter thresholds than keyword matching since " +
			"flow names are short and demand higher precision.",
	)
}

// Handle processes the tasks_by_flows tool call.
func (t *ByFlowsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return flowSearch.handle(t.store, req)
}
