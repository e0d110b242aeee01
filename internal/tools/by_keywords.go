package tools

import (
	"context"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ByKeywordsTool handles the tasks_by_keywords MCP tool.
type ByKeywordsTool struct {
	store store.Store
}

// NewByKeywordsTool creates a ByKeywordsTool with the given task store.
func NewByKeywordsTool(s store.Store) *ByKeywordsTool {
	return &ByKeywordsTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *ByKeywordsTool) Definition() mcp.Tool {
	return keywordSearch.definition(
		"Find tasks whose keywords fuzzily match the given terms. Matching " +
			"uses exact, substring and edit-distance tiers; each match is " +
			"returned with its score and the keywords that matched.",
	)
}

// Handle processes the tasks_by_keywords tool call.
func (t *ByKeywordsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return keywordSearch.handle(t.store, req)
}
