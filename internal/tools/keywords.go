package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// KeywordsTool handles the tasks_keywords MCP tool.
type KeywordsTool struct {
	store store.Store
}

// NewKeywordsTool creates a KeywordsTool with the given task store.
func NewKeywordsTool(s store.Store) *KeywordsTool {
	return &KeywordsTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *KeywordsTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_keywords",
		mcp.WithDescription(
			"List keyword usage across the collection: per-keyword task "+
				"counts and which keyword pairs appear together on the same "+
				"task. Useful for spotting themes and inconsistent tagging.",
		),
		mcp.WithNumber("min_count",
			mcp.Description("Only list keywords used by at least this many tasks. Default: 1."),
		),
		mcp.WithBoolean("with_pairs",
			mcp.Description("Include the co-occurrence table. Default: true."),
		),
	)
}

// Handle processes the tasks_keywords tool call.
func (t *KeywordsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minCount := req.GetInt("min_count", 1)
	if minCount < 1 {
		return mcp.NewToolResultError("min_count must be at least 1"), nil
	}

	f, _, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	freq := task.TermFrequencies(f.Tasks, task.KeywordTerms)
	if len(freq) == 0 {
		return mcp.NewToolResultText("No keywords recorded yet. Add tasks with 3-8 keywords each to enable keyword search."), nil
	}

	var b strings.Builder
	b.WriteString("# Keywords\n\n| Keyword | Tasks |\n|---|---|\n")
	listed := 0
	for _, kc := range freq {
		if kc.Count < minCount {
			continue
		}
		fmt.Fprintf(&b, "| %s | %d |\n", kc.Term, kc.Count)
		listed++
	}
	if listed == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No keyword is used by %d or more tasks.", minCount)), nil
	}

	if req.GetBool("with_pairs", true) {
		pairs := task.TermCooccurrence(f.Tasks, task.KeywordTerms)
		if len(pairs) > 0 {
			b.WriteString("\n## Co-occurring Pairs\n\n| Pair | Tasks |\n|---|---|\n")
			for _, pc := range pairs {
				fmt.Fprintf(&b, "| %s | %d |\n", strings.ReplaceAll(pc.Term, "|", " + "), pc.Count)
			}
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}
