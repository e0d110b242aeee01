package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// searchDomain parametrizes term search for keywords versus flow names.
type searchDomain struct {
	toolName  string
	termField string
	ctx       task.MatchContext
	terms     func(*task.Task) []string
}

var keywordSearch = searchDomain{
	toolName:  "tasks_by_keywords",
	termField: "keywords",
	ctx:       task.Keywords,
	terms:     task.KeywordTerms,
}

var flowSearch = searchDomain{
	toolName:  "tasks_by_flows",
	termField: "flow names",
	ctx:       task.Flows,
	terms:     task.FlowTerms,
}

type scoredTask struct {
	task    *task.Task
	score   float64
	matched []string
}

func (d searchDomain) definition(desc string) mcp.Tool {
	return mcp.NewTool(d.toolName,
		mcp.WithDescription(desc),
		mcp.WithString("terms",
			mcp.Required(),
			mcp.Description("Comma-separated search terms, matched fuzzily against each task's "+d.termField+"."),
		),
		mcp.WithNumber("min_score",
			mcp.Description("Minimum match score between 0 and 1. Default: 0.3."),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of matches to return. Default: 10."),
		),
		mcp.WithString("status",
			mcp.Description("Only return tasks with this status."),
			mcp.Enum("pending", "in-progress", "done", "completed", "blocked", "deferred", "cancelled"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort key. Default: score."),
			mcp.Enum("score", "id"),
		),
		mcp.WithString("order",
			mcp.Description("Sort direction. Default: desc for score, asc for id."),
			mcp.Enum("asc", "desc"),
		),
		mcp.WithBoolean("with_relevant",
			mcp.Description("Also list related tasks reachable from the matches. Default: false."),
		),
	)
}

func (d searchDomain) handle(s store.Store, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := splitTerms(req.GetString("terms", ""))
	if len(query) == 0 {
		return mcp.NewToolResultError("terms must contain at least one search term"), nil
	}
	minScore := req.GetFloat("min_score", 0.3)
	if minScore < 0 || minScore > 1 {
		return mcp.NewToolResultError("min_score must be between 0 and 1"), nil
	}
	maxResults := req.GetInt("max_results", 10)
	if maxResults < 1 {
		return mcp.NewToolResultError("max_results must be at least 1"), nil
	}
	statusFilter := task.Status(req.GetString("status", ""))
	if statusFilter != "" {
		if err := task.ValidateStatus(statusFilter); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	sortKey := req.GetString("sort", "score")
	order := req.GetString("order", "")
	if order == "" {
		order = "desc"
		if sortKey == "id" {
			order = "asc"
		}
	}

	f, _, errResult, err := loadProject(s)
	if err != nil || errResult != nil {
		return errResult, err
	}

	var matches []scoredTask
	for i := range f.Tasks {
		t := &f.Tasks[i]
		if statusFilter != "" && t.Status != statusFilter {
			continue
		}
		score := d.ctx.Score(query, d.terms(t))
		if score < minScore {
			continue
		}
		matches = append(matches, scoredTask{
			task:    t,
			score:   score,
			matched: d.ctx.MatchedTerms(query, d.terms(t)),
		})
	}

	desc := order == "desc"
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if sortKey == "id" {
			if desc {
				return a.task.ID > b.task.ID
			}
			return a.task.ID < b.task.ID
		}
		if a.score != b.score {
			if desc {
				return a.score > b.score
			}
			return a.score < b.score
		}
		return a.task.ID < b.task.ID
	})

	truncated := false
	if len(matches) > maxResults {
		matches = matches[:maxResults]
		truncated = true
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"No tasks matched %s with score >= %.2f.", strings.Join(query, ", "), minScore)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Matches for: %s\n\n", strings.Join(query, ", "))
	for _, m := range matches {
		fmt.Fprintf(&b, "- %s **%d. %s** (score %.2f)", statusBadge(m.task.Status), m.task.ID, m.task.Title, m.score)
		if len(m.matched) > 0 {
			fmt.Fprintf(&b, " — matched: %s", strings.Join(m.matched, ", "))
		}
		b.WriteString("\n")
	}
	if truncated {
		fmt.Fprintf(&b, "\nShowing first %d matches; raise max_results to see more.\n", maxResults)
	}

	if req.GetBool("with_relevant", false) {
		chain := task.BuildTermChain(f, query, minScore, 1, d.ctx, d.terms)
		for _, m := range matches {
			delete(chain, m.task.ID)
		}
		var related []int
		for id := range chain {
			related = append(related, id)
		}
		sort.Ints(related)
		if len(related) > 0 {
			b.WriteString("\n## Related Tasks\n\n")
			for _, id := range related {
				if t := f.Task(id); t != nil {
					fmt.Fprintf(&b, "- %s %d. %s\n", statusBadge(t.Status), t.ID, t.Title)
				}
			}
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}
