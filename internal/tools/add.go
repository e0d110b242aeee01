package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/store"
	"github.com/algae514/task-master-ai-algae/internal/task"
	"github.com/mark3labs/mcp-go/mcp"
)

// AddTool handles the tasks_add MCP tool.
// It appends a new top-level task to the collection.
type AddTool struct {
	store store.Store
	rec   *Recorder
}

// NewAddTool creates an AddTool with the given task store.
func NewAddTool(s store.Store, rec *Recorder) *AddTool {
	return &AddTool{store: s, rec: rec}
}

// Definition returns the MCP tool definition for registration.
func (t *AddTool) Definition() mcp.Tool {
	return mcp.NewTool("tasks_add",
		mcp.WithDescription(
			"Add a new top-level task. The id is assigned automatically "+
				"(max existing + 1). Give 3-8 keywords and 1-4 flow names so "+
				"keyword/flow retrieval can find the task later.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short task title."),
		),
		mcp.WithString("description",
			mcp.Description("What the task delivers."),
		),
		mcp.WithString("details",
			mcp.Description("Implementation notes."),
		),
		mcp.WithString("test_strategy",
			mcp.Description("How completion is verified."),
		),
		mcp.WithString("priority",
			mcp.Description("Task priority. Default: medium."),
			mcp.Enum("high", "medium", "low"),
		),
		mcp.WithString("dependencies",
			mcp.Description("Comma-separated ids this task depends on (e.g. \"3,5.2\")."),
		),
		mcp.WithString("keywords",
			mcp.Description("Comma-separated keywords, 3-8 short terms."),
		),
		mcp.WithString("flows",
			mcp.Description("Comma-separated flow names, 1-4 business workflow groupings."),
		),
	)
}

// Handle processes the tasks_add tool call.
func (t *AddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	priority := task.Priority(req.GetString("priority", string(task.PriorityMedium)))
	if err := task.ValidatePriority(priority); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var deps []task.Ref
	if raw := req.GetString("dependencies", ""); raw != "" {
		parsed, err := task.ParseRefList(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid dependencies: %v", err)), nil
		}
		deps = parsed
	}

	keywords := splitTerms(req.GetString("keywords", ""))
	if len(keywords) > 8 {
		return mcp.NewToolResultError(fmt.Sprintf("too many keywords: %d (maximum 8)", len(keywords))), nil
	}
	flows := splitTerms(req.GetString("flows", ""))
	if len(flows) > 4 {
		return mcp.NewToolResultError(fmt.Sprintf("too many flows: %d (maximum 4)", len(flows))), nil
	}

	f, root, errResult, err := loadProject(t.store)
	if err != nil || errResult != nil {
		return errResult, err
	}

	now := task.Now()
	newTask := task.Task{
		ID:           f.NextID(),
		Title:        strings.TrimSpace(title),
		Description:  req.GetString("description", ""),
		Details:      req.GetString("details", ""),
		TestStrategy: req.GetString("test_strategy", ""),
		Status:       task.StatusPending,
		Priority:     priority,
		Dependencies: deps,
		Keywords:     keywords,
		FlowNames:    flows,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	seen := make(map[task.Ref]bool, len(newTask.Dependencies))
	for _, dep := range newTask.Dependencies {
		if dep.Task == newTask.ID {
			return mcp.NewToolResultError("a task cannot depend on itself"), nil
		}
		if seen[dep] {
			return mcp.NewToolResultError(fmt.Sprintf("duplicate dependency %s", dep)), nil
		}
		seen[dep] = true
		if _, ok := f.Resolve(dep); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("dependency %s does not exist", dep)), nil
		}
	}

	f.Tasks = append(f.Tasks, newTask)
	if err := t.store.SaveTasks(root, f); err != nil {
		return saveFailed(err), nil
	}

	t.rec.Log("tasks_add", fmt.Sprint(newTask.ID), newTask.Title)

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Task Added\n\n**ID:** %d\n**Title:** %s\n**Priority:** %s\n**Dependencies:** %s\n",
		newTask.ID, newTask.Title, newTask.Priority, refListOrDash(newTask.Dependencies),
	)), nil
}

func splitTerms(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func refListOrDash(refs []task.Ref) string {
	if len(refs) == 0 {
		return "—"
	}
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
