package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the tasks-status MCP prompt.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("tasks-status",
		mcp.WithPromptDescription(
			"Summarize the current state of the task board: completion "+
				"stats, what's in flight, what's blocked, and what to do next.",
		),
	)
}

// Handle processes the tasks-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Summarize the task board",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Give me a status summary of this project's tasks.\n\n" +
						"Please:\n" +
						"1. Run `tasks_list` with subtasks included\n" +
						"2. Run `tasks_flows` to see per-flow completion\n" +
						"3. Run `tasks_next` for the recommended next step\n" +
						"4. Summarize: overall completion, what's in progress,\n" +
						"   what's blocked and why, and what I should pick up next",
				),
			},
		},
	}, nil
}
