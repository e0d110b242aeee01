package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// KickoffPrompt handles the tasks-kickoff MCP prompt.
// It guides the AI to initialize a project and seed its first tasks.
type KickoffPrompt struct{}

// NewKickoffPrompt creates a KickoffPrompt.
func NewKickoffPrompt() *KickoffPrompt {
	return &KickoffPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *KickoffPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("tasks-kickoff",
		mcp.WithPromptDescription(
			"Start task tracking for a project: initialize the task store "+
				"and capture the first round of tasks from a conversation.",
		),
		mcp.WithArgument("project_name",
			mcp.ArgumentDescription("Name of the project"),
		),
	)
}

// Handle processes the tasks-kickoff prompt request.
func (p *KickoffPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	projectName := "my-project"
	if args := req.Params.Arguments; args != nil {
		if name, ok := args["project_name"]; ok && name != "" {
			projectName = name
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Kick off task tracking for %s", projectName),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to start tracking tasks for the project '%s'.\n\n"+
						"Please:\n"+
						"1. Run `tasks_init` with project_name='%s'\n"+
						"2. Ask me what needs to be done and capture each piece of work\n"+
						"3. Give every task 3-8 keywords and 1-4 flow names so retrieval works later\n"+
						"4. Wire up dependencies with `tasks_add_dependency` where ordering matters\n"+
						"5. Finish by running `tasks_next` and telling me where to start",
					projectName, projectName,
				)),
			},
		},
	}, nil
}
