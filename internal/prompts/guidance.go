// Package prompts builds the prompt text returned by guidance tools
// and the user-triggered MCP prompts.
//
// Guidance tools perform no AI work: they assemble a system/user
// prompt pair around task data and return it. Whatever executes the
// prompt persists its results through separate mutation tools
// (tasks_save_complexity, tasks_set_status, and friends).
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/algae514/task-master-ai-algae/internal/task"
)

// Pair is a system/user prompt ready to hand to a language model.
type Pair struct {
	System string `json:"systemPrompt"`
	User   string `json:"userPrompt"`
}

// Render flattens the pair into the instruction block guidance tools
// embed in their responses.
func (p Pair) Render() string {
	return fmt.Sprintf("## System Prompt\n\n%s\n\n## User Prompt\n\n%s\n", p.System, p.User)
}

// ComplexityBatch builds the analysis prompt for one batch of tasks.
// threshold is the score at or above which expansion into subtasks is
// recommended; research asks the executor to lean on broader context.
func ComplexityBatch(batch []task.Task, batchNum, totalBatches, threshold int, research bool) Pair {
	system := "You are an expert software architect analyzing task complexity. " +
		"For each task, assess implementation difficulty on a 1-10 scale, " +
		"recommend a subtask count for expansion, and explain your reasoning concisely. " +
		"Respond with a JSON array of objects: " +
		`{"taskId", "taskTitle", "complexityScore", "recommendedSubtasks", "expansionPrompt", "reasoning"}.`
	if research {
		system += " Research current best practices for each task's domain before scoring."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the complexity of the following %d task(s)", len(batch))
	if totalBatches > 1 {
		fmt.Fprintf(&b, " (batch %d of %d)", batchNum, totalBatches)
	}
	b.WriteString(".\n\n")
	fmt.Fprintf(&b, "Recommend expansion for any task scoring %d or higher.\n\nTasks:\n\n", threshold)
	writeTaskJSON(&b, batch)
	b.WriteString("\nAfter analyzing, persist the results by calling `tasks_save_complexity` " +
		"with the JSON array; batches merge by task id, in any order.")

	return Pair{System: system, User: b.String()}
}

// UpdateBatch builds the content-update prompt for one batch of tasks.
// updateContext describes what changed in the project (new requirement,
// direction shift) that the tasks must be rewritten against.
func UpdateBatch(batch []task.Task, batchNum, totalBatches int, updateContext string) Pair {
	system := "You are a senior engineer updating a task backlog after a project change. " +
		"Rewrite each task's description, details, and test strategy to reflect the new context. " +
		"Keep ids, statuses, and dependencies unchanged. Do not invent new tasks."

	var b strings.Builder
	fmt.Fprintf(&b, "Project change:\n\n%s\n\n", updateContext)
	fmt.Fprintf(&b, "Update the following %d task(s)", len(batch))
	if totalBatches > 1 {
		fmt.Fprintf(&b, " (batch %d of %d)", batchNum, totalBatches)
	}
	b.WriteString(":\n\n")
	writeTaskJSON(&b, batch)
	b.WriteString("\nPersist each updated task through the mutation tools, then continue with the next batch.")

	return Pair{System: system, User: b.String()}
}

// Expand builds the prompt that breaks one task into subtasks. The
// complexity analysis, when available, supplies the recommended count
// and a tailored expansion prompt.
func Expand(t *task.Task, numSubtasks int, analysis *task.ComplexityAnalysis) Pair {
	system := "You are an expert at decomposing software tasks into concrete, " +
		"independently implementable subtasks with clear test strategies."

	var b strings.Builder
	fmt.Fprintf(&b, "Break the following task into %d subtask(s):\n\n", numSubtasks)
	writeTaskJSON(&b, []task.Task{*t})
	if analysis != nil {
		fmt.Fprintf(&b, "\nComplexity analysis (score %d/10): %s\n", analysis.ComplexityScore, analysis.Reasoning)
		if analysis.ExpansionPrompt != "" {
			fmt.Fprintf(&b, "\nExpansion guidance: %s\n", analysis.ExpansionPrompt)
		}
	}
	fmt.Fprintf(&b, "\nCreate each subtask by calling `tasks_add_subtask` with parent_id=%d, "+
		"a title, description, details, and test strategy.", t.ID)

	return Pair{System: system, User: b.String()}
}

func writeTaskJSON(b *strings.Builder, tasks []task.Task) {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		// Tasks are plain data; marshaling cannot realistically fail.
		fmt.Fprintf(b, "(failed to serialize tasks: %v)\n", err)
		return
	}
	b.WriteString("```json\n")
	b.Write(data)
	b.WriteString("\n```\n")
}
