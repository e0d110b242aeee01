// Package task holds the task-graph data model and the query/update
// engine that operates over it: next-task selection, dependency
// satisfaction, fuzzy keyword/flow matching, relevance-chain expansion,
// token-budget batching, and summary aggregation.
//
// Everything in this package is pure: functions take a collection value
// and return results without touching persistence. The store package
// owns load/save boundaries (DIP — tools depend on both abstractions).
package task

import "fmt"

// --- Status enum ---

// Status is the lifecycle state of a task or subtask.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
	StatusDeferred   Status = "deferred"
	StatusCancelled  Status = "cancelled"
)

// validStatuses is the set of allowed status values.
var validStatuses = map[Status]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusDone:       true,
	StatusCompleted:  true,
	StatusBlocked:    true,
	StatusDeferred:   true,
	StatusCancelled:  true,
}

// ValidateStatus returns an error if the status is not recognized.
func ValidateStatus(s Status) error {
	if !validStatuses[s] {
		return fmt.Errorf("invalid status %q: must be one of: pending, in-progress, done, completed, blocked, deferred, cancelled", s)
	}
	return nil
}

// IsComplete reports whether the status counts as terminal-complete for
// dependency satisfaction. "done" and "completed" are equivalent.
func (s Status) IsComplete() bool {
	return s == StatusDone || s == StatusCompleted
}

// isSelectable reports whether a task with this status can still be
// picked up as work. Blocked, deferred, and cancelled tasks are parked,
// not just incomplete.
func (s Status) isSelectable() bool {
	switch s {
	case StatusDone, StatusCompleted, StatusBlocked, StatusDeferred, StatusCancelled:
		return false
	}
	return true
}

// --- Priority enum ---

// Priority orders tasks for next-task selection.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidatePriority returns an error if the priority is not recognized.
func ValidatePriority(p Priority) error {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return nil
	}
	return fmt.Errorf("invalid priority %q: must be one of: high, medium, low", p)
}

// weight maps priorities to a sortable rank. Unset or unrecognized
// priorities rank as medium.
func (p Priority) weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	}
	return 2
}

// --- Core entities ---

// Subtask is a unit of work scoped under exactly one parent task. Its ID
// is unique only within the parent's subtask list; externally it is
// addressed as "{parentID}.{id}".
type Subtask struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Details      string `json:"details,omitempty"`
	TestStrategy string `json:"testStrategy,omitempty"`
	Status       Status `json:"status"`
	Dependencies []Ref  `json:"dependencies,omitempty"`

	// ParentTaskID is set only transiently during conversion between
	// task and subtask. Canonical ownership is positional: a subtask
	// belongs to whichever task's Subtasks slice contains it.
	ParentTaskID int `json:"parentTaskId,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Task is a top-level unit of work.
type Task struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Details      string   `json:"details,omitempty"`
	TestStrategy string   `json:"testStrategy,omitempty"`
	Status       Status   `json:"status"`
	Priority     Priority `json:"priority,omitempty"`
	Dependencies []Ref    `json:"dependencies,omitempty"`

	// Keywords (3-8 short terms) and FlowNames (1-4 business workflow
	// groupings) drive fuzzy retrieval. Matching is case-insensitive.
	Keywords  []string `json:"keywords,omitempty"`
	FlowNames []string `json:"flowNames,omitempty"`

	// RelevantTasks is a curated "related work" edge set used to scope
	// batched content updates. Not necessarily symmetric.
	RelevantTasks []int `json:"relevantTasks,omitempty"`

	Subtasks []Subtask `json:"subtasks,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Metadata carries collection-level bookkeeping.
type Metadata struct {
	ProjectName string `json:"projectName"`
	TotalTasks  int    `json:"totalTasks"`
	GeneratedAt string `json:"generatedAt"`
}

// File is the task collection as persisted: an ordered task sequence
// (insertion order reflects creation order) plus metadata.
type File struct {
	Tasks    []Task   `json:"tasks"`
	Metadata Metadata `json:"metadata"`
}

// --- Collection lookups ---

// Task returns a pointer to the task with the given id, or nil.
func (f *File) Task(id int) *Task {
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			return &f.Tasks[i]
		}
	}
	return nil
}

// Resolved is the result of resolving a Ref against a collection.
type Resolved struct {
	Task    *Task    // the task itself, or the subtask's parent
	Subtask *Subtask // nil when the ref addresses a top-level task
}

// Status returns the status of whichever entity the ref resolved to.
func (r Resolved) Status() Status {
	if r.Subtask != nil {
		return r.Subtask.Status
	}
	return r.Task.Status
}

// Resolve looks up a task or subtask by ref. Returns ok=false when the
// ref does not address an existing entity.
func (f *File) Resolve(ref Ref) (Resolved, bool) {
	t := f.Task(ref.Task)
	if t == nil {
		return Resolved{}, false
	}
	if !ref.IsSubtask() {
		return Resolved{Task: t}, true
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == ref.Sub {
			return Resolved{Task: t, Subtask: &t.Subtasks[i]}, true
		}
	}
	return Resolved{}, false
}

// NextID returns the id to assign to a newly created task:
// max(existing)+1, or 1 for an empty collection.
func (f *File) NextID() int {
	next := 1
	for i := range f.Tasks {
		if f.Tasks[i].ID >= next {
			next = f.Tasks[i].ID + 1
		}
	}
	return next
}

// NextSubtaskID returns the id for a new subtask under the given task:
// max(existing subtask ids)+1, or 1 when the list is empty.
func (t *Task) NextSubtaskID() int {
	next := 1
	for i := range t.Subtasks {
		if t.Subtasks[i].ID >= next {
			next = t.Subtasks[i].ID + 1
		}
	}
	return next
}
