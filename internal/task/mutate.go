package task

import "fmt"

// LockedError marks a content update against a task that is already
// terminal-complete. Status changes are exempt — reopening a done task
// is allowed, restructuring it is not.
type LockedError struct {
	Ref Ref
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("task %s is done and locked against content updates; change its status first", e.Ref)
}

// StatusResult is the per-id outcome of a batch status change.
type StatusResult struct {
	ID  string `json:"id"`
	OK  bool   `json:"ok"`
	Err string `json:"error,omitempty"`
}

// SetStatus applies a status to each ref, collecting a per-id result.
// Invalid ids do not abort the batch: every valid id is applied and
// errors are reported only for the ones that failed (partial success).
// Returns true when at least one entity changed.
func SetStatus(f *File, refs []Ref, status Status) ([]StatusResult, bool) {
	results := make([]StatusResult, 0, len(refs))
	changed := false
	for _, ref := range refs {
		r, ok := f.Resolve(ref)
		if !ok {
			results = append(results, StatusResult{ID: ref.String(), Err: fmt.Sprintf("task %s not found", ref)})
			continue
		}
		if r.Subtask != nil {
			r.Subtask.Status = status
			r.Subtask.Touch()
		} else {
			r.Task.Status = status
		}
		r.Task.Touch()
		changed = true
		results = append(results, StatusResult{ID: ref.String(), OK: true})
	}
	return results, changed
}

// NewSubtaskFields is the caller-supplied content for a new subtask.
type NewSubtaskFields struct {
	Title        string
	Description  string
	Details      string
	TestStrategy string
	Status       Status
}

// AddSubtask creates a new subtask under the given parent, assigning
// the next per-parent id. A terminal-complete parent is locked against
// structural additions.
func AddSubtask(f *File, parentID int, fields NewSubtaskFields) (*Subtask, error) {
	parent := f.Task(parentID)
	if parent == nil {
		return nil, fmt.Errorf("task %d not found", parentID)
	}
	if parent.Status.IsComplete() {
		return nil, &LockedError{Ref: TaskRef(parentID)}
	}
	if fields.Title == "" {
		return nil, &InvalidArgumentError{Msg: "subtask title is required"}
	}
	status := fields.Status
	if status == "" {
		status = StatusPending
	} else if err := ValidateStatus(status); err != nil {
		return nil, &InvalidArgumentError{Msg: err.Error()}
	}

	now := Now()
	sub := Subtask{
		ID:           parent.NextSubtaskID(),
		Title:        fields.Title,
		Description:  fields.Description,
		Details:      fields.Details,
		TestStrategy: fields.TestStrategy,
		Status:       status,
		ParentTaskID: parentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	parent.Subtasks = append(parent.Subtasks, sub)
	parent.Touch()
	return &parent.Subtasks[len(parent.Subtasks)-1], nil
}

// ConvertToSubtask moves an existing top-level task under a parent as a
// new subtask, removing the top-level entry. The converted subtask keeps
// the source task's content and status; task-level extras (keywords,
// flows, relevantTasks, subtasks) do not carry over, so a task that
// still has subtasks of its own refuses to convert.
func ConvertToSubtask(f *File, parentID, taskID int) (*Subtask, error) {
	if parentID == taskID {
		return nil, &InvalidArgumentError{Msg: "a task cannot become its own subtask"}
	}
	parent := f.Task(parentID)
	if parent == nil {
		return nil, fmt.Errorf("task %d not found", parentID)
	}
	if parent.Status.IsComplete() {
		return nil, &LockedError{Ref: TaskRef(parentID)}
	}
	src := f.Task(taskID)
	if src == nil {
		return nil, fmt.Errorf("task %d not found", taskID)
	}
	if len(src.Subtasks) > 0 {
		return nil, &InvalidArgumentError{Msg: fmt.Sprintf("task %d has subtasks of its own; clear them before converting", taskID)}
	}
	moved := *src

	// Remove the source entry first: it shifts f.Tasks elements, so the
	// parent pointer must be re-resolved afterwards.
	removeTaskEntry(f, taskID)
	sweepReferences(f, TaskRef(taskID))
	parent = f.Task(parentID)

	sub := Subtask{
		ID:           parent.NextSubtaskID(),
		Title:        moved.Title,
		Description:  moved.Description,
		Details:      moved.Details,
		TestStrategy: moved.TestStrategy,
		Status:       moved.Status,
		Dependencies: moved.Dependencies,
		ParentTaskID: parentID,
		CreatedAt:    moved.CreatedAt,
		UpdatedAt:    Now(),
	}
	parent.Subtasks = append(parent.Subtasks, sub)
	parent.Touch()
	return &parent.Subtasks[len(parent.Subtasks)-1], nil
}

// RemoveSubtask deletes a subtask. When convert is true the subtask is
// promoted to a new top-level task instead of being discarded; the
// returned task is the promoted entry (nil otherwise).
func RemoveSubtask(f *File, ref Ref, convert bool) (*Task, error) {
	if !ref.IsSubtask() {
		return nil, &InvalidArgumentError{Msg: fmt.Sprintf("%s is not a subtask id", ref)}
	}
	r, ok := f.Resolve(ref)
	if !ok {
		return nil, fmt.Errorf("subtask %s not found", ref)
	}
	removed := *r.Subtask

	// Detach from the parent before any append to f.Tasks: growing the
	// slice may reallocate it and invalidate the resolved pointers.
	parent := r.Task
	for i := range parent.Subtasks {
		if parent.Subtasks[i].ID == ref.Sub {
			parent.Subtasks = append(parent.Subtasks[:i], parent.Subtasks[i+1:]...)
			break
		}
	}
	parent.Touch()

	var promoted *Task
	if convert {
		f.Tasks = append(f.Tasks, Task{
			ID:           f.NextID(),
			Title:        removed.Title,
			Description:  removed.Description,
			Details:      removed.Details,
			TestStrategy: removed.TestStrategy,
			Status:       removed.Status,
			Priority:     PriorityMedium,
			Dependencies: removed.Dependencies,
			CreatedAt:    removed.CreatedAt,
			UpdatedAt:    Now(),
		})
		promoted = &f.Tasks[len(f.Tasks)-1]
	}

	sweepReferences(f, ref)
	return promoted, nil
}

// ClearSubtasks removes all subtasks from each given task, returning
// the cleared count per task id. Unknown ids are skipped.
func ClearSubtasks(f *File, ids []int) map[int]int {
	cleared := make(map[int]int)
	for _, id := range ids {
		t := f.Task(id)
		if t == nil || len(t.Subtasks) == 0 {
			continue
		}
		cleared[id] = len(t.Subtasks)
		for _, sub := range t.Subtasks {
			sweepReferences(f, SubtaskRef(id, sub.ID))
		}
		t.Subtasks = nil
		t.Touch()
	}
	return cleared
}

// AddDependency adds a "must complete before" edge from ref to dep.
// Self-dependencies and duplicates are rejected without mutating the
// list. The dep target not existing is tolerated (dependency checks
// fail closed on it later).
func AddDependency(f *File, ref, dep Ref) error {
	r, ok := f.Resolve(ref)
	if !ok {
		return fmt.Errorf("task %s not found", ref)
	}
	deps := r.Task.Dependencies
	if r.Subtask != nil {
		deps = r.Subtask.Dependencies
	}
	if err := ValidateDependency(ref, dep, deps); err != nil {
		return err
	}
	if r.Subtask != nil {
		r.Subtask.Dependencies = append(r.Subtask.Dependencies, dep)
		r.Subtask.Touch()
	} else {
		r.Task.Dependencies = append(r.Task.Dependencies, dep)
	}
	r.Task.Touch()
	return nil
}

// RemoveDependency removes a dependency edge. Removing an edge that is
// not present is an error so callers learn about stale assumptions.
func RemoveDependency(f *File, ref, dep Ref) error {
	r, ok := f.Resolve(ref)
	if !ok {
		return fmt.Errorf("task %s not found", ref)
	}

	target := &r.Task.Dependencies
	if r.Subtask != nil {
		target = &r.Subtask.Dependencies
	}
	for i, d := range *target {
		if d == dep {
			*target = append((*target)[:i], (*target)[i+1:]...)
			if r.Subtask != nil {
				r.Subtask.Touch()
			}
			r.Task.Touch()
			return nil
		}
	}
	return &InvalidArgumentError{Msg: fmt.Sprintf("%s does not depend on %s", ref, dep)}
}

// RemoveTask deletes a top-level task and sweeps every reference to it
// (and to its subtasks) out of all dependency and relevantTasks lists,
// in the same in-memory mutation. Dangling references are silently
// dropped; the returned count says how many were swept.
func RemoveTask(f *File, id int) (swept int, err error) {
	t := f.Task(id)
	if t == nil {
		return 0, fmt.Errorf("task %d not found", id)
	}

	refs := []Ref{TaskRef(id)}
	for _, sub := range t.Subtasks {
		refs = append(refs, SubtaskRef(id, sub.ID))
	}

	removeTaskEntry(f, id)
	for _, ref := range refs {
		swept += sweepReferences(f, ref)
	}
	return swept, nil
}

func removeTaskEntry(f *File, id int) {
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			f.Tasks = append(f.Tasks[:i], f.Tasks[i+1:]...)
			return
		}
	}
}

// sweepReferences drops every dependency and relevantTasks entry that
// points at the given ref, touching each task it modifies. Returns the
// number of references removed.
func sweepReferences(f *File, ref Ref) int {
	swept := 0
	for i := range f.Tasks {
		t := &f.Tasks[i]
		touched := false

		if n := removeRefs(&t.Dependencies, ref); n > 0 {
			swept += n
			touched = true
		}
		for j := range t.Subtasks {
			if n := removeRefs(&t.Subtasks[j].Dependencies, ref); n > 0 {
				swept += n
				t.Subtasks[j].Touch()
				touched = true
			}
		}
		if !ref.IsSubtask() {
			if n := removeInts(&t.RelevantTasks, ref.Task); n > 0 {
				swept += n
				touched = true
			}
		}
		if touched {
			t.Touch()
		}
	}
	return swept
}

func removeRefs(deps *[]Ref, ref Ref) int {
	kept := (*deps)[:0]
	removed := 0
	for _, d := range *deps {
		if d == ref {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	*deps = kept
	return removed
}

func removeInts(ids *[]int, id int) int {
	kept := (*ids)[:0]
	removed := 0
	for _, v := range *ids {
		if v == id {
			removed++
			continue
		}
		kept = append(kept, v)
	}
	*ids = kept
	return removed
}
