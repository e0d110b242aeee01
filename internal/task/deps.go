package task

// AllSatisfied reports whether every dependency ref resolves to a
// task or subtask in a terminal-complete state. An empty list is
// vacuously satisfied. An unresolvable ref counts as unsatisfied —
// the check fails closed rather than letting a dangling reference
// unblock work.
func AllSatisfied(deps []Ref, f *File) bool {
	for _, dep := range deps {
		r, ok := f.Resolve(dep)
		if !ok || !r.Status().IsComplete() {
			return false
		}
	}
	return true
}

// DependentsOf returns the refs of every task and subtask whose
// dependency list contains the given ref.
func DependentsOf(f *File, ref Ref) []Ref {
	var out []Ref
	for i := range f.Tasks {
		t := &f.Tasks[i]
		if containsRef(t.Dependencies, ref) {
			out = append(out, TaskRef(t.ID))
		}
		for j := range t.Subtasks {
			if containsRef(t.Subtasks[j].Dependencies, ref) {
				out = append(out, SubtaskRef(t.ID, t.Subtasks[j].ID))
			}
		}
	}
	return out
}

// DependentCount counts how many tasks and subtasks depend on the
// given task. Used as a ranking key: unblocking a high fan-out task
// frees more downstream work.
func DependentCount(f *File, id int) int {
	return len(DependentsOf(f, TaskRef(id)))
}

func containsRef(deps []Ref, ref Ref) bool {
	for _, d := range deps {
		if d == ref {
			return true
		}
	}
	return false
}

// ValidateDependency checks a new dependency edge before it is added:
// self-dependencies and duplicates are invalid. The target not existing
// is tolerated (flagged by dependency checks, not rejected at write
// time), matching the collection invariant.
func ValidateDependency(from, on Ref, existing []Ref) error {
	if from == on {
		return &InvalidArgumentError{Msg: "a task cannot depend on itself"}
	}
	if containsRef(existing, on) {
		return &InvalidArgumentError{Msg: "dependency " + on.String() + " already exists"}
	}
	return nil
}

// InvalidArgumentError marks a caller mistake (malformed id, invalid
// status, self or duplicate dependency) as opposed to missing data or
// a persistence failure.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return e.Msg
}
