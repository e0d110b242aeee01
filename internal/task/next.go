package task

import "sort"

// SelectNext picks the single best task to work on, or nil when no
// task is eligible.
//
// Eligibility: the status must be selectable (not done, completed,
// blocked, deferred, or cancelled) and every dependency must resolve
// to a terminal-complete task or subtask.
//
// Ranking, in tie-break order: in-progress tasks first, then priority
// (high > medium > low, defaulting to medium), then dependent count
// (higher fan-out first — finishing it unblocks more work), then the
// lowest id (oldest task wins).
func SelectNext(f *File) *Task {
	var eligible []*Task
	for i := range f.Tasks {
		t := &f.Tasks[i]
		if t.Status.isSelectable() && AllSatisfied(t.Dependencies, f) {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]

		aActive := a.Status == StatusInProgress
		bActive := b.Status == StatusInProgress
		if aActive != bActive {
			return aActive
		}
		if aw, bw := a.Priority.weight(), b.Priority.weight(); aw != bw {
			return aw > bw
		}
		if ad, bd := DependentCount(f, a.ID), DependentCount(f, b.ID); ad != bd {
			return ad > bd
		}
		return a.ID < b.ID
	})

	return eligible[0]
}

// NextDiagnostic explains why no task was selectable: the counts a
// caller needs to produce a useful "nothing to do" message.
type NextDiagnostic struct {
	Total             int
	Completed         int
	InProgress        int
	Blocked           int
	DependencyStarved int // selectable status but unsatisfied dependencies
}

// DiagnoseNext summarizes the collection for the no-eligible-task case.
func DiagnoseNext(f *File) NextDiagnostic {
	var d NextDiagnostic
	d.Total = len(f.Tasks)
	for i := range f.Tasks {
		t := &f.Tasks[i]
		switch {
		case t.Status.IsComplete():
			d.Completed++
		case t.Status == StatusInProgress:
			d.InProgress++
		case !t.Status.isSelectable():
			d.Blocked++
		case !AllSatisfied(t.Dependencies, f):
			d.DependencyStarved++
		}
	}
	return d
}
