package task

// BuildChain expands a seed task into the set of related task ids:
// the seed itself, its relevantTasks (recursively, depth-budgeted),
// its task-level dependencies (one level), and any task that depends
// on it (reverse edge, one level).
//
// Each relevantTasks branch recurses with its own copy of the visited
// set, so sibling branches never prune each other. This trades
// redundant work for completeness — the chain scopes batched content
// updates, where missing a related task is worse than revisiting one.
func BuildChain(f *File, seed, maxDepth int) map[int]bool {
	result := make(map[int]bool)
	chainVisit(f, seed, maxDepth, make(map[int]bool), result)
	return result
}

func chainVisit(f *File, id, depth int, visited, result map[int]bool) {
	if visited[id] {
		return
	}
	visited[id] = true
	result[id] = true

	t := f.Task(id)
	if t == nil {
		return
	}

	// Dependencies and reverse dependencies: one unconditional level,
	// no further recursion. A subtask-ref dependency contributes its
	// parent task id, keeping the chain at top-level granularity.
	for _, dep := range t.Dependencies {
		result[dep.Task] = true
	}
	for _, dependent := range DependentsOf(f, TaskRef(id)) {
		result[dependent.Task] = true
	}

	for _, rel := range t.RelevantTasks {
		result[rel] = true
		if depth > 0 {
			chainVisit(f, rel, depth-1, copySet(visited), result)
		}
	}
}

func copySet(s map[int]bool) map[int]bool {
	out := make(map[int]bool, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// BuildTermChain is the term-seeded chain variant: every task whose
// terms score at least minScore against the search terms is included,
// and when maxDepth > 0 each match also pulls in its relevantTasks —
// one extra level only, unlike BuildChain's recursive expansion.
// terms selects the field to match (keywords or flow names).
func BuildTermChain(f *File, searchTerms []string, minScore float64, maxDepth int, ctx MatchContext, terms func(*Task) []string) map[int]bool {
	result := make(map[int]bool)
	var matched []int
	for i := range f.Tasks {
		t := &f.Tasks[i]
		if ctx.Score(searchTerms, terms(t)) >= minScore {
			result[t.ID] = true
			matched = append(matched, t.ID)
		}
	}

	if maxDepth > 0 {
		for _, id := range matched {
			for _, rel := range f.Task(id).RelevantTasks {
				result[rel] = true
			}
		}
	}
	return result
}

// KeywordTerms and FlowTerms are the field selectors for BuildTermChain
// and the retrieval tools.

func KeywordTerms(t *Task) []string { return t.Keywords }

func FlowTerms(t *Task) []string { return t.FlowNames }
