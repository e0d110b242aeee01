package task

// Shared fixtures for the engine tests.

// fixtureFile builds a small collection exercising dependencies,
// subtasks, keywords, flows, and relevance links:
//
//	1 done      (keywords: auth, login; flows: onboarding)    <- 3 depends on it
//	2 pending   (high, relevant: [4])
//	3 pending   (high, depends: [1], relevant: [2])
//	4 pending   (low)
//	5 blocked
//	6 pending   (depends: [2])  — starved until 2 completes
//	3.1 pending subtask under 3
func fixtureFile() *File {
	return &File{
		Tasks: []Task{
			{
				ID: 1, Title: "Set up auth", Status: StatusDone, Priority: PriorityMedium,
				Keywords: []string{"auth", "login"}, FlowNames: []string{"onboarding"},
			},
			{
				ID: 2, Title: "Payments API", Status: StatusPending, Priority: PriorityHigh,
				Keywords: []string{"payments", "api"}, FlowNames: []string{"checkout"},
				RelevantTasks: []int{4},
			},
			{
				ID: 3, Title: "Checkout UI", Status: StatusPending, Priority: PriorityHigh,
				Dependencies: []Ref{TaskRef(1)}, RelevantTasks: []int{2},
				Keywords: []string{"checkout", "ui"}, FlowNames: []string{"checkout"},
				Subtasks: []Subtask{
					{ID: 1, Title: "Wire cart form", Status: StatusPending},
				},
			},
			{
				ID: 4, Title: "Docs pass", Status: StatusPending, Priority: PriorityLow,
				Keywords: []string{"docs"}, FlowNames: []string{"onboarding"},
			},
			{
				ID: 5, Title: "Legacy migration", Status: StatusBlocked, Priority: PriorityHigh,
			},
			{
				ID: 6, Title: "Refund handling", Status: StatusPending, Priority: PriorityMedium,
				Dependencies: []Ref{TaskRef(2)}, FlowNames: []string{"checkout"},
			},
		},
		Metadata: Metadata{ProjectName: "fixture", TotalTasks: 6, GeneratedAt: Now()},
	}
}

// setKeys returns the sorted-ish key set of an id set for assertions.
func setKeys(s map[int]bool) []int {
	out := make([]int, 0, len(s))
	for k, v := range s {
		if v {
			out = append(out, k)
		}
	}
	return out
}
