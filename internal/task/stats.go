package task

import (
	"math"
	"sort"
)

// StatusCounts summarizes a task set by status.
type StatusCounts struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	InProgress int     `json:"inProgress"`
	Pending    int     `json:"pending"`
	Blocked    int     `json:"blocked"`
	Deferred   int     `json:"deferred"`
	Cancelled  int     `json:"cancelled"`
	PctDone    float64 `json:"completionPercentage"`
}

// CountStatuses tallies tasks (and optionally their subtasks) by
// status. The completion percentage counts done and completed together.
func CountStatuses(tasks []Task, includeSubtasks bool) StatusCounts {
	var c StatusCounts
	tally := func(s Status) {
		c.Total++
		switch {
		case s.IsComplete():
			c.Completed++
		case s == StatusInProgress:
			c.InProgress++
		case s == StatusBlocked:
			c.Blocked++
		case s == StatusDeferred:
			c.Deferred++
		case s == StatusCancelled:
			c.Cancelled++
		default:
			c.Pending++
		}
	}
	for i := range tasks {
		tally(tasks[i].Status)
		if includeSubtasks {
			for j := range tasks[i].Subtasks {
				tally(tasks[i].Subtasks[j].Status)
			}
		}
	}
	c.PctDone = Percentage(c.Completed, c.Total)
	return c
}

// Percentage returns part/total as a percentage rounded to one decimal
// place, and 0 when total is 0.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// ComplexityDistribution buckets external complexity scores:
// high >= 7, medium 4-6, low < 4.
type ComplexityDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// DistributeComplexity buckets a complexity-score-per-task mapping.
func DistributeComplexity(scores map[int]int) ComplexityDistribution {
	var d ComplexityDistribution
	for _, score := range scores {
		switch {
		case score >= 7:
			d.High++
		case score >= 4:
			d.Medium++
		default:
			d.Low++
		}
	}
	return d
}

// TermCount pairs a term with its usage count, for sorted frequency
// tables.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// TermFrequencies counts how many tasks use each term in the field
// selected by terms. Terms are normalized (lowercased, trimmed) and
// counted once per task.
func TermFrequencies(tasks []Task, terms func(*Task) []string) []TermCount {
	freq := make(map[string]int)
	for i := range tasks {
		seen := make(map[string]bool)
		for _, raw := range terms(&tasks[i]) {
			t := normalizeTerm(raw)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			freq[t]++
		}
	}
	return sortedCounts(freq)
}

// TermCooccurrence counts, for every unordered term pair appearing
// together within a single task's own term set, how many tasks carry
// both. Keys are "a|b" with a < b lexicographically.
func TermCooccurrence(tasks []Task, terms func(*Task) []string) []TermCount {
	pairs := make(map[string]int)
	for i := range tasks {
		set := dedupe(normalizeTerms(terms(&tasks[i])))
		sort.Strings(set)
		for a := 0; a < len(set); a++ {
			for b := a + 1; b < len(set); b++ {
				pairs[set[a]+"|"+set[b]]++
			}
		}
	}
	return sortedCounts(pairs)
}

// FlowCompletion is the completion state of one named flow.
type FlowCompletion struct {
	Flow      string  `json:"flow"`
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	PctDone   float64 `json:"completionPercentage"`
}

// FlowCompletions computes per-flow completion percentages over all
// tasks carrying each flow name.
func FlowCompletions(tasks []Task) []FlowCompletion {
	totals := make(map[string]int)
	done := make(map[string]int)
	for i := range tasks {
		for _, raw := range normalizeTerms(tasks[i].FlowNames) {
			totals[raw]++
			if tasks[i].Status.IsComplete() {
				done[raw]++
			}
		}
	}

	out := make([]FlowCompletion, 0, len(totals))
	for flow, total := range totals {
		out = append(out, FlowCompletion{
			Flow:      flow,
			Total:     total,
			Completed: done[flow],
			PctDone:   Percentage(done[flow], total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Flow < out[j].Flow
	})
	return out
}

func dedupe(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := terms[:0]
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func sortedCounts(freq map[string]int) []TermCount {
	out := make([]TermCount, 0, len(freq))
	for term, count := range freq {
		out = append(out, TermCount{Term: term, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	return out
}
