package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountStatuses(t *testing.T) {
	f := fixtureFile()
	c := CountStatuses(f.Tasks, false)

	assert.Equal(t, 6, c.Total)
	assert.Equal(t, 1, c.Completed)
	assert.Equal(t, 4, c.Pending)
	assert.Equal(t, 1, c.Blocked)
	assert.InDelta(t, 16.7, c.PctDone, 1e-9)
}

func TestCountStatuses_IncludeSubtasks(t *testing.T) {
	f := fixtureFile()
	c := CountStatuses(f.Tasks, true)
	// 6 tasks + 1 subtask.
	assert.Equal(t, 7, c.Total)
	assert.Equal(t, 5, c.Pending)
}

func TestCountStatuses_DoneAndCompletedBothCount(t *testing.T) {
	tasks := []Task{
		{ID: 1, Status: StatusDone},
		{ID: 2, Status: StatusCompleted},
	}
	c := CountStatuses(tasks, false)
	assert.Equal(t, 2, c.Completed)
	assert.Equal(t, 100.0, c.PctDone)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(3, 0))
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.InDelta(t, 33.3, Percentage(1, 3), 1e-9)
	assert.InDelta(t, 66.7, Percentage(2, 3), 1e-9)
}

func TestDistributeComplexity(t *testing.T) {
	d := DistributeComplexity(map[int]int{
		1: 9, 2: 7, // high
		3: 6, 4: 4, // medium
		5: 3, 6: 1, // low
	})
	assert.Equal(t, ComplexityDistribution{High: 2, Medium: 2, Low: 2}, d)
}

func TestDistributeComplexity_Empty(t *testing.T) {
	assert.Equal(t, ComplexityDistribution{}, DistributeComplexity(nil))
}

func TestTermFrequencies(t *testing.T) {
	f := fixtureFile()
	freq := TermFrequencies(f.Tasks, FlowTerms)
	require.NotEmpty(t, freq)
	// checkout appears on tasks 2, 3, 6; onboarding on 1 and 4.
	assert.Equal(t, TermCount{Term: "checkout", Count: 3}, freq[0])
	assert.Equal(t, TermCount{Term: "onboarding", Count: 2}, freq[1])
}

func TestTermFrequencies_CountsOncePerTask(t *testing.T) {
	tasks := []Task{
		{ID: 1, Keywords: []string{"Auth", "auth", "AUTH"}},
	}
	freq := TermFrequencies(tasks, KeywordTerms)
	require.Len(t, freq, 1)
	assert.Equal(t, TermCount{Term: "auth", Count: 1}, freq[0])
}

func TestTermCooccurrence(t *testing.T) {
	tasks := []Task{
		{ID: 1, Keywords: []string{"auth", "login"}},
		{ID: 2, Keywords: []string{"auth", "login", "session"}},
		{ID: 3, Keywords: []string{"docs"}},
	}
	pairs := TermCooccurrence(tasks, KeywordTerms)
	require.NotEmpty(t, pairs)
	assert.Equal(t, TermCount{Term: "auth|login", Count: 2}, pairs[0])
}

func TestFlowCompletions(t *testing.T) {
	f := fixtureFile()
	flows := FlowCompletions(f.Tasks)
	require.Len(t, flows, 2)

	// checkout: 3 tasks, none complete.
	assert.Equal(t, "checkout", flows[0].Flow)
	assert.Equal(t, 0.0, flows[0].PctDone)

	// onboarding: tasks 1 (done) and 4 (pending).
	assert.Equal(t, "onboarding", flows[1].Flow)
	assert.Equal(t, 50.0, flows[1].PctDone)
}

func TestFlowCompletions_ZeroTasks(t *testing.T) {
	assert.Empty(t, FlowCompletions(nil))
}
