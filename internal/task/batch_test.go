package task

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bulkyTasks(n, detailLen int) []Task {
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = Task{
			ID:      i + 1,
			Title:   "bulk task",
			Details: strings.Repeat("x", detailLen),
			Status:  StatusPending,
		}
	}
	return tasks
}

func TestPlan_SmallSetSingleBatch(t *testing.T) {
	tasks := bulkyTasks(3, 100)
	plan := UpdateBatching.Plan(tasks, 0)

	assert.False(t, plan.UseBatches)
	assert.Equal(t, 3, plan.BatchSize)
	assert.Equal(t, 1, plan.TotalBatches)
	assert.Greater(t, plan.EstimatedTokens, 0)
}

func TestPlan_LargeSetTriggersBatching(t *testing.T) {
	// 10 tasks x ~8000 chars serializes past 80k chars; at overhead
	// 1.5 the estimate clears the 15000-token ceiling.
	tasks := bulkyTasks(10, 8000)
	plan := UpdateBatching.Plan(tasks, 0)

	assert.True(t, plan.UseBatches)
	assert.Greater(t, plan.EstimatedTokens, UpdateBatching.TokenCeiling)
	assert.GreaterOrEqual(t, plan.BatchSize, 1)
	assert.LessOrEqual(t, plan.BatchSize, UpdateBatching.MaxBatchSize)

	wantBatches := (len(tasks) + plan.BatchSize - 1) / plan.BatchSize
	assert.Equal(t, wantBatches, plan.TotalBatches)
}

func TestPlan_ComplexityDomainHeavierOverhead(t *testing.T) {
	tasks := bulkyTasks(4, 500)
	update := UpdateBatching.Plan(tasks, 0)
	complexity := ComplexityBatching.Plan(tasks, 0)

	// Same serialization, 2.0 vs 1.5 overhead.
	assert.Greater(t, complexity.EstimatedTokens, update.EstimatedTokens)
}

func TestPlan_ComplexityBatchSizeCap(t *testing.T) {
	tasks := bulkyTasks(40, 4000)
	plan := ComplexityBatching.Plan(tasks, 0)

	assert.True(t, plan.UseBatches)
	assert.LessOrEqual(t, plan.BatchSize, ComplexityBatching.MaxBatchSize)
}

func TestPlan_ExplicitSizeOverrides(t *testing.T) {
	tasks := bulkyTasks(10, 8000)
	plan := UpdateBatching.Plan(tasks, 3)

	assert.True(t, plan.UseBatches)
	assert.Equal(t, 3, plan.BatchSize)
	assert.Equal(t, 4, plan.TotalBatches)
}

func TestPlan_ExplicitSizeCoveringEverything(t *testing.T) {
	tasks := bulkyTasks(4, 100)
	plan := UpdateBatching.Plan(tasks, 10)

	assert.False(t, plan.UseBatches)
	assert.Equal(t, 1, plan.TotalBatches)
}

func TestPlan_EmptySet(t *testing.T) {
	plan := UpdateBatching.Plan(nil, 0)
	assert.False(t, plan.UseBatches)
	assert.Equal(t, 1, plan.BatchSize)
	assert.Equal(t, 0, plan.TotalBatches)
	assert.Equal(t, 0, plan.EstimatedTokens)
}

func TestPlan_HugeItemsClampToOne(t *testing.T) {
	// Each item alone blows the per-batch budget; size clamps to 1.
	tasks := bulkyTasks(3, 200000)
	plan := UpdateBatching.Plan(tasks, 0)

	assert.True(t, plan.UseBatches)
	assert.Equal(t, 1, plan.BatchSize)
	assert.Equal(t, 3, plan.TotalBatches)
}

func TestPartition(t *testing.T) {
	tasks := bulkyTasks(7, 10)

	batches := Partition(tasks, 3, 1)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0], 3)
	assert.Len(t, batches[2], 1)

	// Resume from batch 2 (1-based).
	resumed := Partition(tasks, 3, 2)
	require.Len(t, resumed, 2)
	assert.Equal(t, 4, resumed[0][0].ID)

	assert.Nil(t, Partition(tasks, 3, 4))
	assert.Nil(t, Partition(tasks, 0, 1))
	assert.Nil(t, Partition(nil, 3, 1))
}
