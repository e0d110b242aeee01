package task

import "encoding/json"

// BatchDomain holds the cost model for one kind of batched processing.
// Token estimation uses the len(text)/4 heuristic scaled by a
// per-domain prompt overhead factor.
type BatchDomain struct {
	Overhead     float64 // prompt overhead multiplier on the raw estimate
	TokenCeiling int     // above this estimate, batching kicks in
	MaxBatchSize int     // hard cap on tasks per batch
}

// UpdateBatching is the cost model for batched content updates.
var UpdateBatching = BatchDomain{
	Overhead:     1.5,
	TokenCeiling: 15000,
	MaxBatchSize: 5,
}

// ComplexityBatching is the cost model for complexity analysis, which
// carries a heavier per-task prompt.
var ComplexityBatching = BatchDomain{
	Overhead:     2.0,
	TokenCeiling: 20000,
	MaxBatchSize: 10,
}

// BatchPlan is the result of sizing a task set against a domain's
// token budget.
type BatchPlan struct {
	UseBatches      bool `json:"useBatches"`
	BatchSize       int  `json:"batchSize"`
	TotalBatches    int  `json:"totalBatches"`
	EstimatedTokens int  `json:"estimatedTokens"`
}

// Plan sizes the given tasks for batched processing. When the token
// estimate stays under the domain ceiling, a single batch holds
// everything. Otherwise the batch size targets the ceiling per batch,
// clamped to [1, MaxBatchSize]. An explicit caller-supplied size
// (explicitSize > 0) always overrides the computed one.
func (d BatchDomain) Plan(tasks []Task, explicitSize int) BatchPlan {
	if len(tasks) == 0 {
		return BatchPlan{BatchSize: 1}
	}

	serialized, _ := json.Marshal(tasks)
	estimated := int(float64(len(serialized)) / 4 * d.Overhead)

	plan := BatchPlan{EstimatedTokens: estimated}

	switch {
	case explicitSize > 0:
		plan.BatchSize = explicitSize
		plan.UseBatches = explicitSize < len(tasks)
	case estimated > d.TokenCeiling:
		avgChars := len(serialized) / len(tasks)
		size := d.TokenCeiling / max(avgChars/4, 1)
		if size > d.MaxBatchSize {
			size = d.MaxBatchSize
		}
		if size < 1 {
			size = 1
		}
		plan.BatchSize = size
		plan.UseBatches = true
	default:
		plan.BatchSize = len(tasks)
	}

	plan.TotalBatches = (len(tasks) + plan.BatchSize - 1) / plan.BatchSize
	return plan
}

// Partition splits tasks into batches of the given size, preserving
// order. startBatch is 1-based; batches before it are skipped so a
// caller can resume an interrupted run. Returns nil when startBatch
// lies past the end.
func Partition(tasks []Task, size, startBatch int) [][]Task {
	if size < 1 || len(tasks) == 0 {
		return nil
	}
	if startBatch < 1 {
		startBatch = 1
	}

	var batches [][]Task
	for start := 0; start < len(tasks); start += size {
		end := min(start+size, len(tasks))
		batches = append(batches, tasks[start:end])
	}
	if startBatch > len(batches) {
		return nil
	}
	return batches[startBatch-1:]
}
