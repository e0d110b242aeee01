package task

// ComplexityAnalysis is one task's externally supplied complexity
// rating: a 1-10 score driving expansion-into-subtasks recommendations.
// The engine never computes scores itself — a prompt executor does and
// persists them back via the save operation.
type ComplexityAnalysis struct {
	TaskID              int    `json:"taskId"`
	TaskTitle           string `json:"taskTitle"`
	ComplexityScore     int    `json:"complexityScore"`
	RecommendedSubtasks int    `json:"recommendedSubtasks"`
	ExpansionPrompt     string `json:"expansionPrompt,omitempty"`
	Reasoning           string `json:"reasoning,omitempty"`
}

// ReportMeta is collection-level bookkeeping for a complexity report.
type ReportMeta struct {
	GeneratedAt     string `json:"generatedAt"`
	TasksAnalyzed   int    `json:"tasksAnalyzed"`
	TotalTasks      int    `json:"totalTasks"`
	ThresholdScore  int    `json:"thresholdScore"`
	UsedResearch    bool   `json:"usedResearch"`
	BatchProcessing bool   `json:"batchProcessing,omitempty"`
}

// ComplexityReport is the companion document persisted alongside the
// task collection.
type ComplexityReport struct {
	ComplexityAnalysis []ComplexityAnalysis `json:"complexityAnalysis"`
	Meta               ReportMeta           `json:"meta"`
}

// Analysis returns the analysis entry for a task id, or nil.
func (r *ComplexityReport) Analysis(taskID int) *ComplexityAnalysis {
	for i := range r.ComplexityAnalysis {
		if r.ComplexityAnalysis[i].TaskID == taskID {
			return &r.ComplexityAnalysis[i]
		}
	}
	return nil
}

// Merge upserts a batch of analyses by task id, leaving entries for
// tasks outside the batch untouched. This is what makes batch runs
// resumable: each completed batch merges into the persisted report
// instead of overwriting it.
func (r *ComplexityReport) Merge(batch []ComplexityAnalysis) {
	for _, a := range batch {
		if existing := r.Analysis(a.TaskID); existing != nil {
			*existing = a
			continue
		}
		r.ComplexityAnalysis = append(r.ComplexityAnalysis, a)
	}
	r.Meta.TasksAnalyzed = len(r.ComplexityAnalysis)
}

// Scores returns the score-per-task mapping for distribution bucketing.
func (r *ComplexityReport) Scores() map[int]int {
	out := make(map[int]int, len(r.ComplexityAnalysis))
	for _, a := range r.ComplexityAnalysis {
		out[a.TaskID] = a.ComplexityScore
	}
	return out
}
