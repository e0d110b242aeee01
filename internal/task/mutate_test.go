package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStatus_PartialSuccess(t *testing.T) {
	f := fixtureFile()
	refs := []Ref{TaskRef(2), TaskRef(999), SubtaskRef(3, 1)}

	results, changed := SetStatus(f, refs, StatusInProgress)
	require.Len(t, results, 3)
	assert.True(t, changed)

	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.Contains(t, results[1].Err, "not found")
	assert.True(t, results[2].OK)

	assert.Equal(t, StatusInProgress, f.Task(2).Status)
	assert.Equal(t, StatusInProgress, f.Tasks[2].Subtasks[0].Status)
}

func TestSetStatus_AllInvalid(t *testing.T) {
	f := fixtureFile()
	results, changed := SetStatus(f, []Ref{TaskRef(100), TaskRef(200)}, StatusDone)
	assert.False(t, changed)
	for _, r := range results {
		assert.False(t, r.OK)
	}
}

func TestSetStatus_TouchesTimestamps(t *testing.T) {
	f := fixtureFile()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	_, _ = SetStatus(f, []Ref{TaskRef(2)}, StatusDone)
	assert.Equal(t, "2026-03-01T12:00:00Z", f.Task(2).UpdatedAt)
}

func TestAddSubtask(t *testing.T) {
	f := fixtureFile()
	sub, err := AddSubtask(f, 2, NewSubtaskFields{Title: "Write schema"})
	require.NoError(t, err)

	assert.Equal(t, 1, sub.ID)
	assert.Equal(t, StatusPending, sub.Status)
	assert.NotEmpty(t, sub.CreatedAt)
	assert.Len(t, f.Task(2).Subtasks, 1)

	// Next subtask gets id 2 within the same parent.
	sub2, err := AddSubtask(f, 2, NewSubtaskFields{Title: "Write handler"})
	require.NoError(t, err)
	assert.Equal(t, 2, sub2.ID)
}

func TestAddSubtask_Errors(t *testing.T) {
	f := fixtureFile()

	_, err := AddSubtask(f, 999, NewSubtaskFields{Title: "x"})
	assert.ErrorContains(t, err, "not found")

	_, err = AddSubtask(f, 2, NewSubtaskFields{})
	var invalid *InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)

	// Parent 1 is done: locked against structural additions.
	_, err = AddSubtask(f, 1, NewSubtaskFields{Title: "x"})
	var locked *LockedError
	assert.ErrorAs(t, err, &locked)

	_, err = AddSubtask(f, 2, NewSubtaskFields{Title: "x", Status: "bogus"})
	assert.ErrorAs(t, err, &invalid)
}

func TestConvertToSubtask(t *testing.T) {
	f := fixtureFile()
	sub, err := ConvertToSubtask(f, 2, 4)
	require.NoError(t, err)

	assert.Equal(t, "Docs pass", sub.Title)
	assert.Equal(t, 2, sub.ParentTaskID)
	assert.Nil(t, f.Task(4), "task 4 should no longer exist at top level")

	// References to the converted task are swept: task 2's
	// relevantTasks pointed at 4.
	assert.Empty(t, f.Task(2).RelevantTasks)
}

func TestConvertToSubtask_Errors(t *testing.T) {
	f := fixtureFile()

	_, err := ConvertToSubtask(f, 2, 2)
	var invalid *InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)

	// Task 3 has subtasks of its own.
	_, err = ConvertToSubtask(f, 2, 3)
	assert.ErrorAs(t, err, &invalid)

	_, err = ConvertToSubtask(f, 2, 999)
	assert.ErrorContains(t, err, "not found")
}

func TestRemoveSubtask(t *testing.T) {
	f := fixtureFile()
	promoted, err := RemoveSubtask(f, SubtaskRef(3, 1), false)
	require.NoError(t, err)
	assert.Nil(t, promoted)
	assert.Empty(t, f.Task(3).Subtasks)
}

func TestRemoveSubtask_ConvertToTask(t *testing.T) {
	f := fixtureFile()
	promoted, err := RemoveSubtask(f, SubtaskRef(3, 1), true)
	require.NoError(t, err)
	require.NotNil(t, promoted)

	assert.Equal(t, 7, promoted.ID, "promoted task takes max(existing)+1")
	assert.Equal(t, "Wire cart form", promoted.Title)
	assert.Empty(t, f.Task(3).Subtasks)
}

func TestRemoveSubtask_Errors(t *testing.T) {
	f := fixtureFile()

	_, err := RemoveSubtask(f, TaskRef(3), false)
	var invalid *InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)

	_, err = RemoveSubtask(f, SubtaskRef(3, 9), false)
	assert.ErrorContains(t, err, "not found")
}

func TestClearSubtasks(t *testing.T) {
	f := fixtureFile()
	_, err := AddSubtask(f, 2, NewSubtaskFields{Title: "extra"})
	require.NoError(t, err)

	cleared := ClearSubtasks(f, []int{2, 3, 4})
	assert.Equal(t, map[int]int{2: 1, 3: 1}, cleared)
	assert.Empty(t, f.Task(2).Subtasks)
	assert.Empty(t, f.Task(3).Subtasks)
}

func TestClearSubtasks_SweepsSubtaskDependencies(t *testing.T) {
	f := fixtureFile()
	require.NoError(t, AddDependency(f, TaskRef(6), SubtaskRef(3, 1)))

	ClearSubtasks(f, []int{3})
	assert.Equal(t, []Ref{TaskRef(2)}, f.Task(6).Dependencies)
}

func TestAddDependency(t *testing.T) {
	f := fixtureFile()
	require.NoError(t, AddDependency(f, TaskRef(4), TaskRef(1)))
	assert.Equal(t, []Ref{TaskRef(1)}, f.Task(4).Dependencies)
}

func TestAddDependency_RejectsSelfWithoutMutating(t *testing.T) {
	f := fixtureFile()
	before := len(f.Task(3).Dependencies)

	err := AddDependency(f, TaskRef(3), TaskRef(3))
	var invalid *InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)
	assert.Len(t, f.Task(3).Dependencies, before)
}

func TestAddDependency_RejectsDuplicate(t *testing.T) {
	f := fixtureFile()
	err := AddDependency(f, TaskRef(3), TaskRef(1))
	var invalid *InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)
}

func TestAddDependency_SubtaskTarget(t *testing.T) {
	f := fixtureFile()
	require.NoError(t, AddDependency(f, SubtaskRef(3, 1), TaskRef(1)))
	assert.Equal(t, []Ref{TaskRef(1)}, f.Tasks[2].Subtasks[0].Dependencies)
}

func TestRemoveDependency(t *testing.T) {
	f := fixtureFile()
	require.NoError(t, RemoveDependency(f, TaskRef(3), TaskRef(1)))
	assert.Empty(t, f.Task(3).Dependencies)

	err := RemoveDependency(f, TaskRef(3), TaskRef(1))
	var invalid *InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)
}

func TestRemoveTask_CascadeSweep(t *testing.T) {
	f := fixtureFile()
	// 3 depends on 1; removing 1 must sweep that edge.
	swept, err := RemoveTask(f, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, swept)
	assert.Nil(t, f.Task(1))
	assert.Empty(t, f.Task(3).Dependencies)
}

func TestRemoveTask_SweepsRelevantTasksAndSubtaskRefs(t *testing.T) {
	f := fixtureFile()
	require.NoError(t, AddDependency(f, TaskRef(6), SubtaskRef(3, 1)))
	// 3 is referenced by: nothing depends on it, but it is relevant to
	// nobody; its subtask 3.1 is now a dependency of 6.
	swept, err := RemoveTask(f, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, swept)
	assert.Equal(t, []Ref{TaskRef(2)}, f.Task(6).Dependencies)
}

func TestRemoveTask_NotFound(t *testing.T) {
	f := fixtureFile()
	_, err := RemoveTask(f, 999)
	assert.ErrorContains(t, err, "not found")
}
