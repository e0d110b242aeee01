package task

import "time"

// timeNow is a package-level variable for testability.
// Tests can replace this to control time in assertions.
var timeNow = time.Now

// Now returns the current UTC time in the RFC3339 form used for every
// createdAt/updatedAt field.
func Now() string {
	return timeNow().UTC().Format(time.RFC3339)
}

// Touch updates a task's updatedAt timestamp. Every mutation that
// changes a task calls this before persisting.
func (t *Task) Touch() {
	t.UpdatedAt = Now()
}

// Touch updates a subtask's updatedAt timestamp.
func (s *Subtask) Touch() {
	s.UpdatedAt = Now()
}
