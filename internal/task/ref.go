package task

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Ref is a tagged identifier for either a top-level task or a subtask.
// Sub == 0 means the ref addresses a task; Sub > 0 addresses subtask
// Sub inside task Task. This is the single parsing boundary for the
// external "12" / "12.3" identifier forms — no other code splits id
// strings.
type Ref struct {
	Task int
	Sub  int
}

// TaskRef builds a ref addressing a top-level task.
func TaskRef(id int) Ref {
	return Ref{Task: id}
}

// SubtaskRef builds a ref addressing a subtask within its parent.
func SubtaskRef(parent, id int) Ref {
	return Ref{Task: parent, Sub: id}
}

// IsSubtask reports whether the ref addresses a subtask.
func (r Ref) IsSubtask() bool {
	return r.Sub > 0
}

// String renders the external identifier form: "12" or "12.3".
func (r Ref) String() string {
	if r.IsSubtask() {
		return strconv.Itoa(r.Task) + "." + strconv.Itoa(r.Sub)
	}
	return strconv.Itoa(r.Task)
}

// ParseRef parses an external identifier. Accepts "12" (task) and
// "12.3" (subtask); both components must be positive integers.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, fmt.Errorf("empty task id")
	}

	parent, child, isSub := strings.Cut(s, ".")

	taskID, err := strconv.Atoi(parent)
	if err != nil || taskID <= 0 {
		return Ref{}, fmt.Errorf("invalid task id %q: expected a positive integer or \"parent.subtask\"", s)
	}
	if !isSub {
		return Ref{Task: taskID}, nil
	}

	subID, err := strconv.Atoi(child)
	if err != nil || subID <= 0 {
		return Ref{}, fmt.Errorf("invalid subtask id %q: expected \"parent.subtask\" with positive integers", s)
	}
	return Ref{Task: taskID, Sub: subID}, nil
}

// ParseRefList parses a comma-separated list of external identifiers.
func ParseRefList(s string) ([]Ref, error) {
	var refs []Ref
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		ref, err := ParseRef(part)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no task ids given")
	}
	return refs, nil
}

// MarshalJSON writes task refs as bare integers and subtask refs as
// "parent.sub" strings, matching the persisted document format.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.IsSubtask() {
		return json.Marshal(r.String())
	}
	return json.Marshal(r.Task)
}

// UnmarshalJSON accepts either form: a JSON number (task id) or a
// string ("12" or "12.3").
func (r *Ref) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n <= 0 {
			return fmt.Errorf("invalid task id %d", n)
		}
		*r = Ref{Task: n}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("dependency id must be a number or string, got %s", string(data))
	}
	parsed, err := ParseRef(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
