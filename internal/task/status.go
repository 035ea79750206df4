// Package task tracks long-running batch operations (checks, merges,
// conversions) as records a client can poll by id.
package task

import (
	"encoding/json"
	"fmt"
)

// Status represents the current state of a tracked task.
type Status string

const (
	StatusInitializing Status = "initializing"
	StatusPending      Status = "pending"
	StatusRunning      Status = "running"
	StatusCompleted    Status = "completed"
	StatusError        Status = "error"
	StatusFailed       Status = "failed"
)

// IsValid reports whether s is one of the defined statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusInitializing, StatusPending, StatusRunning, StatusCompleted, StatusError, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether s is a final state that Update will refuse to
// leave. Mutate does not check transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusError, StatusFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether s may transition to target.
//
// Valid transitions:
//   - Initializing -> Pending
//   - Pending -> Running
//   - Running -> Completed, Error, Failed
//   - Terminal states never transition
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case StatusInitializing:
		return target == StatusPending
	case StatusPending:
		return target == StatusRunning
	case StatusRunning:
		return target == StatusCompleted || target == StatusError || target == StatusFailed
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }

// MarshalJSON implements json.Marshaler.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler, rejecting unknown statuses.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed := Status(str)
	if !parsed.IsValid() {
		return fmt.Errorf("task: invalid status %q", str)
	}
	*s = parsed
	return nil
}
