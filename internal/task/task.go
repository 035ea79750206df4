package task

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a task id has no matching record.
var ErrNotFound = errors.New("task: not found")

// ErrInvalidTransition is returned when an update would move a task out of
// a terminal state, or into a status unreachable from its current one.
var ErrInvalidTransition = errors.New("task: invalid status transition")

// ErrNotDeletable is returned by Delete when the task is initializing or
// running.
var ErrNotDeletable = errors.New("task: not in a deletable state")

// Task is one tracked batch operation.
type Task struct {
	ID          string
	Type        string
	Description string
	URL         string
	Status      Status
	Total       int
	Processed   int
	Success     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Result      any
	Err         string
}

// Progress returns processed/total as a percentage rounded to 2 decimal
// places, 0 when Total is 0.
func (t Task) Progress() float64 {
	if t.Total <= 0 {
		return 0
	}
	return roundTo2(float64(t.Processed) / float64(t.Total) * 100)
}

// roundTo2 rounds v to 2 decimal places, mirroring the channel package's
// roundTo1 convention for speed samples.
func roundTo2(v float64) float64 {
	const scale = 100
	if v < 0 {
		return -roundTo2(-v)
	}
	return float64(int64(v*scale+0.5)) / scale
}

// Registry is a thread-safe store of Tasks keyed by id.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]*Task)}
}

// Create files a new task, starting in StatusInitializing and immediately
// advancing to StatusPending once filed, mirroring the original two-step
// creation sequence.
func (r *Registry) Create(taskType, description, url string, total int) *Task {
	now := time.Now()
	t := &Task{
		ID:          uuid.NewString(),
		Type:        taskType,
		Description: description,
		URL:         url,
		Status:      StatusInitializing,
		Total:       total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = t
	t.Status = StatusPending
	cp := *t
	return &cp
}

// Get returns a copy of the task record for id.
func (r *Registry) Get(id string) (*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// List returns (id, status) pairs for every tracked task.
func (r *Registry) List() []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, Task{ID: t.ID, Status: t.Status})
	}
	return out
}

// Clear removes every tracked task.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = make(map[string]*Task)
}

// Mutate atomically applies fn to the stored task, bumping UpdatedAt. fn may
// change Status freely; Mutate does not itself enforce CanTransitionTo,
// since some callers (e.g. the orchestrator driving its own task through a
// known-good sequence) mutate several fields in one step. Callers that need
// transition enforcement should use Update.
func (r *Registry) Mutate(id string, fn func(*Task)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return ErrNotFound
	}
	fn(t)
	t.UpdatedAt = time.Now()
	return nil
}

// Update sets status (if non-empty, validated against CanTransitionTo) and
// any of processed/success/result/err, in one atomic step.
func (r *Registry) Update(id string, status Status, processed, success int, result any, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return ErrNotFound
	}
	if status != "" && status != t.Status {
		if !t.Status.CanTransitionTo(status) {
			return ErrInvalidTransition
		}
		t.Status = status
	}
	if processed != 0 {
		t.Processed = processed
	}
	if success != 0 {
		t.Success = success
	}
	if result != nil {
		t.Result = result
	}
	if errMsg != "" {
		t.Err = errMsg
	}
	t.UpdatedAt = time.Now()
	return nil
}

// Delete removes a task, refusing while it is initializing or running: a
// task must be queued (pending) or finished (completed/error/failed).
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return ErrNotFound
	}
	switch t.Status {
	case StatusPending, StatusCompleted, StatusError, StatusFailed:
	default:
		return ErrNotDeletable
	}
	delete(r.tasks, id)
	return nil
}
