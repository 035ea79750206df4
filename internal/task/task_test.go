package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStartsPending(t *testing.T) {
	r := NewRegistry()
	tk := r.Create("batch-check", "validate source", "http://host/live.txt", 10)
	assert.Equal(t, StatusPending, tk.Status)
	assert.NotEmpty(t, tk.ID)
}

func TestGetNotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEnforcesTransitions(t *testing.T) {
	r := NewRegistry()
	tk := r.Create("t", "d", "u", 5)

	err := r.Update(tk.ID, StatusCompleted, 0, 0, nil, "")
	assert.ErrorIs(t, err, ErrInvalidTransition, "pending->completed should skip running")

	require.NoError(t, r.Update(tk.ID, StatusRunning, 0, 0, nil, ""))
	require.NoError(t, r.Update(tk.ID, StatusCompleted, 5, 5, "ok", ""))

	err = r.Update(tk.ID, StatusRunning, 0, 0, nil, "")
	assert.ErrorIs(t, err, ErrInvalidTransition, "terminal status must reject further transitions")
}

func TestMutateBumpsUpdatedAt(t *testing.T) {
	r := NewRegistry()
	tk := r.Create("t", "d", "u", 5)
	before, _ := r.Get(tk.ID)

	err := r.Mutate(tk.ID, func(task *Task) {
		task.Processed = 3
	})
	require.NoError(t, err)

	after, _ := r.Get(tk.ID)
	assert.Equal(t, 3, after.Processed)
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt), "expected UpdatedAt to advance")
}

func TestDeleteRejectsActiveTask(t *testing.T) {
	r := NewRegistry()
	tk := r.Create("t", "d", "u", 5)
	_ = r.Update(tk.ID, StatusRunning, 0, 0, nil, "")

	err := r.Delete(tk.ID)
	assert.ErrorIs(t, err, ErrNotDeletable)

	require.NoError(t, r.Update(tk.ID, StatusCompleted, 5, 5, nil, ""))
	assert.NoError(t, r.Delete(tk.ID))
}

func TestProgressZeroTotal(t *testing.T) {
	tk := Task{Total: 0, Processed: 5}
	assert.Zero(t, tk.Progress())
}

func TestProgressComputed(t *testing.T) {
	tk := Task{Total: 4, Processed: 1}
	assert.Equal(t, 25.0, tk.Progress())
}

func TestProgressRoundsToTwoDecimals(t *testing.T) {
	tk := Task{Total: 3, Processed: 1}
	assert.Equal(t, 33.33, tk.Progress())
}
