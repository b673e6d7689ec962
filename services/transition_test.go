package services

import (
	"testing"
	"time"

	"antrian-fm/internal/status"
	"antrian-fm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransition_WaitingToCalled(t *testing.T) {
	now := time.Now()
	ticket := models.QueueTicket{ID: "t1", Status: models.StatusWaiting}

	changes, err := ApplyTransition(ticket, models.StatusCalled, "c1", now)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCalled, changes.Status)
	assert.Equal(t, "c1", changes.CounterAssigned)
	require.NotNil(t, changes.CalledAt)
	assert.Equal(t, now, *changes.CalledAt)
	assert.Nil(t, changes.CompletedAt)
}

func TestApplyTransition_CalledWithoutCounter(t *testing.T) {
	ticket := models.QueueTicket{ID: "t1", Status: models.StatusWaiting}

	changes, err := ApplyTransition(ticket, models.StatusCalled, "", time.Now())

	assert.ErrorIs(t, err, status.ErrMissingCounter)
	assert.Equal(t, TransitionChanges{}, changes)
}

func TestApplyTransition_CalledToServing(t *testing.T) {
	ticket := models.QueueTicket{ID: "t1", Status: models.StatusCalled, CounterAssigned: "c1"}

	changes, err := ApplyTransition(ticket, models.StatusServing, "", time.Now())

	require.NoError(t, err)
	assert.Equal(t, models.StatusServing, changes.Status)
	// Serving keeps the existing counter and timestamps.
	assert.Empty(t, changes.CounterAssigned)
	assert.Nil(t, changes.CalledAt)
	assert.Nil(t, changes.CompletedAt)
}

func TestApplyTransition_ServingToCompleted(t *testing.T) {
	now := time.Now()
	ticket := models.QueueTicket{ID: "t1", Status: models.StatusServing}

	changes, err := ApplyTransition(ticket, models.StatusCompleted, "", now)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, changes.Status)
	require.NotNil(t, changes.CompletedAt)
	assert.Equal(t, now, *changes.CompletedAt)
}

func TestApplyTransition_RejectsSkipsAndReversals(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		target string
	}{
		{"waiting to serving skips called", models.StatusWaiting, models.StatusServing},
		{"waiting to completed skips everything", models.StatusWaiting, models.StatusCompleted},
		{"called back to waiting", models.StatusCalled, models.StatusWaiting},
		{"called to completed skips serving", models.StatusCalled, models.StatusCompleted},
		{"serving back to called", models.StatusServing, models.StatusCalled},
		{"unknown target", models.StatusWaiting, "archived"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ticket := models.QueueTicket{ID: "t1", Status: tc.from}

			changes, err := ApplyTransition(ticket, tc.target, "c1", time.Now())

			assert.ErrorIs(t, err, status.ErrInvalidTransition)
			assert.Equal(t, TransitionChanges{}, changes)
		})
	}
}

func TestApplyTransition_CompletedIsTerminal(t *testing.T) {
	ticket := models.QueueTicket{ID: "t1", Status: models.StatusCompleted}

	for _, target := range []string{models.StatusWaiting, models.StatusCalled, models.StatusServing, models.StatusCompleted} {
		changes, err := ApplyTransition(ticket, target, "c1", time.Now())

		assert.ErrorIs(t, err, status.ErrTerminalState)
		assert.Equal(t, TransitionChanges{}, changes)
	}
}
