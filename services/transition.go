package services

import (
	"time"

	"antrian-fm/internal/status"
	"antrian-fm/models"
)

// TransitionChanges holds the ticket fields mutated by a status transition.
// Zero-valued fields are left untouched by the caller.
type TransitionChanges struct {
	Status          string
	CalledAt        *time.Time
	CompletedAt     *time.Time
	CounterAssigned string
}

// ApplyTransition validates a lifecycle move and returns the resulting field
// changes without mutating the ticket. The lifecycle is strictly linear:
// waiting -> called -> serving -> completed.
func ApplyTransition(t models.QueueTicket, target, counterID string, now time.Time) (TransitionChanges, error) {
	if t.Status == models.StatusCompleted {
		return TransitionChanges{}, status.ErrTerminalState
	}

	switch {
	case t.Status == models.StatusWaiting && target == models.StatusCalled:
		if counterID == "" {
			return TransitionChanges{}, status.ErrMissingCounter
		}
		return TransitionChanges{
			Status:          models.StatusCalled,
			CalledAt:        &now,
			CounterAssigned: counterID,
		}, nil

	case t.Status == models.StatusCalled && target == models.StatusServing:
		return TransitionChanges{Status: models.StatusServing}, nil

	case t.Status == models.StatusServing && target == models.StatusCompleted:
		return TransitionChanges{
			Status:      models.StatusCompleted,
			CompletedAt: &now,
		}, nil
	}

	return TransitionChanges{}, status.ErrInvalidTransition
}
