package services

import (
	"testing"

	"antrian-fm/internal/status"
	"antrian-fm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextServing_DeactivateClearsAssignment(t *testing.T) {
	// Counter goes inactive while serving a ticket: the assignment is
	// released even though the ticket itself is mid-service.
	serving, err := nextServing(models.CounterInactive, "t1", "FM20260828001", models.StatusServing)

	require.NoError(t, err)
	assert.Equal(t, "", serving)
}

func TestNextServing_ActiveWithoutRequestStaysClear(t *testing.T) {
	serving, err := nextServing(models.CounterActive, "", "", "")

	require.NoError(t, err)
	assert.Equal(t, "", serving)
}

func TestNextServing_ActiveKeepsLiveTicket(t *testing.T) {
	for _, ticketStatus := range []string{models.StatusCalled, models.StatusServing} {
		serving, err := nextServing(models.CounterActive, "t1", "FM20260828001", ticketStatus)

		require.NoError(t, err)
		assert.Equal(t, "t1", serving)
	}
}

func TestNextServing_RejectsIdleTicket(t *testing.T) {
	for _, ticketStatus := range []string{models.StatusWaiting, models.StatusCompleted} {
		_, err := nextServing(models.CounterActive, "t1", "FM20260828001", ticketStatus)

		assert.ErrorIs(t, err, status.ErrValidation)
	}
}

func TestSetStatus_RejectsUnknownTarget(t *testing.T) {
	svc := NewCounterService(nil)

	_, err := svc.SetStatus("c1", "busy", "")
	assert.ErrorIs(t, err, status.ErrValidation)

	_, err = svc.SetStatus("c1", "", "")
	assert.ErrorIs(t, err, status.ErrValidation)
}
