package services

import (
	"fmt"

	"antrian-fm/internal/status"
	"antrian-fm/models"

	"github.com/pocketbase/pocketbase/core"
)

type CounterService struct {
	app core.App
}

func NewCounterService(app core.App) *CounterService {
	return &CounterService{app: app}
}

// List returns all counters ordered by name, with the derived display status
// resolved for each.
func (s *CounterService) List() ([]models.Counter, error) {
	records := []*core.Record{}
	err := s.app.RecordQuery("counters").
		OrderBy("name ASC").
		All(&records)
	if err != nil {
		return nil, fmt.Errorf("list counters: %w", err)
	}

	counters := make([]models.Counter, 0, len(records))
	for _, record := range records {
		counters = append(counters, models.CounterFromRecord(record))
	}
	return counters, nil
}

// SetStatus toggles a counter between active and inactive. Deactivating a
// counter clears its assignment; the ticket it pointed at keeps its own state
// and is finished through the ticket lifecycle as usual.
func (s *CounterService) SetStatus(counterID, target, currentlyServing string) (models.Counter, error) {
	if target != models.CounterActive && target != models.CounterInactive {
		return models.Counter{}, fmt.Errorf("%w: counter status must be active or inactive, got %q", status.ErrValidation, target)
	}

	var updated models.Counter
	err := s.app.RunInTransaction(func(txApp core.App) error {
		record, err := txApp.FindRecordById("counters", counterID)
		if err != nil {
			return fmt.Errorf("%w: counter %q", status.ErrNotFound, counterID)
		}

		ticketNumber, ticketStatus := "", ""
		if target == models.CounterActive && currentlyServing != "" {
			ticket, err := txApp.FindRecordById("queue_tickets", currentlyServing)
			if err != nil {
				return fmt.Errorf("%w: ticket %q", status.ErrNotFound, currentlyServing)
			}
			ticketNumber = ticket.GetString("number")
			ticketStatus = ticket.GetString("status")
		}

		serving, err := nextServing(target, currentlyServing, ticketNumber, ticketStatus)
		if err != nil {
			return err
		}

		record.Set("status", target)
		record.Set("currently_serving", serving)
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("update counter: %w", err)
		}

		updated = models.CounterFromRecord(record)
		return nil
	})
	if err != nil {
		return models.Counter{}, err
	}
	return updated, nil
}

// nextServing decides what currently_serving becomes after a counter status
// change. Only an active counter may hold an assignment, and only to a ticket
// that is currently called or serving; deactivating always clears it.
func nextServing(target, requested, ticketNumber, ticketStatus string) (string, error) {
	if target != models.CounterActive || requested == "" {
		return "", nil
	}
	if ticketStatus != models.StatusCalled && ticketStatus != models.StatusServing {
		return "", fmt.Errorf("%w: ticket %s is %s, not called or serving", status.ErrValidation, ticketNumber, ticketStatus)
	}
	return requested, nil
}
