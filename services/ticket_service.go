package services

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"antrian-fm/internal/status"
	"antrian-fm/models"
	"antrian-fm/monitoring"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// Estimated wait shown on a fresh ticket: random minutes in [10, 40).
// It is a courtesy figure, not derived from real queue state.
const (
	estimatedWaitBase  = 10
	estimatedWaitRange = 30
)

const defaultPurpose = "Facility Maintenance"

type CreateTicketRequest struct {
	CustomerName  string `json:"customer_name"`
	ServiceTypeID string `json:"service_type_id"`
	Purpose       string `json:"purpose"`
	Priority      string `json:"priority"`
	Notes         string `json:"notes"`
}

type TicketService struct {
	app      core.App
	notifier *Notifier
}

func NewTicketService(app core.App, notifier *Notifier) *TicketService {
	return &TicketService{app: app, notifier: notifier}
}

// CreateTicket issues the next day-scoped number for the service type and
// inserts the ticket. Numbering and the service counter bump run in a single
// transaction so two simultaneous customers cannot mint the same number.
func (s *TicketService) CreateTicket(req CreateTicketRequest) (models.QueueTicket, error) {
	if strings.TrimSpace(req.CustomerName) == "" || req.ServiceTypeID == "" {
		return models.QueueTicket{}, fmt.Errorf("%w: customer_name and service_type_id are required", status.ErrValidation)
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if priority != models.PriorityNormal && priority != models.PriorityUrgent && priority != models.PriorityEmergency {
		return models.QueueTicket{}, fmt.Errorf("%w: unknown priority %q", status.ErrValidation, req.Priority)
	}

	purpose := strings.TrimSpace(req.Purpose)
	if purpose == "" {
		purpose = defaultPurpose
	}

	now := time.Now()
	var created models.QueueTicket
	var prefix string

	err := s.app.RunInTransaction(func(txApp core.App) error {
		serviceType, err := txApp.FindRecordById("service_types", req.ServiceTypeID)
		if err != nil {
			return fmt.Errorf("%w: %q", status.ErrInvalidServiceType, req.ServiceTypeID)
		}
		prefix = serviceType.GetString("prefix")

		todays, err := findTodaysTickets(txApp, req.ServiceTypeID, now)
		if err != nil {
			return fmt.Errorf("load today's tickets: %w", err)
		}

		sequence := NextSequence(prefix, todays, now)
		number := formatTicketNumber(prefix, now, sequence)

		collection, err := txApp.FindCollectionByNameOrId("queue_tickets")
		if err != nil {
			return err
		}

		record := core.NewRecord(collection)
		record.Set("number", number)
		record.Set("customer_name", strings.TrimSpace(req.CustomerName))
		record.Set("purpose", purpose)
		record.Set("status", models.StatusWaiting)
		record.Set("priority", priority)
		record.Set("service_type_id", req.ServiceTypeID)
		record.Set("estimated_wait_time", rand.IntN(estimatedWaitRange)+estimatedWaitBase)
		record.Set("notes", req.Notes)
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}

		serviceType.Set("current_number", sequence)
		if err := txApp.Save(serviceType); err != nil {
			return fmt.Errorf("bump service sequence: %w", err)
		}

		created = models.TicketFromRecord(record)
		return nil
	})
	if err != nil {
		return models.QueueTicket{}, err
	}

	monitoring.TrackTicketCreated(prefix)
	s.notifier.TicketCreated(created.Number, created.EstimatedWaitTime)
	return created, nil
}

// UpdateTicketStatus applies one lifecycle transition. The ticket update and
// the affected counter's currently_serving assignment are committed together,
// so the counter view cannot drift from ticket state.
func (s *TicketService) UpdateTicketStatus(ticketID, target, counterID string) (models.QueueTicket, error) {
	now := time.Now()
	var updated models.QueueTicket
	var previous string
	var announce func()

	err := s.app.RunInTransaction(func(txApp core.App) error {
		record, err := txApp.FindRecordById("queue_tickets", ticketID)
		if err != nil {
			return fmt.Errorf("%w: ticket %q", status.ErrNotFound, ticketID)
		}
		ticket := models.TicketFromRecord(record)

		changes, err := ApplyTransition(ticket, target, counterID, now)
		if err != nil {
			return err
		}

		switch changes.Status {
		case models.StatusCalled:
			counter, err := txApp.FindRecordById("counters", counterID)
			if err != nil {
				return fmt.Errorf("%w: counter %q", status.ErrNotFound, counterID)
			}
			if counter.GetString("status") != models.CounterActive {
				return fmt.Errorf("%w: %q", status.ErrCounterInactive, counter.GetString("name"))
			}
			counter.Set("currently_serving", ticketID)
			if err := txApp.Save(counter); err != nil {
				return fmt.Errorf("assign counter: %w", err)
			}

			counterName := counter.GetString("name")
			announce = func() {
				s.notifier.TicketCalled(ticket.Number, counterID, counterName)
			}

		case models.StatusCompleted:
			if err := releaseCounter(txApp, ticket.CounterAssigned, ticketID); err != nil {
				return err
			}
			if serviceType, err := txApp.FindRecordById("service_types", ticket.ServiceTypeID); err == nil {
				serviceType.Set("served", serviceType.GetInt("served")+1)
				if err := txApp.Save(serviceType); err != nil {
					return fmt.Errorf("bump served counter: %w", err)
				}
			}
		}

		record.Set("status", changes.Status)
		if changes.CalledAt != nil {
			record.Set("called_at", toDateTime(*changes.CalledAt))
		}
		if changes.CompletedAt != nil {
			record.Set("completed_at", toDateTime(*changes.CompletedAt))
		}
		if changes.CounterAssigned != "" {
			record.Set("counter_assigned", changes.CounterAssigned)
		}
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("update ticket: %w", err)
		}

		previous = ticket.Status
		updated = models.TicketFromRecord(record)
		return nil
	})
	if err != nil {
		return models.QueueTicket{}, err
	}

	observeTransition(previous, updated, now)
	if announce != nil {
		announce()
	}
	return updated, nil
}

// observeTransition records the metrics for one committed transition. Runs
// outside the transaction so a rolled-back update never skews the counters.
func observeTransition(previous string, updated models.QueueTicket, now time.Time) {
	monitoring.TrackTransition(previous, updated.Status)
	switch updated.Status {
	case models.StatusCalled:
		monitoring.ObserveWaitTime(now.Sub(updated.CreatedAt))
	case models.StatusCompleted:
		if updated.CalledAt != nil {
			monitoring.ObserveServiceTime(now.Sub(*updated.CalledAt))
		}
	}
}

// DeleteTicket removes a ticket entirely. Administrative only; a counter
// still pointing at the ticket is released in the same transaction.
func (s *TicketService) DeleteTicket(ticketID string) error {
	return s.app.RunInTransaction(func(txApp core.App) error {
		record, err := txApp.FindRecordById("queue_tickets", ticketID)
		if err != nil {
			return fmt.Errorf("%w: ticket %q", status.ErrNotFound, ticketID)
		}
		if err := releaseCounter(txApp, record.GetString("counter_assigned"), ticketID); err != nil {
			return err
		}
		return txApp.Delete(record)
	})
}

// ListTickets returns the full collection scoped by period. sortMode "queue"
// applies the priority ordering; anything else keeps creation order.
func (s *TicketService) ListTickets(period, sortMode string) ([]models.QueueTicket, error) {
	records := []*core.Record{}
	err := s.app.RecordQuery("queue_tickets").
		OrderBy("created_at ASC").
		All(&records)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	tickets := FilterByPeriod(models.TicketsFromRecords(records), period, time.Now())
	if sortMode == "queue" {
		tickets = SortForQueue(tickets)
	}
	return tickets, nil
}

// Board returns the latest tickets for the public queue display.
func (s *TicketService) Board(limit int) ([]models.QueueTicket, error) {
	records := []*core.Record{}
	err := s.app.RecordQuery("queue_tickets").
		OrderBy("created_at DESC").
		Limit(int64(limit)).
		All(&records)
	if err != nil {
		return nil, fmt.Errorf("load queue board: %w", err)
	}
	return models.TicketsFromRecords(records), nil
}

// ListServiceTypes returns the service catalog ordered by name.
func (s *TicketService) ListServiceTypes() ([]models.ServiceType, error) {
	records := []*core.Record{}
	err := s.app.RecordQuery("service_types").
		OrderBy("name ASC").
		All(&records)
	if err != nil {
		return nil, fmt.Errorf("list service types: %w", err)
	}

	serviceTypes := make([]models.ServiceType, 0, len(records))
	for _, record := range records {
		serviceTypes = append(serviceTypes, models.ServiceTypeFromRecord(record))
	}
	return serviceTypes, nil
}

func findTodaysTickets(txApp core.App, serviceTypeID string, now time.Time) ([]models.QueueTicket, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	records := []*core.Record{}
	err := txApp.RecordQuery("queue_tickets").
		AndWhere(dbx.HashExp{"service_type_id": serviceTypeID}).
		AndWhere(dbx.NewExp("created_at >= {:start} AND created_at < {:end}", dbx.Params{
			"start": dayStart.UTC().Format(types.DefaultDateLayout),
			"end":   dayEnd.UTC().Format(types.DefaultDateLayout),
		})).
		OrderBy("created_at DESC").
		All(&records)
	if err != nil {
		return nil, err
	}
	return models.TicketsFromRecords(records), nil
}

func releaseCounter(txApp core.App, counterID, ticketID string) error {
	if counterID == "" {
		return nil
	}
	counter, err := txApp.FindRecordById("counters", counterID)
	if err != nil {
		// Counter already deleted; nothing to release.
		return nil
	}
	if counter.GetString("currently_serving") != ticketID {
		return nil
	}
	counter.Set("currently_serving", "")
	if err := txApp.Save(counter); err != nil {
		return fmt.Errorf("release counter: %w", err)
	}
	return nil
}

func toDateTime(t time.Time) types.DateTime {
	dt, err := types.ParseDateTime(t)
	if err != nil {
		return types.DateTime{}
	}
	return dt
}
