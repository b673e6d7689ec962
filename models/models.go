package models

import (
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// Ticket statuses, in lifecycle order.
const (
	StatusWaiting   = "waiting"
	StatusCalled    = "called"
	StatusServing   = "serving"
	StatusCompleted = "completed"
)

// Ticket priorities, highest first.
const (
	PriorityEmergency = "emergency"
	PriorityUrgent    = "urgent"
	PriorityNormal    = "normal"
)

// Counter statuses. "busy" is derived for display and never stored.
const (
	CounterActive   = "active"
	CounterInactive = "inactive"
	CounterBusy     = "busy"
)

type ServiceType struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Prefix        string    `json:"prefix"`
	CurrentNumber int       `json:"current_number"`
	Served        int       `json:"served"`
	CreatedAt     time.Time `json:"created_at"`
}

type Counter struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Status           string `json:"status"`
	CurrentlyServing string `json:"currently_serving,omitempty"`
	ServiceTypeID    string `json:"service_type_id,omitempty"`
}

// DisplayStatus reports "busy" for an active counter with a live assignment.
func (c Counter) DisplayStatus() string {
	if c.Status == CounterActive && c.CurrentlyServing != "" {
		return CounterBusy
	}
	return c.Status
}

type QueueTicket struct {
	ID                string     `json:"id"`
	Number            string     `json:"number"`
	CustomerName      string     `json:"customer_name"`
	Purpose           string     `json:"purpose,omitempty"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	ServiceTypeID     string     `json:"service_type_id"`
	CounterAssigned   string     `json:"counter_assigned,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	CalledAt          *time.Time `json:"called_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	EstimatedWaitTime int        `json:"estimated_wait_time"`
	Notes             string     `json:"notes,omitempty"`
}

type AdminSession struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	LoginTime time.Time `json:"login_time"`
}

func TicketFromRecord(record *core.Record) QueueTicket {
	return QueueTicket{
		ID:                record.Id,
		Number:            record.GetString("number"),
		CustomerName:      record.GetString("customer_name"),
		Purpose:           record.GetString("purpose"),
		Status:            record.GetString("status"),
		Priority:          record.GetString("priority"),
		ServiceTypeID:     record.GetString("service_type_id"),
		CounterAssigned:   record.GetString("counter_assigned"),
		CreatedAt:         record.GetDateTime("created_at").Time(),
		CalledAt:          nullableTime(record, "called_at"),
		CompletedAt:       nullableTime(record, "completed_at"),
		EstimatedWaitTime: record.GetInt("estimated_wait_time"),
		Notes:             record.GetString("notes"),
	}
}

func TicketsFromRecords(records []*core.Record) []QueueTicket {
	tickets := make([]QueueTicket, 0, len(records))
	for _, record := range records {
		tickets = append(tickets, TicketFromRecord(record))
	}
	return tickets
}

func CounterFromRecord(record *core.Record) Counter {
	return Counter{
		ID:               record.Id,
		Name:             record.GetString("name"),
		Status:           record.GetString("status"),
		CurrentlyServing: record.GetString("currently_serving"),
		ServiceTypeID:    record.GetString("service_type_id"),
	}
}

func ServiceTypeFromRecord(record *core.Record) ServiceType {
	return ServiceType{
		ID:            record.Id,
		Name:          record.GetString("name"),
		Prefix:        record.GetString("prefix"),
		CurrentNumber: record.GetInt("current_number"),
		Served:        record.GetInt("served"),
		CreatedAt:     record.GetDateTime("created_at").Time(),
	}
}

func nullableTime(record *core.Record, field string) *time.Time {
	dt := record.GetDateTime(field)
	if dt.IsZero() {
		return nil
	}
	t := dt.Time()
	return &t
}
