package handlers

import (
	"net/http"

	"antrian-fm/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// AdminHandler drives the ticket management tab: the full ticket table plus
// the lifecycle actions (call, serve, complete, delete).
type AdminHandler struct {
	app     *pocketbase.PocketBase
	tickets *services.TicketService
}

func NewAdminHandler(app *pocketbase.PocketBase, tickets *services.TicketService) *AdminHandler {
	return &AdminHandler{
		app:     app,
		tickets: tickets,
	}
}

// ListTickets - Ticket table, optionally period-scoped and queue-sorted
func (h *AdminHandler) ListTickets(e *core.RequestEvent) error {
	query := e.Request.URL.Query()
	period := query.Get("period")
	if period == "" {
		period = services.PeriodAll
	}

	tickets, err := h.tickets.ListTickets(period, query.Get("sort"))
	if err != nil {
		return mapError(err)
	}
	return e.JSON(http.StatusOK, tickets)
}

// UpdateTicketStatus - Apply one lifecycle transition
func (h *AdminHandler) UpdateTicketStatus(e *core.RequestEvent) error {
	ticketID := e.Request.PathValue("id")

	var req struct {
		Status    string `json:"status"`
		CounterID string `json:"counter_id"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.Status == "" {
		return apis.NewBadRequestError("Target status is required", nil)
	}

	ticket, err := h.tickets.UpdateTicketStatus(ticketID, req.Status, req.CounterID)
	if err != nil {
		return mapError(err)
	}
	return e.JSON(http.StatusOK, ticket)
}

// DeleteTicket - Administrative destructive delete
func (h *AdminHandler) DeleteTicket(e *core.RequestEvent) error {
	if err := h.tickets.DeleteTicket(e.Request.PathValue("id")); err != nil {
		return mapError(err)
	}
	return e.JSON(http.StatusOK, map[string]string{"message": "Ticket deleted"})
}
