package handlers

import (
	"net/http"
	"strconv"

	"antrian-fm/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type TicketHandler struct {
	app     *pocketbase.PocketBase
	tickets *services.TicketService
	board   int
}

func NewTicketHandler(app *pocketbase.PocketBase, tickets *services.TicketService, boardSize int) *TicketHandler {
	return &TicketHandler{
		app:     app,
		tickets: tickets,
		board:   boardSize,
	}
}

// Create - Customer intake: take a queue number
func (h *TicketHandler) Create(e *core.RequestEvent) error {
	var req services.CreateTicketRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ticket, err := h.tickets.CreateTicket(req)
	if err != nil {
		return mapError(err)
	}
	return e.JSON(http.StatusCreated, ticket)
}

// Board - Latest tickets for the public waiting-room display
func (h *TicketHandler) Board(e *core.RequestEvent) error {
	limit := h.board
	if raw := e.Request.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	tickets, err := h.tickets.Board(limit)
	if err != nil {
		return mapError(err)
	}
	return e.JSON(http.StatusOK, tickets)
}

// ListServiceTypes - Service catalog for the intake form
func (h *TicketHandler) ListServiceTypes(e *core.RequestEvent) error {
	serviceTypes, err := h.tickets.ListServiceTypes()
	if err != nil {
		return mapError(err)
	}
	return e.JSON(http.StatusOK, serviceTypes)
}
