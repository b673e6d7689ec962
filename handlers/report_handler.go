package handlers

import (
	"net/http"
	"time"

	"antrian-fm/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type ReportHandler struct {
	app     *pocketbase.PocketBase
	tickets *services.TicketService
}

func NewReportHandler(app *pocketbase.PocketBase, tickets *services.TicketService) *ReportHandler {
	return &ReportHandler{
		app:     app,
		tickets: tickets,
	}
}

// Summary - Today's reporting view: totals, status distribution, averages,
// hourly histogram
func (h *ReportHandler) Summary(e *core.RequestEvent) error {
	tickets, err := h.tickets.ListTickets(services.PeriodAll, "")
	if err != nil {
		return mapError(err)
	}
	return e.JSON(http.StatusOK, services.Summarize(tickets, time.Now()))
}
