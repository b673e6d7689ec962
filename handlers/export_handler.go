package handlers

import (
	"fmt"
	"net/http"
	"time"

	"antrian-fm/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type ExportHandler struct {
	app     *pocketbase.PocketBase
	tickets *services.TicketService
}

func NewExportHandler(app *pocketbase.PocketBase, tickets *services.TicketService) *ExportHandler {
	return &ExportHandler{
		app:     app,
		tickets: tickets,
	}
}

// Export - Download the period-filtered ticket recap as CSV or JSON
func (h *ExportHandler) Export(e *core.RequestEvent) error {
	query := e.Request.URL.Query()
	format := query.Get("format")
	period := query.Get("period")
	if period == "" {
		period = services.PeriodAll
	}

	tickets, err := h.tickets.ListTickets(period, "")
	if err != nil {
		return mapError(err)
	}

	now := time.Now()
	data, contentType, err := services.Export(tickets, format)
	if err != nil {
		return mapError(err)
	}

	filename := services.ExportFilename(format, period, now)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return e.Blob(http.StatusOK, contentType, data)
}
