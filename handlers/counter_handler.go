package handlers

import (
	"net/http"

	"antrian-fm/models"
	"antrian-fm/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type CounterHandler struct {
	app      *pocketbase.PocketBase
	counters *services.CounterService
}

func NewCounterHandler(app *pocketbase.PocketBase, counters *services.CounterService) *CounterHandler {
	return &CounterHandler{
		app:      app,
		counters: counters,
	}
}

// List - All counters with the derived busy state resolved for display
func (h *CounterHandler) List(e *core.RequestEvent) error {
	counters, err := h.counters.List()
	if err != nil {
		return mapError(err)
	}

	type counterView struct {
		models.Counter
		DisplayStatus string `json:"display_status"`
	}
	views := make([]counterView, 0, len(counters))
	for _, c := range counters {
		views = append(views, counterView{Counter: c, DisplayStatus: c.DisplayStatus()})
	}
	return e.JSON(http.StatusOK, views)
}

// Update - Toggle a counter active/inactive
func (h *CounterHandler) Update(e *core.RequestEvent) error {
	counterID := e.Request.PathValue("id")

	var req struct {
		Status           string `json:"status"`
		CurrentlyServing string `json:"currently_serving"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	counter, err := h.counters.SetStatus(counterID, req.Status, req.CurrentlyServing)
	if err != nil {
		return mapError(err)
	}
	return e.JSON(http.StatusOK, counter)
}
