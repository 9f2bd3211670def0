// Package list implements the HTTP handler for the effective interval
// rules of a car, defaults merged with the car's active overrides.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pistonary/pistonary/internal/http/middlewarectx"
	"github.com/pistonary/pistonary/internal/http/response"
	"github.com/pistonary/pistonary/internal/lib/sl"
	"github.com/pistonary/pistonary/internal/models"
	"github.com/pistonary/pistonary/internal/schedule"
)

// Service describes the interval resolution business logic.
type Service interface {
	ListResolvedIntervals(ctx context.Context, carID int64) (map[models.MaintenanceType]schedule.IntervalRule, error)
}

// Item is one resolved interval rule in the response.
type Item struct {
	Type        models.MaintenanceType `json:"type"`
	DisplayName string                 `json:"display_name"`
	Months      int                    `json:"months"`
	Kilometers  int                    `json:"kilometers"`
}

// Handler handles GET /cars/{carID}/intervals.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Effective interval rules
// @Description Returns the interval rule of every maintenance type on this car, car-specific overrides applied. Zero on both axes means the type is never due automatically.
// @Tags Intervals
// @Produce json
// @Param carID path int true "Car ID"
// @Success 200 {object} map[string]any "Resolved rules"
// @Failure 404 {object} response.ErrorResponse "Car not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /cars/{carID}/intervals [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.intervals.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	carID, ok := r.Context().Value(middlewarectx.CarID).(int64)
	if !ok {
		log.Error("car id not found in context")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	rules, err := h.service.ListResolvedIntervals(r.Context(), carID)
	if err != nil {
		log.Error("failed to resolve intervals", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not resolve intervals"))
		return
	}

	items := make([]Item, 0, len(models.AllMaintenanceTypes))
	for _, t := range models.AllMaintenanceTypes {
		rule := rules[t]
		items = append(items, Item{
			Type:        t,
			DisplayName: t.DisplayName(),
			Months:      rule.Months,
			Kilometers:  rule.Kilometers,
		})
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"intervals": items,
	}))
}
