// Package list implements the HTTP handler for listing the
// miscellaneous costs of a car.
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
)

// Service describes the cost listing business logic.
type Service interface {
	List(ctx context.Context, carID int64) ([]models.CostEntry, error)
}

// Handler handles GET /cars/{carID}/costs.
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
// @Summary List miscellaneous costs
// @Description Returns all cost entries of one car, newest first.
// @Tags Costs
// @Produce json
// @Param carID path int true "Car ID"
// @Success 200 {object} map[string]any "List of entries"
// @Failure 404 {object} response.ErrorResponse "Car not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /cars/{carID}/costs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cost.list"

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

	entries, err := h.service.List(r.Context(), carID)
	if err != nil {
		log.Error("failed to list cost entries", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list cost entries"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"entries": entries,
		"count":   len(entries),
	}))
}
