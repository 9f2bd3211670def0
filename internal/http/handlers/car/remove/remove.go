// Package remove implements the HTTP handler for deleting a car. All
// logbook entries and overrides of the car are removed with it.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pistonary/pistonary/internal/http/middlewarectx"
	"github.com/pistonary/pistonary/internal/http/response"
	"github.com/pistonary/pistonary/internal/lib/sl"
)

// Service describes the car removal business logic.
type Service interface {
	Remove(ctx context.Context, carID int64) (int, error)
}

// Handler handles DELETE /cars/{carID}.
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
// @Summary Delete a car
// @Description Deletes one car of the authenticated user together with all its entries.
// @Tags Cars
// @Produce json
// @Param carID path int true "Car ID"
// @Success 200 {object} map[string]any "Number of deleted rows"
// @Failure 404 {object} response.ErrorResponse "Car not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /cars/{carID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.remove"

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

	count, err := h.service.Remove(r.Context(), carID)
	if err != nil {
		log.Error("failed to remove car", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove car"))
		return
	}
	if count == 0 {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("car not found"))
		return
	}

	log.Info("car removed", slog.Int64("id", carID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted": count,
	}))
}
