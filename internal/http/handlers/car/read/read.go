// Package read implements the HTTP handler for fetching one car.
package read

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

// Service describes the car read business logic.
type Service interface {
	Read(ctx context.Context, carID int64) (*models.Car, error)
}

// Handler handles GET /cars/{carID}.
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
// @Summary Read a car
// @Description Returns one car of the authenticated user.
// @Tags Cars
// @Produce json
// @Param carID path int true "Car ID"
// @Success 200 {object} map[string]any "Car data"
// @Failure 404 {object} response.ErrorResponse "Car not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /cars/{carID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.read"

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

	car, err := h.service.Read(r.Context(), carID)
	if err != nil {
		log.Error("failed to read car", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read car"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(car))
}
