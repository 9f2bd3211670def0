// Package list implements the HTTP handler for listing the user's cars.
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

// Service describes the car listing business logic.
type Service interface {
	List(ctx context.Context, username string) ([]*models.Car, error)
}

// Handler handles GET /cars.
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
// @Summary List cars
// @Description Returns all cars in the authenticated user's logbook.
// @Tags Cars
// @Produce json
// @Success 200 {object} map[string]any "List of cars"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /cars [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	cars, err := h.service.List(r.Context(), username)
	if err != nil {
		log.Error("failed to list cars", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list cars"))
		return
	}

	log.Info("cars listed", slog.Int("count", len(cars)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"cars":  cars,
		"count": len(cars),
	}))
}
