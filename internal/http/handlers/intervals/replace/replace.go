// Package replace implements the HTTP handler for swapping the interval
// override set of a car.
package replace

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/pistonary/pistonary/internal/http/middlewarectx"
	"github.com/pistonary/pistonary/internal/http/response"
	"github.com/pistonary/pistonary/internal/lib/sl"
	"github.com/pistonary/pistonary/internal/models"
)

// Request carries the full new override set. Overrides not in the list
// are deleted.
type Request struct {
	Overrides []models.DummyIntervalOverride `json:"overrides" validate:"dive"`
}

// Service describes the override replacement business logic.
type Service interface {
	ReplaceIntervals(ctx context.Context, carID int64, reqs []models.DummyIntervalOverride) error
}

// Handler handles PUT /cars/{carID}/intervals.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Replace interval overrides
// @Description Replaces the full set of car-specific interval overrides. Overrides are keyed by the German display name of the maintenance type.
// @Tags Intervals
// @Accept json
// @Produce json
// @Param carID path int true "Car ID"
// @Param request body Request true "New override set"
// @Success 200 {object} map[string]any "Overrides replaced"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 404 {object} response.ErrorResponse "Car not found"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /cars/{carID}/intervals [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.intervals.replace"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ReplaceIntervals(r.Context(), carID, req.Overrides); err != nil {
		log.Error("failed to replace overrides", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not replace overrides"))
		return
	}

	log.Info("overrides replaced", slog.Int64("car_id", carID), slog.Int("count", len(req.Overrides)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count": len(req.Overrides),
	}))
}
