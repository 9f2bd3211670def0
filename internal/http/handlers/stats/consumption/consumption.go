// Package consumption implements the HTTP handler for the fuel
// consumption statistics of a car.
package consumption

import (
	"context"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pistonary/pistonary/internal/http/middlewarectx"
	"github.com/pistonary/pistonary/internal/http/response"
	"github.com/pistonary/pistonary/internal/lib/sl"
	"github.com/pistonary/pistonary/internal/services"
)

// Service describes the consumption computation business logic.
type Service interface {
	Consumption(ctx context.Context, carID int64) ([]services.ConsumptionPoint, error)
}

// Handler handles GET /cars/{carID}/stats/consumption.
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
// @Summary Fuel consumption statistics
// @Description Returns liters per 100 km between consecutive full fill-ups. Partial fill-ups are folded into the next full one.
// @Tags Stats
// @Produce json
// @Param carID path int true "Car ID"
// @Success 200 {object} map[string]any "Consumption points"
// @Failure 404 {object} response.ErrorResponse "Car not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /cars/{carID}/stats/consumption [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.consumption"

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

	points, err := h.service.Consumption(r.Context(), carID)
	if err != nil {
		log.Error("failed to compute consumption", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute consumption"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"points":  points,
		"average": averagePer100Km(points),
	}))
}

// averagePer100Km weights the average over the whole covered distance
// rather than averaging the per-segment values.
func averagePer100Km(points []services.ConsumptionPoint) float64 {
	distance := 0
	liters := 0.0
	for _, p := range points {
		distance += p.DistanceKm
		liters += p.Liters
	}
	if distance == 0 {
		return 0
	}
	return math.Round(liters/float64(distance)*100*100) / 100
}
