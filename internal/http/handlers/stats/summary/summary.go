// Package summary implements the HTTP handler for the cost summary of a
// car over a date range.
package summary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pistonary/pistonary/internal/http/middlewarectx"
	"github.com/pistonary/pistonary/internal/http/response"
	"github.com/pistonary/pistonary/internal/lib/sl"
	"github.com/pistonary/pistonary/internal/services"
)

// Service describes the cost summary business logic.
type Service interface {
	CostSummary(ctx context.Context, carID int64, from, to time.Time) (*services.CostSummary, error)
}

// Handler handles GET /cars/{carID}/stats/costs.
type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		now:     time.Now,
	}
}

// ServeHTTP godoc
// @Summary Cost summary
// @Description Sums fuel, maintenance and miscellaneous costs of the car in euro cents over a date range. Without parameters the last twelve months are summed.
// @Tags Stats
// @Produce json
// @Param carID path int true "Car ID"
// @Param from query string false "Range start, 02-01-2006"
// @Param to query string false "Range end, 02-01-2006"
// @Success 200 {object} map[string]any "Cost summary"
// @Failure 400 {object} response.ErrorResponse "Invalid date"
// @Failure 404 {object} response.ErrorResponse "Car not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /cars/{carID}/stats/costs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.summary"

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

	to := h.now()
	from := to.AddDate(-1, 0, 0)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("02-01-2006", raw)
		if err != nil {
			log.Error("invalid from date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid from date, expected 02-01-2006"))
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("02-01-2006", raw)
		if err != nil {
			log.Error("invalid to date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid to date, expected 02-01-2006"))
			return
		}
		to = parsed
	}

	result, err := h.service.CostSummary(r.Context(), carID, from, to)
	if err != nil {
		log.Error("failed to compute cost summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute cost summary"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(result))
}
