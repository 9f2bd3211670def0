// Package status implements the HTTP handler for the derived
// maintenance state of a car. The state is computed from the current
// logbook on every request and never stored.
package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pistonary/pistonary/internal/http/middlewarectx"
	"github.com/pistonary/pistonary/internal/http/response"
	"github.com/pistonary/pistonary/internal/lib/sl"
	"github.com/pistonary/pistonary/internal/models"
	"github.com/pistonary/pistonary/internal/schedule"
	"github.com/pistonary/pistonary/internal/services"
)

// Service describes the status derivation business logic.
type Service interface {
	Status(ctx context.Context, carID int64, unit schedule.Unit, types []models.MaintenanceType) (*services.StatusReport, error)
}

// Prefs resolves the user's preferred display unit.
type Prefs interface {
	DisplayUnit(ctx context.Context, username string) schedule.Unit
}

// Handler handles GET /cars/{carID}/status.
type Handler struct {
	log     *slog.Logger
	service Service
	prefs   Prefs
}

// New creates a new Handler.
func New(log *slog.Logger, service Service, prefs Prefs) *Handler {
	return &Handler{
		log:     log,
		service: service,
		prefs:   prefs,
	}
}

// ServeHTTP godoc
// @Summary Derived maintenance status
// @Description Returns the per-type maintenance state of the car: not_recorded, good, soon or overdue, with a German remaining-time text per item. The types query parameter filters the report, the unit parameter (km or mi) overrides the user's display unit.
// @Tags Maintenance
// @Produce json
// @Param carID path int true "Car ID"
// @Param unit query string false "Distance unit, km or mi"
// @Param types query string false "Comma-separated list of maintenance types"
// @Success 200 {object} map[string]any "Status report"
// @Failure 400 {object} response.ErrorResponse "Unknown unit or type"
// @Failure 404 {object} response.ErrorResponse "Car not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /cars/{carID}/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.maintenance.status"

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

	unit, err := h.resolveUnit(r)
	if err != nil {
		log.Error("invalid unit", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown unit, expected km or mi"))
		return
	}

	types, bad := parseTypes(r.URL.Query().Get("types"))
	if bad != "" {
		log.Error("unknown maintenance type", slog.String("type", bad))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown maintenance type: "+bad))
		return
	}

	report, err := h.service.Status(r.Context(), carID, unit, types)
	if err != nil {
		log.Error("failed to compute status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute status"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(report))
}

// resolveUnit prefers the query parameter over the stored preference.
func (h *Handler) resolveUnit(r *http.Request) (schedule.Unit, error) {
	switch r.URL.Query().Get("unit") {
	case "":
		if username, ok := r.Context().Value(middlewarectx.User).(string); ok {
			return h.prefs.DisplayUnit(r.Context(), username), nil
		}
		return schedule.UnitKilometers, nil
	case string(schedule.UnitKilometers):
		return schedule.UnitKilometers, nil
	case string(schedule.UnitMiles), "miles":
		return schedule.UnitMiles, nil
	default:
		return "", errUnknownUnit
	}
}

var errUnknownUnit = errors.New("unknown unit")

func parseTypes(raw string) ([]models.MaintenanceType, string) {
	if raw == "" {
		return nil, ""
	}
	var types []models.MaintenanceType
	for _, part := range strings.Split(raw, ",") {
		t := models.MaintenanceType(strings.TrimSpace(part))
		if !t.Valid() {
			return nil, string(t)
		}
		types = append(types, t)
	}
	return types, ""
}
