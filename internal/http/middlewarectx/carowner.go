package middlewarectx

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pistonary/pistonary/internal/http/response"
	"github.com/pistonary/pistonary/internal/lib/sl"
)

// CarOwnerService looks up the owner of a car.
type CarOwnerService interface {
	CarOwner(ctx context.Context, carID int64) (string, error)
}

// CarOwnershipMiddleware parses the carID URL parameter and verifies
// that the car belongs to the authenticated user. Cars of other users
// answer 404, the same as cars that do not exist. The parsed id is
// stored in the request context under CarID.
func CarOwnershipMiddleware(service CarOwnerService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.CarOwnershipMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			carID, err := strconv.ParseInt(chi.URLParam(r, "carID"), 10, 64)
			if err != nil {
				log.Error("invalid car id", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid car id"))
				return
			}

			username, ok := r.Context().Value(User).(string)
			if !ok || username == "" {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			owner, err := service.CarOwner(r.Context(), carID)
			if errors.Is(err, sql.ErrNoRows) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("car not found"))
				return
			}
			if err != nil {
				log.Error("failed to check car owner", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}
			if owner != username {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("car not found"))
				return
			}

			ctx := context.WithValue(r.Context(), CarID, carID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
