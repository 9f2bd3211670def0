// Package middlewarectx holds the HTTP middleware of the service: JWT
// authentication, car ownership checks, rate limiting and request
// metrics. Middleware that authenticates or authorizes stores its
// results in the request context under the Key constants.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/pistonary/pistonary/internal/http/response"
	"github.com/pistonary/pistonary/internal/lib/jwt"
	"github.com/pistonary/pistonary/internal/lib/sl"
)

// Key is the type of the context keys set by this package.
type Key string

const (
	// User is the context key of the authenticated username.
	User Key = "username"
	// Role is the context key of the authenticated user's role.
	Role Key = "role"
	// CarID is the context key of the car whose ownership was verified.
	CarID Key = "car_id"
)

// JWTMiddleware checks the Bearer token in the Authorization header.
// On success it stores username and role in the request context,
// otherwise it answers 401 Unauthorized.
func JWTMiddleware(maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := maker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), User, claims.Username)
			ctx = context.WithValue(ctx, Role, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
