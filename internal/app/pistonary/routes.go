package pistonary

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pistonary/pistonary/internal/http/handlers/auth/login"
	"github.com/pistonary/pistonary/internal/http/handlers/auth/register"
	carcreate "github.com/pistonary/pistonary/internal/http/handlers/car/create"
	carlist "github.com/pistonary/pistonary/internal/http/handlers/car/list"
	carread "github.com/pistonary/pistonary/internal/http/handlers/car/read"
	carremove "github.com/pistonary/pistonary/internal/http/handlers/car/remove"
	carupdate "github.com/pistonary/pistonary/internal/http/handlers/car/update"
	costcreate "github.com/pistonary/pistonary/internal/http/handlers/cost/create"
	costlist "github.com/pistonary/pistonary/internal/http/handlers/cost/list"
	costremove "github.com/pistonary/pistonary/internal/http/handlers/cost/remove"
	"github.com/pistonary/pistonary/internal/http/handlers/health"
	intervalslist "github.com/pistonary/pistonary/internal/http/handlers/intervals/list"
	intervalsreplace "github.com/pistonary/pistonary/internal/http/handlers/intervals/replace"
	maintcreate "github.com/pistonary/pistonary/internal/http/handlers/maintenance/create"
	maintlist "github.com/pistonary/pistonary/internal/http/handlers/maintenance/list"
	maintremove "github.com/pistonary/pistonary/internal/http/handlers/maintenance/remove"
	"github.com/pistonary/pistonary/internal/http/handlers/maintenance/status"
	maintupdate "github.com/pistonary/pistonary/internal/http/handlers/maintenance/update"
	prefsread "github.com/pistonary/pistonary/internal/http/handlers/prefs/read"
	prefssave "github.com/pistonary/pistonary/internal/http/handlers/prefs/save"
	refuelcreate "github.com/pistonary/pistonary/internal/http/handlers/refueling/create"
	refuellist "github.com/pistonary/pistonary/internal/http/handlers/refueling/list"
	refuelremove "github.com/pistonary/pistonary/internal/http/handlers/refueling/remove"
	refuelupdate "github.com/pistonary/pistonary/internal/http/handlers/refueling/update"
	"github.com/pistonary/pistonary/internal/http/handlers/stats/consumption"
	"github.com/pistonary/pistonary/internal/http/handlers/stats/summary"
	"github.com/pistonary/pistonary/internal/http/middlewarectx"
	"github.com/pistonary/pistonary/internal/lib/jwt"
	"github.com/pistonary/pistonary/internal/services"
	"github.com/pistonary/pistonary/internal/storage/repository"
)

// Services bundles the business services the routes need.
type Services struct {
	Auth        *services.AuthService
	Car         *services.CarService
	Maintenance *services.MaintenanceService
	Refueling   *services.RefuelingService
	Cost        *services.CostService
	Stats       *services.StatsService
	Prefs       *services.PrefsService
}

// RegisterRoutes registers every route of the API server.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, db *repository.Storage, svc Services) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware(),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/cars", carcreate.New(logger, svc.Car).ServeHTTP)
			r.Get("/cars", carlist.New(logger, svc.Car).ServeHTTP)

			r.Route("/cars/{carID}", func(r chi.Router) {
				r.Use(middlewarectx.CarOwnershipMiddleware(svc.Car, logger))

				r.Get("/", carread.New(logger, svc.Car).ServeHTTP)
				r.Put("/", carupdate.New(logger, svc.Car).ServeHTTP)
				r.Delete("/", carremove.New(logger, svc.Car).ServeHTTP)

				r.Post("/maintenance", maintcreate.New(logger, svc.Maintenance).ServeHTTP)
				r.Get("/maintenance", maintlist.New(logger, svc.Maintenance).ServeHTTP)
				r.Put("/maintenance/{id}", maintupdate.New(logger, svc.Maintenance).ServeHTTP)
				r.Delete("/maintenance/{id}", maintremove.New(logger, svc.Maintenance).ServeHTTP)
				r.Get("/status", status.New(logger, svc.Maintenance, svc.Prefs).ServeHTTP)

				r.Get("/intervals", intervalslist.New(logger, svc.Maintenance).ServeHTTP)
				r.Put("/intervals", intervalsreplace.New(logger, svc.Maintenance).ServeHTTP)

				r.Post("/refuelings", refuelcreate.New(logger, svc.Refueling).ServeHTTP)
				r.Get("/refuelings", refuellist.New(logger, svc.Refueling).ServeHTTP)
				r.Put("/refuelings/{id}", refuelupdate.New(logger, svc.Refueling).ServeHTTP)
				r.Delete("/refuelings/{id}", refuelremove.New(logger, svc.Refueling).ServeHTTP)

				r.Post("/costs", costcreate.New(logger, svc.Cost).ServeHTTP)
				r.Get("/costs", costlist.New(logger, svc.Cost).ServeHTTP)
				r.Delete("/costs/{id}", costremove.New(logger, svc.Cost).ServeHTTP)

				r.Get("/stats/consumption", consumption.New(logger, svc.Refueling).ServeHTTP)
				r.Get("/stats/costs", summary.New(logger, svc.Stats).ServeHTTP)

				r.Get("/preferences", prefsread.New(logger, svc.Prefs).ServeHTTP)
				r.Put("/preferences", prefssave.New(logger, svc.Prefs).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
