// Package pistonary wires the API server together: storage, migrations,
// cache, business services and the chi router.
package pistonary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/pistonary/pistonary/internal/cache"
	"github.com/pistonary/pistonary/internal/config"
	"github.com/pistonary/pistonary/internal/lib/jwt"
	"github.com/pistonary/pistonary/internal/migrations"
	"github.com/pistonary/pistonary/internal/services"
	"github.com/pistonary/pistonary/internal/storage/repository"
)

// App is the fully wired API server.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New builds the App: opens storage, runs migrations, connects the
// cache and registers all routes.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := services.NewAuthService(db, jwtMaker)
	carService := services.NewCarService(db, cacheRedis, logger)
	maintenanceService := services.NewMaintenanceService(db, cacheRedis, logger)
	refuelingService := services.NewRefuelingService(db, cacheRedis, logger)
	costService := services.NewCostService(db, logger)
	statsService := services.NewStatsService(db)
	prefsService := services.NewPrefsService(cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db, Services{
		Auth:        authService,
		Car:         carService,
		Maintenance: maintenanceService,
		Refueling:   refuelingService,
		Cost:        costService,
		Stats:       statsService,
		Prefs:       prefsService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
