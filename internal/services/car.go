package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/pistonary/pistonary/internal/models"
)

// CarRepository describes the car storage operations.
type CarRepository interface {
	// CreateCar inserts a new car and returns its ID.
	CreateCar(ctx context.Context, car models.Car) (int64, error)
	// ReadCar returns one car by ID.
	ReadCar(ctx context.Context, id int64) (*models.Car, error)
	// ListCars returns all cars of one user.
	ListCars(ctx context.Context, username string) ([]*models.Car, error)
	// UpdateCar updates a car and returns the number of changed rows.
	UpdateCar(ctx context.Context, car models.Car, id int64) (int, error)
	// RemoveCar deletes a car and returns the number of deleted rows.
	RemoveCar(ctx context.Context, id int64) (int, error)
	// CarOwner returns the username owning a car.
	CarOwner(ctx context.Context, carID int64) (string, error)
}

// Cache describes the caching operations the services use.
type Cache interface {
	// Get fetches a cached value into result, reporting whether the key existed.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set stores a value under key with a TTL.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate removes a key.
	Invalidate(ctx context.Context, key string) error
}

// CarService implements the car logbook operations.
type CarService struct {
	repo  CarRepository
	cache Cache
	log   *slog.Logger
}

// NewCarService creates a new CarService.
func NewCarService(repo CarRepository, cache Cache, log *slog.Logger) *CarService {
	return &CarService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create adds a new car to the user's logbook and returns its ID.
func (s *CarService) Create(ctx context.Context, username string, req models.DummyCar) (int64, error) {
	car := models.Car{
		Username:     username,
		Name:         req.Name,
		Make:         req.Make,
		Model:        req.Model,
		LicensePlate: req.LicensePlate,
		FirstRegYear: req.FirstRegYear,
		Notes:        req.Notes,
	}
	id, err := s.repo.CreateCar(ctx, car)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new car", slog.Int64("id", id))
	return id, nil
}

// Read returns one car.
func (s *CarService) Read(ctx context.Context, carID int64) (*models.Car, error) {
	return s.repo.ReadCar(ctx, carID)
}

// List returns all cars of the user.
func (s *CarService) List(ctx context.Context, username string) ([]*models.Car, error) {
	return s.repo.ListCars(ctx, username)
}

// Update changes a car's data and returns the number of changed rows.
func (s *CarService) Update(ctx context.Context, carID int64, req models.DummyCar) (int, error) {
	car := models.Car{
		Name:         req.Name,
		Make:         req.Make,
		Model:        req.Model,
		LicensePlate: req.LicensePlate,
		FirstRegYear: req.FirstRegYear,
		Notes:        req.Notes,
	}
	return s.repo.UpdateCar(ctx, car, carID)
}

// Remove deletes a car together with all its logbook entries and drops
// the cached status.
func (s *CarService) Remove(ctx context.Context, carID int64) (int, error) {
	count, err := s.repo.RemoveCar(ctx, carID)
	if err != nil {
		return 0, err
	}
	invalidateStatusCache(ctx, s.cache, s.log, carID)
	return count, nil
}

// CarOwner returns the username owning a car. Used by the ownership
// middleware.
func (s *CarService) CarOwner(ctx context.Context, carID int64) (string, error) {
	return s.repo.CarOwner(ctx, carID)
}
