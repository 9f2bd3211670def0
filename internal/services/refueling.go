package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/pistonary/pistonary/internal/models"
)

// RefuelingRepository describes the refueling storage operations.
type RefuelingRepository interface {
	// CreateRefuelingEntry inserts a new fill-up and returns its ID.
	CreateRefuelingEntry(ctx context.Context, entry models.RefuelingEntry) (int64, error)
	// ListRefuelingEntries returns all fill-ups of one car ordered by mileage.
	ListRefuelingEntries(ctx context.Context, carID int64) ([]models.RefuelingEntry, error)
	// UpdateRefuelingEntry updates a fill-up and returns the number of changed rows.
	UpdateRefuelingEntry(ctx context.Context, entry models.RefuelingEntry, id, carID int64) (int, error)
	// RemoveRefuelingEntry deletes a fill-up and returns the number of deleted rows.
	RemoveRefuelingEntry(ctx context.Context, id, carID int64) (int, error)
}

// ConsumptionPoint is the fuel consumption computed between two full
// fill-ups.
type ConsumptionPoint struct {
	Date               string  `json:"date"`
	Mileage            int     `json:"mileage"`
	DistanceKm         int     `json:"distance_km"`
	Liters             float64 `json:"liters"`
	LitersPer100Km     float64 `json:"liters_per_100km"`
	PricePerLiterCents int     `json:"price_per_liter_cents"`
}

// RefuelingService implements the fuel logbook.
type RefuelingService struct {
	repo  RefuelingRepository
	cache Cache
	log   *slog.Logger
}

// NewRefuelingService creates a new RefuelingService.
func NewRefuelingService(repo RefuelingRepository, cache Cache, log *slog.Logger) *RefuelingService {
	return &RefuelingService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create adds a fill-up to a car's logbook and returns its ID.
func (s *RefuelingService) Create(ctx context.Context, carID int64, req models.DummyRefuelingEntry) (int64, error) {
	entry, err := refuelingFromDummy(carID, req)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.CreateRefuelingEntry(ctx, entry)
	if err != nil {
		return 0, err
	}
	s.log.Info("created refueling entry", slog.Int64("id", id), slog.Int64("car_id", carID))
	invalidateStatusCache(ctx, s.cache, s.log, carID)
	return id, nil
}

// List returns all fill-ups of a car, lowest mileage first.
func (s *RefuelingService) List(ctx context.Context, carID int64) ([]models.RefuelingEntry, error) {
	return s.repo.ListRefuelingEntries(ctx, carID)
}

// Update changes a fill-up and returns the number of changed rows.
func (s *RefuelingService) Update(ctx context.Context, id, carID int64, req models.DummyRefuelingEntry) (int, error) {
	entry, err := refuelingFromDummy(carID, req)
	if err != nil {
		return 0, err
	}
	count, err := s.repo.UpdateRefuelingEntry(ctx, entry, id, carID)
	if err != nil {
		return 0, err
	}
	invalidateStatusCache(ctx, s.cache, s.log, carID)
	return count, nil
}

// Remove deletes a fill-up and returns the number of deleted rows.
func (s *RefuelingService) Remove(ctx context.Context, id, carID int64) (int, error) {
	count, err := s.repo.RemoveRefuelingEntry(ctx, id, carID)
	if err != nil {
		return 0, err
	}
	invalidateStatusCache(ctx, s.cache, s.log, carID)
	return count, nil
}

// Consumption computes liters per 100 km between consecutive full
// fill-ups. Partial fill-ups are accumulated into the next full one;
// the first fill-up only sets the baseline and yields no point.
func (s *RefuelingService) Consumption(ctx context.Context, carID int64) ([]ConsumptionPoint, error) {
	entries, err := s.repo.ListRefuelingEntries(ctx, carID)
	if err != nil {
		return nil, err
	}

	var points []ConsumptionPoint
	baseline := -1
	liters := 0.0
	for _, e := range entries {
		if baseline < 0 {
			if !e.Partial {
				baseline = e.Mileage
			}
			continue
		}
		liters += e.Liters
		if e.Partial {
			continue
		}
		distance := e.Mileage - baseline
		if distance > 0 {
			points = append(points, ConsumptionPoint{
				Date:               e.Date.Format("02-01-2006"),
				Mileage:            e.Mileage,
				DistanceKm:         distance,
				Liters:             liters,
				LitersPer100Km:     math.Round(liters/float64(distance)*100*100) / 100,
				PricePerLiterCents: pricePerLiterCents(e),
			})
		}
		baseline = e.Mileage
		liters = 0
	}
	return points, nil
}

func pricePerLiterCents(e models.RefuelingEntry) int {
	if e.Liters <= 0 {
		return 0
	}
	return int(math.Round(float64(e.PriceCents) / e.Liters))
}

func refuelingFromDummy(carID int64, req models.DummyRefuelingEntry) (models.RefuelingEntry, error) {
	date, err := time.Parse("02-01-2006", req.Date)
	if err != nil {
		return models.RefuelingEntry{}, fmt.Errorf("invalid date: %w", err)
	}
	return models.RefuelingEntry{
		CarID:      carID,
		Date:       date,
		Mileage:    req.Mileage,
		Liters:     req.Liters,
		PriceCents: req.PriceCents,
		Partial:    req.Partial,
	}, nil
}
