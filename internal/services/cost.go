package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pistonary/pistonary/internal/models"
)

// CostRepository describes the storage operations for miscellaneous
// costs.
type CostRepository interface {
	// CreateCostEntry inserts a new cost and returns its ID.
	CreateCostEntry(ctx context.Context, entry models.CostEntry) (int64, error)
	// ListCostEntries returns all costs of one car, newest first.
	ListCostEntries(ctx context.Context, carID int64) ([]models.CostEntry, error)
	// RemoveCostEntry deletes a cost and returns the number of deleted rows.
	RemoveCostEntry(ctx context.Context, id, carID int64) (int, error)
}

// CostService implements the miscellaneous cost logbook.
type CostService struct {
	repo CostRepository
	log  *slog.Logger
}

// NewCostService creates a new CostService.
func NewCostService(repo CostRepository, log *slog.Logger) *CostService {
	return &CostService{
		repo: repo,
		log:  log,
	}
}

// Create adds a cost entry to a car's logbook and returns its ID.
func (s *CostService) Create(ctx context.Context, carID int64, req models.DummyCostEntry) (int64, error) {
	date, err := time.Parse("02-01-2006", req.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid date: %w", err)
	}
	entry := models.CostEntry{
		CarID:       carID,
		Date:        date,
		Category:    req.Category,
		AmountCents: req.AmountCents,
		Notes:       req.Notes,
	}
	id, err := s.repo.CreateCostEntry(ctx, entry)
	if err != nil {
		return 0, err
	}
	s.log.Info("created cost entry", slog.Int64("id", id), slog.Int64("car_id", carID))
	return id, nil
}

// List returns all cost entries of a car, newest first.
func (s *CostService) List(ctx context.Context, carID int64) ([]models.CostEntry, error) {
	return s.repo.ListCostEntries(ctx, carID)
}

// Remove deletes a cost entry and returns the number of deleted rows.
func (s *CostService) Remove(ctx context.Context, id, carID int64) (int, error) {
	return s.repo.RemoveCostEntry(ctx, id, carID)
}
