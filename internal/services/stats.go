package services

import (
	"context"
	"time"
)

// StatsRepository describes the aggregation queries of the stats
// service.
type StatsRepository interface {
	// SumFuelCosts sums refueling costs of one car in a date range.
	SumFuelCosts(ctx context.Context, carID int64, from, to time.Time) (int64, error)
	// SumMaintenanceCosts sums maintenance costs of one car in a date range.
	SumMaintenanceCosts(ctx context.Context, carID int64, from, to time.Time) (int64, error)
	// SumCostEntries sums miscellaneous costs of one car in a date range.
	SumCostEntries(ctx context.Context, carID int64, from, to time.Time) (int64, error)
}

// CostSummary breaks down what a car cost in a date range, in euro
// cents per bucket.
type CostSummary struct {
	CarID            int64  `json:"car_id"`
	From             string `json:"from"`
	To               string `json:"to"`
	FuelCents        int64  `json:"fuel_cents"`
	MaintenanceCents int64  `json:"maintenance_cents"`
	OtherCents       int64  `json:"other_cents"`
	TotalCents       int64  `json:"total_cents"`
}

// StatsService aggregates logbook data into summaries.
type StatsService struct {
	repo StatsRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// CostSummary sums fuel, maintenance and miscellaneous costs of a car
// between from and to inclusive.
func (s *StatsService) CostSummary(ctx context.Context, carID int64, from, to time.Time) (*CostSummary, error) {
	fuel, err := s.repo.SumFuelCosts(ctx, carID, from, to)
	if err != nil {
		return nil, err
	}
	maintenance, err := s.repo.SumMaintenanceCosts(ctx, carID, from, to)
	if err != nil {
		return nil, err
	}
	other, err := s.repo.SumCostEntries(ctx, carID, from, to)
	if err != nil {
		return nil, err
	}
	return &CostSummary{
		CarID:            carID,
		From:             from.Format("02-01-2006"),
		To:               to.Format("02-01-2006"),
		FuelCents:        fuel,
		MaintenanceCents: maintenance,
		OtherCents:       other,
		TotalCents:       fuel + maintenance + other,
	}, nil
}
