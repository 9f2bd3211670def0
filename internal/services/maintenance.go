package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pistonary/pistonary/internal/models"
	"github.com/pistonary/pistonary/internal/schedule"
)

// MaintenanceRepository describes the storage operations the
// maintenance service needs.
type MaintenanceRepository interface {
	// CreateMaintenanceEntry inserts a new entry and returns its ID.
	CreateMaintenanceEntry(ctx context.Context, entry models.MaintenanceEntry) (int64, error)
	// ListMaintenanceEntries returns all entries of one car.
	ListMaintenanceEntries(ctx context.Context, carID int64) ([]models.MaintenanceEntry, error)
	// UpdateMaintenanceEntry updates an entry and returns the number of changed rows.
	UpdateMaintenanceEntry(ctx context.Context, entry models.MaintenanceEntry, id, carID int64) (int, error)
	// RemoveMaintenanceEntry deletes an entry and returns the number of deleted rows.
	RemoveMaintenanceEntry(ctx context.Context, id, carID int64) (int, error)
	// ListRefuelingEntries returns all fill-ups of one car.
	ListRefuelingEntries(ctx context.Context, carID int64) ([]models.RefuelingEntry, error)
	// ListIntervalOverrides returns all override rows of one car.
	ListIntervalOverrides(ctx context.Context, carID int64) ([]models.IntervalOverride, error)
	// ReplaceIntervalOverrides swaps the full override set of one car.
	ReplaceIntervalOverrides(ctx context.Context, carID int64, overrides []models.IntervalOverride) error
}

// StatusItem is the derived maintenance state of one type on one car.
type StatusItem struct {
	Type        models.MaintenanceType `json:"type"`
	DisplayName string                 `json:"display_name"`
	Rule        schedule.IntervalRule  `json:"rule"`
	Status      schedule.Status        `json:"status"`
	Remaining   string                 `json:"remaining,omitempty"`
	DueDate     *string                `json:"due_date,omitempty"`
	DueMileage  *int                   `json:"due_mileage,omitempty"`
	LastDate    *string                `json:"last_date,omitempty"`
	LastMileage *int                   `json:"last_mileage,omitempty"`
}

// StatusReport is the full derived maintenance state of a car.
type StatusReport struct {
	CarID          int64           `json:"car_id"`
	CurrentMileage int             `json:"current_mileage"`
	Unit           schedule.Unit   `json:"unit"`
	Overall        schedule.Status `json:"overall"`
	Items          []StatusItem    `json:"items"`
}

const statusCacheTTL = 10 * time.Minute

func statusCacheKey(carID int64, unit schedule.Unit) string {
	return fmt.Sprintf("car-status:%d:%s", carID, unit)
}

func invalidateStatusCache(ctx context.Context, cache Cache, log *slog.Logger, carID int64) {
	for _, unit := range []schedule.Unit{schedule.UnitKilometers, schedule.UnitMiles} {
		key := statusCacheKey(carID, unit)
		if err := cache.Invalidate(ctx, key); err != nil {
			log.Warn("failed to invalidate status cache", slog.String("key", key), slog.Any("err", err))
		}
	}
}

// MaintenanceService implements the maintenance logbook and the status
// derivation on top of it.
type MaintenanceService struct {
	repo  MaintenanceRepository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(repo MaintenanceRepository, cache Cache, log *slog.Logger) *MaintenanceService {
	return &MaintenanceService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// Create adds a maintenance entry to a car's logbook and returns its ID.
func (s *MaintenanceService) Create(ctx context.Context, carID int64, req models.DummyMaintenanceEntry) (int64, error) {
	entry, err := maintenanceFromDummy(carID, req)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.CreateMaintenanceEntry(ctx, entry)
	if err != nil {
		return 0, err
	}
	s.log.Info("created maintenance entry", slog.Int64("id", id), slog.Int64("car_id", carID))
	invalidateStatusCache(ctx, s.cache, s.log, carID)
	return id, nil
}

// List returns all maintenance entries of a car.
func (s *MaintenanceService) List(ctx context.Context, carID int64) ([]models.MaintenanceEntry, error) {
	return s.repo.ListMaintenanceEntries(ctx, carID)
}

// Update changes a maintenance entry and returns the number of changed
// rows.
func (s *MaintenanceService) Update(ctx context.Context, id, carID int64, req models.DummyMaintenanceEntry) (int, error) {
	entry, err := maintenanceFromDummy(carID, req)
	if err != nil {
		return 0, err
	}
	count, err := s.repo.UpdateMaintenanceEntry(ctx, entry, id, carID)
	if err != nil {
		return 0, err
	}
	invalidateStatusCache(ctx, s.cache, s.log, carID)
	return count, nil
}

// Remove deletes a maintenance entry and returns the number of deleted
// rows.
func (s *MaintenanceService) Remove(ctx context.Context, id, carID int64) (int, error) {
	count, err := s.repo.RemoveMaintenanceEntry(ctx, id, carID)
	if err != nil {
		return 0, err
	}
	invalidateStatusCache(ctx, s.cache, s.log, carID)
	return count, nil
}

// Status derives the maintenance state of every requested type on a
// car. With an empty filter all known types are reported. The full
// report (no filter) is cached per car and unit; filtered views are cut
// out of the full report.
func (s *MaintenanceService) Status(ctx context.Context, carID int64, unit schedule.Unit, types []models.MaintenanceType) (*StatusReport, error) {
	var report *StatusReport
	cacheKey := statusCacheKey(carID, unit)
	found, err := s.cache.Get(ctx, cacheKey, &report)
	if err != nil {
		s.log.Warn("failed to read status cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if !found || report == nil {
		report, err = s.computeStatus(ctx, carID, unit)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, cacheKey, report, statusCacheTTL); err != nil {
			s.log.Warn("failed to cache status", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}

	if len(types) == 0 {
		return report, nil
	}

	wanted := make(map[models.MaintenanceType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}
	filtered := &StatusReport{
		CarID:          report.CarID,
		CurrentMileage: report.CurrentMileage,
		Unit:           report.Unit,
	}
	statuses := make([]schedule.Status, 0, len(types))
	for _, item := range report.Items {
		if wanted[item.Type] {
			filtered.Items = append(filtered.Items, item)
			statuses = append(statuses, item.Status)
		}
	}
	filtered.Overall = schedule.WorstStatus(statuses...)
	return filtered, nil
}

// ListResolvedIntervals returns the effective interval rule of every
// maintenance type on a car, overrides applied.
func (s *MaintenanceService) ListResolvedIntervals(ctx context.Context, carID int64) (map[models.MaintenanceType]schedule.IntervalRule, error) {
	overrides, err := s.repo.ListIntervalOverrides(ctx, carID)
	if err != nil {
		return nil, err
	}
	result := make(map[models.MaintenanceType]schedule.IntervalRule, len(models.AllMaintenanceTypes))
	for _, t := range models.AllMaintenanceTypes {
		result[t] = schedule.ResolveInterval(t, overrides)
	}
	return result, nil
}

// ReplaceIntervals swaps a car's override set.
func (s *MaintenanceService) ReplaceIntervals(ctx context.Context, carID int64, reqs []models.DummyIntervalOverride) error {
	overrides := make([]models.IntervalOverride, 0, len(reqs))
	for _, r := range reqs {
		overrides = append(overrides, models.IntervalOverride{
			CarID:           carID,
			Name:            r.Name,
			TimeInterval:    r.TimeInterval,
			MileageInterval: r.MileageInterval,
			IsActive:        r.IsActive,
		})
	}
	if err := s.repo.ReplaceIntervalOverrides(ctx, carID, overrides); err != nil {
		return err
	}
	invalidateStatusCache(ctx, s.cache, s.log, carID)
	return nil
}

func (s *MaintenanceService) computeStatus(ctx context.Context, carID int64, unit schedule.Unit) (*StatusReport, error) {
	entries, err := s.repo.ListMaintenanceEntries(ctx, carID)
	if err != nil {
		return nil, err
	}
	refuelings, err := s.repo.ListRefuelingEntries(ctx, carID)
	if err != nil {
		return nil, err
	}
	overrides, err := s.repo.ListIntervalOverrides(ctx, carID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	currentMileage := schedule.CurrentMileage(entries, refuelings)
	latest := schedule.LatestByType(entries)

	report := &StatusReport{
		CarID:          carID,
		CurrentMileage: schedule.ConvertDistance(currentMileage, unit),
		Unit:           unit,
	}
	statuses := make([]schedule.Status, 0, len(models.AllMaintenanceTypes))
	for _, t := range models.AllMaintenanceTypes {
		entry := latest[t]
		resolved := schedule.ResolveInterval(t, overrides)

		item := StatusItem{
			Type:        t,
			DisplayName: t.DisplayName(),
			Rule:        resolved,
		}
		if entry != nil {
			rule := schedule.EffectiveRule(*entry, resolved)
			item.Rule = rule
			item.Status = schedule.Classify(entry, rule, now, currentMileage)
			item.Remaining = schedule.FormatRemaining(*entry, rule, now, currentMileage, unit)

			proj := schedule.ProjectNextDue(*entry, rule)
			if proj.HasDueDate {
				d := proj.DueDate.Format("02-01-2006")
				item.DueDate = &d
			}
			if proj.HasDueMileage {
				m := schedule.ConvertDistance(proj.DueMileage, unit)
				item.DueMileage = &m
			}
			if entry.DoneDate != nil {
				d := entry.DoneDate.Format("02-01-2006")
				item.LastDate = &d
			}
			if entry.DoneMileage != nil {
				m := schedule.ConvertDistance(*entry.DoneMileage, unit)
				item.LastMileage = &m
			}
		} else {
			item.Status = schedule.Classify(nil, resolved, now, currentMileage)
		}

		statuses = append(statuses, item.Status)
		report.Items = append(report.Items, item)
	}
	report.Overall = schedule.WorstStatus(statuses...)
	return report, nil
}

func maintenanceFromDummy(carID int64, req models.DummyMaintenanceEntry) (models.MaintenanceEntry, error) {
	t := models.MaintenanceType(req.Type)
	if !t.Valid() {
		return models.MaintenanceEntry{}, fmt.Errorf("unknown maintenance type: %s", req.Type)
	}
	entry := models.MaintenanceEntry{
		CarID:          carID,
		Type:           t,
		DoneMileage:    req.DoneMileage,
		IntervalMonths: req.IntervalMonths,
		IntervalKm:     req.IntervalKm,
		CostCents:      req.CostCents,
		Notes:          req.Notes,
	}
	if req.DoneDate != "" {
		date, err := time.Parse("02-01-2006", req.DoneDate)
		if err != nil {
			return models.MaintenanceEntry{}, fmt.Errorf("invalid done date: %w", err)
		}
		entry.DoneDate = &date
	}
	return entry, nil
}
