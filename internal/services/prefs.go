package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pistonary/pistonary/internal/schedule"
)

// Preferences holds a user's display settings for one car: which
// maintenance categories are selected in the status view and which
// distance unit to show.
type Preferences struct {
	Categories []string `json:"categories"`
	Unit       string   `json:"unit"`
}

// DummyPreferences receives preferences from a JSON request.
type DummyPreferences struct {
	Categories []string `json:"categories" validate:"omitempty,max=50,dive,max=50"`
	Unit       string   `json:"unit" validate:"omitempty,oneof=km mi"`
}

// PrefsService stores per-user display preferences in Redis. They are
// convenience state, not domain data, so losing them is harmless.
type PrefsService struct {
	cache Cache
	log   *slog.Logger
}

// NewPrefsService creates a new PrefsService.
func NewPrefsService(cache Cache, log *slog.Logger) *PrefsService {
	return &PrefsService{
		cache: cache,
		log:   log,
	}
}

func categoriesKey(username string, carID int64) string {
	return fmt.Sprintf("maintenance-categories:%s:%d", username, carID)
}

func unitKey(username string) string {
	return fmt.Sprintf("maintenance-display-unit:%s", username)
}

// Read returns a user's preferences for one car. Missing keys fall back
// to no selected categories and kilometers.
func (s *PrefsService) Read(ctx context.Context, username string, carID int64) (*Preferences, error) {
	prefs := &Preferences{Unit: string(schedule.UnitKilometers)}

	var categories []string
	if found, err := s.cache.Get(ctx, categoriesKey(username, carID), &categories); err != nil {
		return nil, err
	} else if found {
		prefs.Categories = categories
	}

	var unit string
	if found, err := s.cache.Get(ctx, unitKey(username), &unit); err != nil {
		return nil, err
	} else if found && unit != "" {
		prefs.Unit = unit
	}
	return prefs, nil
}

// Save stores a user's preferences for one car. The categories are kept
// per car, the unit per user. Keys are written without expiry.
func (s *PrefsService) Save(ctx context.Context, username string, carID int64, req DummyPreferences) error {
	if err := s.cache.Set(ctx, categoriesKey(username, carID), req.Categories, 0); err != nil {
		return err
	}
	if req.Unit != "" {
		if err := s.cache.Set(ctx, unitKey(username), req.Unit, 0); err != nil {
			return err
		}
	}
	s.log.Info("saved preferences", slog.String("username", username), slog.Int64("car_id", carID))
	return nil
}

// DisplayUnit returns the user's preferred distance unit, defaulting to
// kilometers.
func (s *PrefsService) DisplayUnit(ctx context.Context, username string) schedule.Unit {
	var unit string
	found, err := s.cache.Get(ctx, unitKey(username), &unit)
	if err != nil {
		s.log.Warn("failed to read display unit", slog.Any("err", err))
		return schedule.UnitKilometers
	}
	if found && unit == string(schedule.UnitMiles) {
		return schedule.UnitMiles
	}
	return schedule.UnitKilometers
}
