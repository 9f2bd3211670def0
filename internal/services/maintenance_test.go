package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pistonary/pistonary/internal/models"
	"github.com/pistonary/pistonary/internal/schedule"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateMaintenanceEntry(ctx context.Context, entry models.MaintenanceEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) ListMaintenanceEntries(ctx context.Context, carID int64) ([]models.MaintenanceEntry, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceEntry), args.Error(1)
}
func (m *RepoMock) UpdateMaintenanceEntry(ctx context.Context, entry models.MaintenanceEntry, id, carID int64) (int, error) {
	args := m.Called(ctx, entry, id, carID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveMaintenanceEntry(ctx context.Context, id, carID int64) (int, error) {
	args := m.Called(ctx, id, carID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListRefuelingEntries(ctx context.Context, carID int64) ([]models.RefuelingEntry, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RefuelingEntry), args.Error(1)
}
func (m *RepoMock) ListIntervalOverrides(ctx context.Context, carID int64) ([]models.IntervalOverride, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IntervalOverride), args.Error(1)
}
func (m *RepoMock) ReplaceIntervalOverrides(ctx context.Context, carID int64, overrides []models.IntervalOverride) error {
	return m.Called(ctx, carID, overrides).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func date(s string) time.Time {
	d, err := time.Parse("02-01-2006", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestMaintenanceService_Status(t *testing.T) {
	done := date("01-01-2024")
	doneMileage := 50000
	entries := []models.MaintenanceEntry{
		{ID: 1, CarID: 7, Type: models.TypeOilChange, DoneDate: &done, DoneMileage: &doneMileage},
	}
	refuelings := []models.RefuelingEntry{
		{ID: 1, CarID: 7, Date: date("15-05-2024"), Mileage: 64500, Liters: 40, PriceCents: 7000},
	}

	repo := new(RepoMock)
	repo.On("ListMaintenanceEntries", mock.Anything, int64(7)).Return(entries, nil).Once()
	repo.On("ListRefuelingEntries", mock.Anything, int64(7)).Return(refuelings, nil).Once()
	repo.On("ListIntervalOverrides", mock.Anything, int64(7)).Return([]models.IntervalOverride{}, nil).Once()

	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "car-status:7:km", mock.Anything).Return(false, nil).Once()
	cache.On("Set", mock.Anything, "car-status:7:km", mock.Anything, statusCacheTTL).Return(nil).Once()

	svc := NewMaintenanceService(repo, cache, newNoopLogger())
	svc.now = func() time.Time { return date("01-06-2024") }

	report, err := svc.Status(context.Background(), 7, schedule.UnitKilometers, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(7), report.CarID)
	assert.Equal(t, 64500, report.CurrentMileage)
	assert.Equal(t, schedule.StatusSoon, report.Overall)
	assert.Len(t, report.Items, len(models.AllMaintenanceTypes))

	var oil *StatusItem
	for i := range report.Items {
		if report.Items[i].Type == models.TypeOilChange {
			oil = &report.Items[i]
		}
	}
	require.NotNil(t, oil)
	// Oil change due at 65000 km, only 500 km left.
	assert.Equal(t, schedule.StatusSoon, oil.Status)
	require.NotNil(t, oil.DueMileage)
	assert.Equal(t, 65000, *oil.DueMileage)
	require.NotNil(t, oil.DueDate)
	assert.Equal(t, "01-01-2025", *oil.DueDate)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestMaintenanceService_StatusFilter(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListMaintenanceEntries", mock.Anything, int64(3)).Return([]models.MaintenanceEntry{}, nil).Once()
	repo.On("ListRefuelingEntries", mock.Anything, int64(3)).Return([]models.RefuelingEntry{}, nil).Once()
	repo.On("ListIntervalOverrides", mock.Anything, int64(3)).Return([]models.IntervalOverride{}, nil).Once()

	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "car-status:3:km", mock.Anything).Return(false, nil).Once()
	cache.On("Set", mock.Anything, "car-status:3:km", mock.Anything, statusCacheTTL).Return(nil).Once()

	svc := NewMaintenanceService(repo, cache, newNoopLogger())

	report, err := svc.Status(context.Background(), 3, schedule.UnitKilometers,
		[]models.MaintenanceType{models.TypeBrakePads, models.TypeCoolant})
	require.NoError(t, err)

	assert.Len(t, report.Items, 2)
	assert.Equal(t, schedule.StatusNotRecorded, report.Overall)
}

func TestMaintenanceService_StatusRepoError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListMaintenanceEntries", mock.Anything, int64(9)).Return(nil, errors.New("db down")).Once()

	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "car-status:9:km", mock.Anything).Return(false, nil).Once()

	svc := NewMaintenanceService(repo, cache, newNoopLogger())

	_, err := svc.Status(context.Background(), 9, schedule.UnitKilometers, nil)
	assert.Error(t, err)
}

func TestMaintenanceService_CreateInvalidatesCache(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateMaintenanceEntry", mock.Anything, mock.MatchedBy(func(e models.MaintenanceEntry) bool {
		return e.CarID == 5 && e.Type == models.TypeBrakeFluid && e.DoneDate != nil
	})).Return(int64(11), nil).Once()

	cache := new(CacheMock)
	cache.On("Invalidate", mock.Anything, "car-status:5:km").Return(nil).Once()
	cache.On("Invalidate", mock.Anything, "car-status:5:mi").Return(nil).Once()

	svc := NewMaintenanceService(repo, cache, newNoopLogger())

	id, err := svc.Create(context.Background(), 5, models.DummyMaintenanceEntry{
		Type:     string(models.TypeBrakeFluid),
		DoneDate: "10-03-2024",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestMaintenanceService_CreateUnknownType(t *testing.T) {
	svc := NewMaintenanceService(new(RepoMock), new(CacheMock), newNoopLogger())

	_, err := svc.Create(context.Background(), 5, models.DummyMaintenanceEntry{Type: "warp_core"})
	assert.Error(t, err)
}

func TestMaintenanceService_ReplaceIntervals(t *testing.T) {
	months := 6
	repo := new(RepoMock)
	repo.On("ReplaceIntervalOverrides", mock.Anything, int64(4), mock.MatchedBy(func(ovs []models.IntervalOverride) bool {
		return len(ovs) == 1 && ovs[0].Name == "Motoröl + Ölfilter" && *ovs[0].TimeInterval == 6
	})).Return(nil).Once()

	cache := new(CacheMock)
	cache.On("Invalidate", mock.Anything, "car-status:4:km").Return(nil).Once()
	cache.On("Invalidate", mock.Anything, "car-status:4:mi").Return(nil).Once()

	svc := NewMaintenanceService(repo, cache, newNoopLogger())

	err := svc.ReplaceIntervals(context.Background(), 4, []models.DummyIntervalOverride{
		{Name: "Motoröl + Ölfilter", TimeInterval: &months, IsActive: true},
	})
	require.NoError(t, err)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestMaintenanceService_ListResolvedIntervals(t *testing.T) {
	months := 6
	km := 10000
	repo := new(RepoMock)
	repo.On("ListIntervalOverrides", mock.Anything, int64(2)).Return([]models.IntervalOverride{
		{Name: "Motoröl + Ölfilter", TimeInterval: &months, MileageInterval: &km, IsActive: true},
	}, nil).Once()

	svc := NewMaintenanceService(repo, new(CacheMock), newNoopLogger())

	rules, err := svc.ListResolvedIntervals(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, schedule.IntervalRule{Months: 6, Kilometers: 10000}, rules[models.TypeOilChange])
	// Untouched types keep their defaults.
	assert.Equal(t, schedule.DefaultInterval(models.TypeBrakeFluid), rules[models.TypeBrakeFluid])
}
