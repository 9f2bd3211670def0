package scheduler

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
	"github.com/pistonary/pistonary/internal/storage/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListAllCarsWithOwners(ctx context.Context) ([]repository.CarWithOwner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CarWithOwner), args.Error(1)
}

func (m *MockRepository) ListMaintenanceEntries(ctx context.Context, carID int64) ([]models.MaintenanceEntry, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceEntry), args.Error(1)
}

func (m *MockRepository) ListRefuelingEntries(ctx context.Context, carID int64) ([]models.RefuelingEntry, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RefuelingEntry), args.Error(1)
}

func (m *MockRepository) ListIntervalOverrides(ctx context.Context, carID int64) ([]models.IntervalOverride, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IntervalOverride), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func date(s string) time.Time {
	t, err := time.Parse("02-01-2006", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSchedulerService_ClassifyCar(t *testing.T) {
	// Oil change done 18 months and 16000 km ago is overdue, the brake
	// fluid from two years back comes up within the soon window.
	oilDate := date("01-01-2023")
	oilMileage := 50000
	fluidDate := date("15-07-2022")

	repo := new(MockRepository)
	repo.On("ListMaintenanceEntries", mock.Anything, int64(1)).Return([]models.MaintenanceEntry{
		{ID: 1, CarID: 1, Type: models.TypeOilChange, DoneDate: &oilDate, DoneMileage: &oilMileage},
		{ID: 2, CarID: 1, Type: models.TypeBrakeFluid, DoneDate: &fluidDate},
	}, nil).Once()
	repo.On("ListRefuelingEntries", mock.Anything, int64(1)).Return([]models.RefuelingEntry{
		{ID: 3, CarID: 1, Date: date("20-06-2024"), Mileage: 66000, Liters: 40, PriceCents: 7000},
	}, nil).Once()
	repo.On("ListIntervalOverrides", mock.Anything, int64(1)).Return([]models.IntervalOverride{}, nil).Once()

	service := New(repo, nil, "0 7 * * *", newNoopLogger())
	service.now = func() time.Time { return date("01-07-2024") }

	overdue, soon, err := service.classifyCar(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, overdue, 1)
	assert.Equal(t, "Motoröl + Ölfilter", overdue[0].DisplayName)
	assert.NotEmpty(t, overdue[0].Remaining)

	require.Len(t, soon, 1)
	assert.Equal(t, "Bremsflüssigkeit", soon[0].DisplayName)

	repo.AssertExpectations(t)
}

func TestSchedulerService_ClassifyCarNothingRecorded(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListMaintenanceEntries", mock.Anything, int64(2)).Return([]models.MaintenanceEntry{}, nil).Once()
	repo.On("ListRefuelingEntries", mock.Anything, int64(2)).Return([]models.RefuelingEntry{}, nil).Once()
	repo.On("ListIntervalOverrides", mock.Anything, int64(2)).Return([]models.IntervalOverride{}, nil).Once()

	service := New(repo, nil, "0 7 * * *", newNoopLogger())

	overdue, soon, err := service.classifyCar(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, overdue)
	assert.Empty(t, soon)
}

func TestSchedulerService_SweepRepositoryError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListAllCarsWithOwners", mock.Anything).Return(nil, errors.New("db error")).Once()

	service := New(repo, nil, "0 7 * * *", newNoopLogger())

	// Must not panic and must not touch the other repository methods.
	service.Sweep(context.Background())

	repo.AssertExpectations(t)
}

func TestSchedulerService_RunStopsOnContextCancel(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListAllCarsWithOwners", mock.Anything).Return([]repository.CarWithOwner{}, nil)

	service := New(repo, nil, "0 7 * * *", newNoopLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- service.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
