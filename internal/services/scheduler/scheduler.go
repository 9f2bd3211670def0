// Package scheduler walks all cars on a cron schedule, classifies their
// maintenance state and publishes reminder messages for everything that
// is overdue or due soon.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/streadway/amqp"

	"github.com/pistonary/pistonary/internal/lib/rabbitmq"
	"github.com/pistonary/pistonary/internal/lib/sl"
	"github.com/pistonary/pistonary/internal/models"
	"github.com/pistonary/pistonary/internal/schedule"
	"github.com/pistonary/pistonary/internal/storage/repository"
)

// Repository describes the storage operations the scheduler needs.
type Repository interface {
	ListAllCarsWithOwners(ctx context.Context) ([]repository.CarWithOwner, error)
	ListMaintenanceEntries(ctx context.Context, carID int64) ([]models.MaintenanceEntry, error)
	ListRefuelingEntries(ctx context.Context, carID int64) ([]models.RefuelingEntry, error)
	ListIntervalOverrides(ctx context.Context, carID int64) ([]models.IntervalOverride, error)
}

// SchedulerService runs the periodic reminder sweep.
type SchedulerService struct {
	repo     Repository
	channel  *amqp.Channel
	cronSpec string
	log      *slog.Logger
	now      func() time.Time
}

// New creates a SchedulerService publishing to the given channel on the
// given cron schedule.
func New(repo Repository, channel *amqp.Channel, cronSpec string, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:     repo,
		channel:  channel,
		cronSpec: cronSpec,
		log:      log,
		now:      time.Now,
	}
}

// Run sweeps once immediately, then on the cron schedule until ctx is
// cancelled.
func (s *SchedulerService) Run(ctx context.Context) error {
	s.Sweep(ctx)

	c := cron.New()
	if _, err := c.AddFunc(s.cronSpec, func() { s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("add reminder sweep: %w", err)
	}
	c.Start()
	s.log.Info("reminder scheduler started", slog.String("cron", s.cronSpec))

	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	return nil
}

// Sweep classifies every car in the system and publishes one message
// per car and severity for everything overdue or due soon.
func (s *SchedulerService) Sweep(ctx context.Context) {
	s.log.Info("starting reminder sweep")
	cars, err := s.repo.ListAllCarsWithOwners(ctx)
	if err != nil {
		s.log.Error("failed to list cars", sl.Err(err))
		return
	}

	published := 0
	for _, car := range cars {
		overdue, soon, err := s.classifyCar(ctx, car.Car.ID)
		if err != nil {
			s.log.Error("failed to classify car", slog.Int64("car_id", car.Car.ID), sl.Err(err))
			continue
		}
		published += s.publish(car, rabbitmq.RoutingKeyOverdue, overdue)
		published += s.publish(car, rabbitmq.RoutingKeySoon, soon)
	}
	s.log.Info("reminder sweep finished", slog.Int("cars", len(cars)), slog.Int("published", published))
}

func (s *SchedulerService) classifyCar(ctx context.Context, carID int64) (overdue, soon []models.ReminderItem, err error) {
	entries, err := s.repo.ListMaintenanceEntries(ctx, carID)
	if err != nil {
		return nil, nil, err
	}
	refuelings, err := s.repo.ListRefuelingEntries(ctx, carID)
	if err != nil {
		return nil, nil, err
	}
	overrides, err := s.repo.ListIntervalOverrides(ctx, carID)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	currentMileage := schedule.CurrentMileage(entries, refuelings)
	latest := schedule.LatestByType(entries)

	for _, t := range models.AllMaintenanceTypes {
		entry := latest[t]
		if entry == nil {
			continue
		}
		rule := schedule.EffectiveRule(*entry, schedule.ResolveInterval(t, overrides))
		item := models.ReminderItem{
			DisplayName: t.DisplayName(),
			Remaining:   schedule.FormatRemaining(*entry, rule, now, currentMileage, schedule.UnitKilometers),
		}
		switch schedule.Classify(entry, rule, now, currentMileage) {
		case schedule.StatusOverdue:
			overdue = append(overdue, item)
		case schedule.StatusSoon:
			soon = append(soon, item)
		}
	}
	return overdue, soon, nil
}

func (s *SchedulerService) publish(car repository.CarWithOwner, routingKey string, items []models.ReminderItem) int {
	if len(items) == 0 {
		return 0
	}
	msg := models.ReminderMessage{
		Email:    car.Email,
		Username: car.Car.Username,
		CarName:  car.Car.Name,
		Items:    items,
	}
	if err := rabbitmq.PublishMessage(s.channel, rabbitmq.ExchangeReminders, routingKey, msg); err != nil {
		s.log.Error("failed to publish reminder", slog.String("routing_key", routingKey), sl.Err(err))
		return 0
	}
	return 1
}
