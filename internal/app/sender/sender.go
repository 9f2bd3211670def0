// Package sender wires the reminder sender worker: RabbitMQ consumers
// and the SMTP transport.
package sender

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/pistonary/pistonary/internal/config"
	"github.com/pistonary/pistonary/internal/lib/rabbitmq"
	"github.com/pistonary/pistonary/internal/lib/smtp"
	senderservice "github.com/pistonary/pistonary/internal/services/sender"
)

// App is the wired sender worker.
type App struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	service *senderservice.SenderService
	logger  *slog.Logger
}

// New builds the sender worker.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQConnection, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.ReminderQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	service := senderservice.New(transport, logger)

	return &App{
		conn:    conn,
		ch:      ch,
		service: service,
		logger:  logger,
	}, nil
}

// Run consumes the reminder queues until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := rabbitmq.ConsumeMessages(ctx, a.ch, "reminder.overdue", a.service.SendOverdueReminder); err != nil {
		a.logger.Error("failed to start reminder.overdue consumer", slog.Any("err", err))
		return err
	}
	if err := rabbitmq.ConsumeMessages(ctx, a.ch, "reminder.soon", a.service.SendSoonReminder); err != nil {
		a.logger.Error("failed to start reminder.soon consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
