// Package sender consumes reminder messages from RabbitMQ and turns
// them into e-mails.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pistonary/pistonary/internal/lib/sl"
	"github.com/pistonary/pistonary/internal/lib/smtp"
	"github.com/pistonary/pistonary/internal/models"
)

// SenderService renders and sends reminder mails.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New creates a SenderService on top of an SMTP transport.
func New(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendOverdueReminder mails the user about maintenance that is already
// overdue. body is the raw queue message.
func (s *SenderService) SendOverdueReminder(body []byte) error {
	msg, err := s.decode(body)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Wartung überfällig: %s", msg.CarName)
	intro := fmt.Sprintf("Hallo %s,\n\nbei deinem Fahrzeug \"%s\" sind folgende Wartungen überfällig:\n\n", msg.Username, msg.CarName)
	return s.sendEmail([]string{msg.Email}, subject, intro+renderItems(msg.Items))
}

// SendSoonReminder mails the user about maintenance that is due soon.
func (s *SenderService) SendSoonReminder(body []byte) error {
	msg, err := s.decode(body)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Wartung bald fällig: %s", msg.CarName)
	intro := fmt.Sprintf("Hallo %s,\n\nbei deinem Fahrzeug \"%s\" stehen folgende Wartungen bald an:\n\n", msg.Username, msg.CarName)
	return s.sendEmail([]string{msg.Email}, subject, intro+renderItems(msg.Items))
}

func (s *SenderService) decode(body []byte) (*models.ReminderMessage, error) {
	var msg models.ReminderMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return nil, fmt.Errorf("error unmarshalling message: %w", err)
	}
	return &msg, nil
}

func renderItems(items []models.ReminderItem) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("  - ")
		sb.WriteString(item.DisplayName)
		if item.Remaining != "" {
			sb.WriteString(": ")
			sb.WriteString(item.Remaining)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nDein Pistonary")
	return sb.String()
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.GetSMTPUser()), sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err := wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	if err := client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
