// Package sender реализует отправку писем активации по задачам из RabbitMQ.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/lib/smtp"
	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// Service потребляет задачи на письма и доставляет их через SMTP транспорт.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendActivationEmail обрабатывает одну задачу из очереди активации.
func (s *Service) SendActivationEmail(body []byte) error {
	var message models.ActivationEmail
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Подтверждение регистрации"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\n"+
		"Для активации учётной записи перейдите по ссылке: %s\n\n"+
		"Если вы не регистрировались на платформе, просто проигнорируйте это письмо.",
		message.Username, message.ActivateLink)

	if err := s.sendEmail(to, subject, bodyText); err != nil {
		return err
	}
	s.log.Info("activation email sent",
		slog.String("message_id", message.MessageID), slog.String("to", message.Email))
	return nil
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
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
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
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
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}
	return nil
}
