// Package sender собирает и запускает воркер отправки писем активации:
// подключается к брокеру и потребляет задачи из очереди активации.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/blog-platform/internal/config"
	"github.com/magabrotheeeer/blog-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/blog-platform/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/blog-platform/internal/services/sender"
)

// App воркер отправки писем активации.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New собирает воркер: подключает брокер и SMTP транспорт.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewService(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребление очереди активации до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.ActivationQueue, a.senderService.SendActivationEmail)
	if err != nil {
		a.logger.Error("failed to start activation queue consumer", slog.Any("err", err))
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
