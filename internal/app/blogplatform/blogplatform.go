// Package blogplatform собирает и запускает основной HTTP-сервис платформы:
// хранилище, миграции, брокер сообщений, доменные сервисы и маршруты.
package blogplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/blog-platform/internal/config"
	"github.com/magabrotheeeer/blog-platform/internal/lib/activation"
	"github.com/magabrotheeeer/blog-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/blog-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/blog-platform/internal/migrations"
	authservice "github.com/magabrotheeeer/blog-platform/internal/services/auth"
	postservice "github.com/magabrotheeeer/blog-platform/internal/services/post"
	subservice "github.com/magabrotheeeer/blog-platform/internal/services/subscription"
	userservice "github.com/magabrotheeeer/blog-platform/internal/services/user"
	"github.com/magabrotheeeer/blog-platform/internal/storage/repository"
)

// App основной HTTP-сервис платформы.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New собирает приложение: подключает базу, прогоняет миграции,
// открывает канал брокера и регистрирует маршруты.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	tokenMaker := activation.NewTokenMaker(cfg.ActivationSecretKey, cfg.ActivationTTL)
	notifier := rabbitmq.NewActivationPublisher(ch)

	authService := authservice.NewService(db, jwtMaker, tokenMaker, notifier, cfg.PublicBaseURL, logger)
	subscriptionService := subservice.NewService(db, logger)
	postService := postservice.NewService(db, logger)
	userService := userservice.NewService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, subscriptionService, postService, userService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.conn.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		a.db.DB.Close()
		return err
	}
}
