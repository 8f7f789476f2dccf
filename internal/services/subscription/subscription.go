// Package subscription содержит бизнес-логику графа подписок:
// направленные рёбра "подписчик -> автор" без петель и дублей.
package subscription

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/storage/repository"
)

// Ошибки доменного уровня графа подписок.
var (
	// ErrSelfSubscription попытка подписаться или отписаться от самого себя.
	ErrSelfSubscription = errors.New("self subscription is not allowed")
	// ErrAlreadySubscribed ребро уже существует, повторная подписка отклоняется.
	ErrAlreadySubscribed = errors.New("already subscribed")
	// ErrNotSubscribed ребра нет, отписываться не от чего.
	ErrNotSubscribed = errors.New("not subscribed")
	// ErrUserNotFound целевой пользователь не существует.
	ErrUserNotFound = errors.New("user not found")
)

// Repository определяет методы для работы с рёбрами подписок в хранилище.
type Repository interface {
	// CreateSubscription добавляет ребро follower -> followee.
	CreateSubscription(ctx context.Context, followerID, followeeID int64) error
	// RemoveSubscription удаляет ребро follower -> followee.
	RemoveSubscription(ctx context.Context, followerID, followeeID int64) error
	// ListSubscriptions возвращает страницу подписок follower и их общее количество.
	ListSubscriptions(ctx context.Context, followerID int64, opts models.ListOptions) ([]*models.UserInfo, int, error)
}

// Service реализует операции над графом подписок.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Subscribe добавляет подписку caller -> target.
//
// Повторная подписка не проходит молча: проигравший из двух конкурентных
// вызовов получает ErrAlreadySubscribed от ограничения уникальности в базе.
func (s *Service) Subscribe(ctx context.Context, callerID, targetID int64) error {
	if callerID == targetID {
		return ErrSelfSubscription
	}
	if err := s.repo.CreateSubscription(ctx, callerID, targetID); err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadySubscribed):
			return ErrAlreadySubscribed
		case errors.Is(err, repository.ErrUserNotFound):
			return ErrUserNotFound
		}
		return err
	}
	s.log.Info("subscription created",
		slog.Int64("follower_id", callerID), slog.Int64("followee_id", targetID))
	return nil
}

// Unsubscribe удаляет подписку caller -> target.
func (s *Service) Unsubscribe(ctx context.Context, callerID, targetID int64) error {
	if callerID == targetID {
		return ErrSelfSubscription
	}
	if err := s.repo.RemoveSubscription(ctx, callerID, targetID); err != nil {
		if errors.Is(err, repository.ErrNotSubscribed) {
			return ErrNotSubscribed
		}
		return err
	}
	s.log.Info("subscription removed",
		slog.Int64("follower_id", callerID), slog.Int64("followee_id", targetID))
	return nil
}

// List возвращает страницу пользователей, на которых подписан caller,
// и общее количество его подписок.
func (s *Service) List(ctx context.Context, callerID int64, opts models.ListOptions) ([]*models.UserInfo, int, error) {
	opts.Normalize()
	return s.repo.ListSubscriptions(ctx, callerID, opts)
}
