// Package user содержит бизнес-логику просмотра пользователей
// и административного управления учётными записями.
package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/blog-platform/internal/lib/password"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/storage/repository"
)

// Ошибки доменного уровня пользователей.
var (
	// ErrUserNotFound пользователь не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken имя пользователя уже занято.
	ErrUsernameTaken = errors.New("username already taken")
)

// Repository определяет методы для работы с пользователями в хранилище.
type Repository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int64) (*models.User, error)
	// ListUsers возвращает страницу пользователей и их общее количество.
	ListUsers(ctx context.Context, opts models.ListOptions) ([]*models.UserInfo, int, error)
	// UpdateUser обновляет данные пользователя.
	UpdateUser(ctx context.Context, user models.User) error
	// RemoveUser удаляет пользователя с каскадом публикаций и подписок.
	RemoveUser(ctx context.Context, id int64) error
	// ListSubscriptionIDs возвращает ID пользователей, на которых подписан follower.
	ListSubscriptionIDs(ctx context.Context, followerID int64) ([]int64, error)
}

// Service реализует операции просмотра и административного управления пользователями.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List возвращает страницу пользователей, отсортированных по дате регистрации.
func (s *Service) List(ctx context.Context, opts models.ListOptions) ([]*models.UserInfo, int, error) {
	opts.Normalize()
	return s.repo.ListUsers(ctx, opts)
}

// Profile возвращает полный профиль пользователя вместе со списком его подписок.
func (s *Service) Profile(ctx context.Context, id int64) (*models.UserProfile, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	subscriptions, err := s.repo.ListSubscriptionIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.UserProfile{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		RegisteredAt:  user.RegisteredAt,
		IsActive:      user.IsActive,
		IsAdmin:       user.IsAdmin(),
		Subscriptions: subscriptions,
	}, nil
}

// Create создает пользователя от имени администратора.
// В отличие от регистрации, администратор задаёт роль и флаг активации сразу.
func (s *Service) Create(ctx context.Context, req models.DummyUser) (*models.UserProfile, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}
	role := models.RoleUser
	if req.IsAdmin {
		role = models.RoleAdmin
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     req.IsActive,
	}
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	s.log.Info("user created by admin", slog.Int64("id", id))
	return s.Profile(ctx, id)
}

// Update обновляет учётную запись от имени администратора.
func (s *Service) Update(ctx context.Context, id int64, req models.DummyUser) (*models.UserProfile, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}
	user.Username = req.Username
	user.Email = req.Email
	user.PasswordHash = hashed
	user.IsActive = req.IsActive
	user.Role = models.RoleUser
	if req.IsAdmin {
		user.Role = models.RoleAdmin
	}

	if err := s.repo.UpdateUser(ctx, *user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return s.Profile(ctx, id)
}

// Remove удаляет учётную запись. Публикации пользователя и его рёбра
// в графе подписок удаляются каскадно.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.repo.RemoveUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.log.Info("user removed", slog.Int64("id", id))
	return nil
}
