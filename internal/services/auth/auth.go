// Package auth содержит логику бизнес-уровня для регистрации, активации
// и аутентификации пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/blog-platform/internal/lib/activation"
	"github.com/magabrotheeeer/blog-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/blog-platform/internal/lib/password"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/storage/repository"
)

// Ошибки доменного уровня аутентификации.
var (
	// ErrInvalidCredentials неизвестный username или неверный пароль.
	// Обе причины сведены в одну ошибку, чтобы не раскрывать, какая именно.
	ErrInvalidCredentials = errors.New("unable to login with provided credentials")
	// ErrInactiveAccount пароль верен, но учётная запись не активирована.
	ErrInactiveAccount = errors.New("user account is disabled")
	// ErrInvalidActivationLink любая причина отказа активации: битый uid,
	// чужой или просроченный токен, уже активированная учётная запись.
	ErrInvalidActivationLink = errors.New("activation link is invalid")
	// ErrUsernameTaken имя пользователя уже занято.
	ErrUsernameTaken = errors.New("username already taken")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)
	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUser возвращает пользователя по ID или ошибку, если не найден.
	GetUser(ctx context.Context, id int64) (*models.User, error)
	// ActivateUser одноразово выставляет флаг активации.
	ActivateUser(ctx context.Context, id int64) error
	// ListSubscriptionIDs возвращает ID пользователей, на которых подписан follower.
	ListSubscriptionIDs(ctx context.Context, followerID int64) ([]int64, error)
}

// ActivationNotifier публикует задачу на отправку письма активации.
type ActivationNotifier interface {
	NotifyRegistered(task models.ActivationEmail) error
}

// Registration результат регистрации: данные для ссылки активации.
type Registration struct {
	UID          string `json:"uid"`
	Token        string `json:"token"`
	ActivateLink string `json:"activate_link"`
}

// Service отвечает за регистрацию, активацию и выдачу токенов сессии.
type Service struct {
	users         UserRepository
	jwtMaker      jwt.Maker
	tokenMaker    *activation.TokenMaker
	notifier      ActivationNotifier
	publicBaseURL string
	log           *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository, jwtMaker jwt.Maker, tokenMaker *activation.TokenMaker,
	notifier ActivationNotifier, publicBaseURL string, log *slog.Logger) *Service {
	return &Service{
		users:         users,
		jwtMaker:      jwtMaker,
		tokenMaker:    tokenMaker,
		notifier:      notifier,
		publicBaseURL: publicBaseURL,
		log:           log,
	}
}

// Register создает неактивного пользователя с хэшированным паролем и ролью user,
// генерирует токен активации и публикует задачу на отправку письма.
//
// Отправка письма выполняется с наилучшими усилиями: при недоступном брокере
// регистрация всё равно успешна, каллер получает ссылку активации в ответе.
func (s *Service) Register(ctx context.Context, username, email, rawPassword string) (*Registration, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
		IsActive:     false,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	user.ID = id

	uid := activation.EncodeUID(id)
	token := s.tokenMaker.GenerateToken(&user)
	result := &Registration{
		UID:          uid,
		Token:        token,
		ActivateLink: fmt.Sprintf("%s/api/v1/account/activate/%s/%s", s.publicBaseURL, uid, token),
	}

	task := models.ActivationEmail{
		MessageID:    uuid.NewString(),
		Email:        email,
		Username:     username,
		ActivateLink: result.ActivateLink,
	}
	if err := s.notifier.NotifyRegistered(task); err != nil {
		s.log.Warn("failed to publish activation email task",
			slog.String("message_id", task.MessageID), sl.Err(err))
	}

	return result, nil
}

// Activate проверяет ссылку активации и одноразово включает учётную запись.
//
// Любая причина отказа сводится к ErrInvalidActivationLink. При успехе
// возвращается профиль пользователя и токен сессии для немедленного входа.
func (s *Service) Activate(ctx context.Context, uid, token string) (*models.UserProfile, string, error) {
	id, err := activation.DecodeUID(uid)
	if err != nil {
		return nil, "", ErrInvalidActivationLink
	}
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, "", ErrInvalidActivationLink
	}
	if !s.tokenMaker.ValidateToken(user, token) {
		return nil, "", ErrInvalidActivationLink
	}

	if err := s.users.ActivateUser(ctx, id); err != nil {
		// Конкурентная активация по той же ссылке: проигравший получает
		// тот же самый общий отказ.
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidActivationLink
		}
		return nil, "", err
	}
	user.IsActive = true

	sessionToken, err := s.jwtMaker.GenerateToken(user.Username, user.Role, user.ID)
	if err != nil {
		return nil, "", err
	}

	subscriptions, err := s.users.ListSubscriptionIDs(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	profile := &models.UserProfile{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		RegisteredAt:  user.RegisteredAt,
		IsActive:      user.IsActive,
		IsAdmin:       user.IsAdmin(),
		Subscriptions: subscriptions,
	}
	return profile, sessionToken, nil
}

// Login проверяет пароль пользователя и генерирует JWT сессии.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrInactiveAccount
	}
	return s.jwtMaker.GenerateToken(user.Username, user.Role, user.ID)
}

// ValidateToken проверяет JWT сессии и возвращает claims, если токен валиден.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
