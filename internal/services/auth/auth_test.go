package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/blog-platform/internal/lib/activation"
	customjwt "github.com/magabrotheeeer/blog-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/blog-platform/internal/lib/password"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/services/auth"
	"github.com/magabrotheeeer/blog-platform/internal/storage/repository"

	"io"
	"log/slog"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ActivateUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepoMock) ListSubscriptionIDs(ctx context.Context, followerID int64) ([]int64, error) {
	args := m.Called(ctx, followerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(username, role string, userID int64) (string, error) {
	args := m.Called(username, role, userID)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

// Мок для ActivationNotifier
type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) NotifyRegistered(task models.ActivationEmail) error {
	return m.Called(task).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(repo *UserRepoMock, jwtMock *JwtMakerMock, notifier *NotifierMock) *auth.Service {
	tokenMaker := activation.NewTokenMaker("test-activation-secret", 72*time.Hour)
	return auth.NewService(repo, jwtMock, tokenMaker, notifier, "http://localhost:8080", newNoopLogger())
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, n *NotifierMock)
		wantErr    error
		wantAnyErr bool
	}{
		{
			name:     "successful registration",
			username: "testuser",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(r *UserRepoMock, n *NotifierMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Username == "testuser" &&
						user.Email == "test@example.com" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "password123" &&
						user.Role == models.RoleUser &&
						!user.IsActive
				})).Return(int64(7), nil).Once()
				n.On("NotifyRegistered", mock.MatchedBy(func(task models.ActivationEmail) bool {
					return task.Email == "test@example.com" && task.MessageID != ""
				})).Return(nil).Once()
			},
		},
		{
			name:     "имя пользователя уже занято",
			username: "testuser",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(r *UserRepoMock, _ *NotifierMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return(int64(0), repository.ErrUsernameTaken).Once()
			},
			wantErr: auth.ErrUsernameTaken,
		},
		{
			name:     "недоступный брокер не ломает регистрацию",
			username: "testuser",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(r *UserRepoMock, n *NotifierMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).Return(int64(7), nil).Once()
				n.On("NotifyRegistered", mock.Anything).Return(errors.New("broker down")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			notifier := new(NotifierMock)
			svc := newService(repo, jwtMock, notifier)

			tt.setupMocks(repo, notifier)

			got, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, got.UID)
				assert.NotEmpty(t, got.Token)
				assert.Contains(t, got.ActivateLink, "/api/v1/account/activate/"+got.UID+"/"+got.Token)
			}

			repo.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestAuthService_Activate(t *testing.T) {
	tokenMaker := activation.NewTokenMaker("test-activation-secret", 72*time.Hour)
	user := &models.User{
		ID:           7,
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "$2a$10$somehash",
		Role:         models.RoleUser,
		IsActive:     false,
	}
	uid := activation.EncodeUID(user.ID)
	token := tokenMaker.GenerateToken(user)

	t.Run("успешная активация по валидной ссылке", func(t *testing.T) {
		repo := new(UserRepoMock)
		jwtMock := new(JwtMakerMock)
		frozen := *user
		repo.On("GetUser", mock.Anything, int64(7)).Return(&frozen, nil).Once()
		repo.On("ActivateUser", mock.Anything, int64(7)).Return(nil).Once()
		repo.On("ListSubscriptionIDs", mock.Anything, int64(7)).Return([]int64{}, nil).Once()
		jwtMock.On("GenerateToken", "testuser", models.RoleUser, int64(7)).
			Return("session-jwt", nil).Once()
		svc := newService(repo, jwtMock, new(NotifierMock))

		profile, sessionToken, err := svc.Activate(context.Background(), uid, token)
		assert.NoError(t, err)
		assert.Equal(t, "session-jwt", sessionToken)
		assert.True(t, profile.IsActive)
		assert.Equal(t, int64(7), profile.ID)

		repo.AssertExpectations(t)
		jwtMock.AssertExpectations(t)
	})

	t.Run("битый uid", func(t *testing.T) {
		svc := newService(new(UserRepoMock), new(JwtMakerMock), new(NotifierMock))
		_, _, err := svc.Activate(context.Background(), "%%%", token)
		assert.ErrorIs(t, err, auth.ErrInvalidActivationLink)
	})

	t.Run("токен другого пользователя", func(t *testing.T) {
		repo := new(UserRepoMock)
		other := &models.User{ID: 8, Username: "other", PasswordHash: "$2a$10$otherhash"}
		repo.On("GetUser", mock.Anything, int64(8)).Return(other, nil).Once()
		svc := newService(repo, new(JwtMakerMock), new(NotifierMock))

		_, _, err := svc.Activate(context.Background(), activation.EncodeUID(8), token)
		assert.ErrorIs(t, err, auth.ErrInvalidActivationLink)
		repo.AssertExpectations(t)
	})

	t.Run("повторная активация той же ссылкой", func(t *testing.T) {
		repo := new(UserRepoMock)
		// После первой активации токен, связанный с is_active=false, уже не совпадает.
		activated := *user
		activated.IsActive = true
		repo.On("GetUser", mock.Anything, int64(7)).Return(&activated, nil).Once()
		svc := newService(repo, new(JwtMakerMock), new(NotifierMock))

		_, _, err := svc.Activate(context.Background(), uid, token)
		assert.ErrorIs(t, err, auth.ErrInvalidActivationLink)
		repo.AssertExpectations(t)
	})

	t.Run("проигравший конкурентную активацию", func(t *testing.T) {
		repo := new(UserRepoMock)
		frozen := *user
		repo.On("GetUser", mock.Anything, int64(7)).Return(&frozen, nil).Once()
		repo.On("ActivateUser", mock.Anything, int64(7)).Return(repository.ErrUserNotFound).Once()
		svc := newService(repo, new(JwtMakerMock), new(NotifierMock))

		_, _, err := svc.Activate(context.Background(), uid, token)
		assert.ErrorIs(t, err, auth.ErrInvalidActivationLink)
		repo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hashedPassword, err := password.GetHash(rawPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	activeUser := &models.User{
		ID:           7,
		Username:     "testuser",
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	inactiveUser := &models.User{
		ID:           8,
		Username:     "pending",
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
		IsActive:     false,
	}

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:     "successful login",
			username: "testuser",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").Return(activeUser, nil).Once()
				j.On("GenerateToken", "testuser", models.RoleUser, int64(7)).
					Return("jwt-token-123", nil).Once()
			},
			wantToken: "jwt-token-123",
		},
		{
			name:     "user not found",
			username: "nonexistent",
			password: "password",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "nonexistent").
					Return(nil, repository.ErrUserNotFound).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "testuser",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").Return(activeUser, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "неактивированная учётная запись",
			username: "pending",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByUsername", mock.Anything, "pending").Return(inactiveUser, nil).Once()
			},
			wantErr: auth.ErrInactiveAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := newService(repo, jwtMock, new(NotifierMock))

			tt.setupMocks(repo, jwtMock)

			token, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	validClaims := &customjwt.CustomClaims{
		Username: "testuser",
		Role:     models.RoleUser,
		UserID:   7,
	}

	t.Run("valid token", func(t *testing.T) {
		jwtMock := new(JwtMakerMock)
		jwtMock.On("ParseToken", "valid-token").Return(validClaims, nil).Once()
		svc := newService(new(UserRepoMock), jwtMock, new(NotifierMock))

		claims, err := svc.ValidateToken(context.Background(), "valid-token")
		assert.NoError(t, err)
		assert.Equal(t, validClaims, claims)
		jwtMock.AssertExpectations(t)
	})

	t.Run("invalid token", func(t *testing.T) {
		jwtMock := new(JwtMakerMock)
		jwtMock.On("ParseToken", "invalid-token").Return(nil, errors.New("invalid token")).Once()
		svc := newService(new(UserRepoMock), jwtMock, new(NotifierMock))

		claims, err := svc.ValidateToken(context.Background(), "invalid-token")
		assert.Error(t, err)
		assert.Nil(t, claims)
		jwtMock.AssertExpectations(t)
	})
}
