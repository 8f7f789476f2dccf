package subscription

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSubscription(ctx context.Context, followerID, followeeID int64) error {
	return m.Called(ctx, followerID, followeeID).Error(0)
}
func (m *RepoMock) RemoveSubscription(ctx context.Context, followerID, followeeID int64) error {
	return m.Called(ctx, followerID, followeeID).Error(0)
}
func (m *RepoMock) ListSubscriptions(ctx context.Context, followerID int64, opts models.ListOptions) ([]*models.UserInfo, int, error) {
	args := m.Called(ctx, followerID, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.UserInfo), args.Int(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSubscriptionService_Subscribe(t *testing.T) {
	tests := []struct {
		name       string
		callerID   int64
		targetID   int64
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:     "success subscribe",
			callerID: 1,
			targetID: 2,
			setupMocks: func(r *RepoMock) {
				r.On("CreateSubscription", mock.Anything, int64(1), int64(2)).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name:       "подписка на самого себя",
			callerID:   7,
			targetID:   7,
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrSelfSubscription,
		},
		{
			name:     "duplicate edge",
			callerID: 1,
			targetID: 2,
			setupMocks: func(r *RepoMock) {
				r.On("CreateSubscription", mock.Anything, int64(1), int64(2)).
					Return(repository.ErrAlreadySubscribed).Once()
			},
			wantErr: ErrAlreadySubscribed,
		},
		{
			name:     "target user does not exist",
			callerID: 1,
			targetID: 99,
			setupMocks: func(r *RepoMock) {
				r.On("CreateSubscription", mock.Anything, int64(1), int64(99)).
					Return(repository.ErrUserNotFound).Once()
			},
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewService(repo, newNoopLogger())

			err := svc.Subscribe(context.Background(), tt.callerID, tt.targetID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_Unsubscribe(t *testing.T) {
	tests := []struct {
		name       string
		callerID   int64
		targetID   int64
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:     "success unsubscribe",
			callerID: 1,
			targetID: 2,
			setupMocks: func(r *RepoMock) {
				r.On("RemoveSubscription", mock.Anything, int64(1), int64(2)).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name:       "отписка от самого себя",
			callerID:   3,
			targetID:   3,
			setupMocks: func(_ *RepoMock) {},
			wantErr:    ErrSelfSubscription,
		},
		{
			name:     "edge does not exist",
			callerID: 1,
			targetID: 5,
			setupMocks: func(r *RepoMock) {
				r.On("RemoveSubscription", mock.Anything, int64(1), int64(5)).
					Return(repository.ErrNotSubscribed).Once()
			},
			wantErr: ErrNotSubscribed,
		},
		{
			name:     "repository error",
			callerID: 1,
			targetID: 5,
			setupMocks: func(r *RepoMock) {
				r.On("RemoveSubscription", mock.Anything, int64(1), int64(5)).
					Return(errors.New("db error")).Once()
			},
			wantErr: nil, // проверяется отдельно ниже
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewService(repo, newNoopLogger())

			err := svc.Unsubscribe(context.Background(), tt.callerID, tt.targetID)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.name == "repository error":
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrNotSubscribed)
			default:
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_List(t *testing.T) {
	repo := new(RepoMock)
	svc := NewService(repo, newNoopLogger())

	want := []*models.UserInfo{{ID: 2, Username: "alice"}, {ID: 3, Username: "bob"}}
	// Нулевые опции должны быть нормализованы до первой страницы стандартного размера.
	repo.On("ListSubscriptions", mock.Anything, int64(1), mock.MatchedBy(func(opts models.ListOptions) bool {
		return opts.Page == 1 && opts.PageSize == models.DefaultPageSize
	})).Return(want, 2, nil).Once()

	got, total, err := svc.List(context.Background(), 1, models.ListOptions{})
	assert.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 2, total)
	repo.AssertExpectations(t)
}
