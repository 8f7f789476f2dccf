package post

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreatePost(ctx context.Context, ownerID int64, title, description string) (*models.Post, error) {
	args := m.Called(ctx, ownerID, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}
func (m *RepoMock) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}
func (m *RepoMock) UpdatePost(ctx context.Context, id int64, title, description string) error {
	return m.Called(ctx, id, title, description).Error(0)
}
func (m *RepoMock) RemovePost(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *RepoMock) ListPostsByOwner(ctx context.Context, ownerID int64, opts models.ListOptions) ([]*models.Post, int, error) {
	args := m.Called(ctx, ownerID, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Post), args.Int(1), args.Error(2)
}
func (m *RepoMock) ListFeed(ctx context.Context, followerID int64, opts models.ListOptions) ([]*models.Post, int, error) {
	args := m.Called(ctx, followerID, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Post), args.Int(1), args.Error(2)
}
func (m *RepoMock) ListAllPosts(ctx context.Context, opts models.ListOptions) ([]*models.Post, int, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Post), args.Int(1), args.Error(2)
}
func (m *RepoMock) ExistsSubscription(ctx context.Context, followerID, followeeID int64) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestPostService_Read(t *testing.T) {
	stored := &models.Post{ID: 10, Title: "hello", Description: "world", OwnerID: 1, CreatedAt: time.Now()}

	tests := []struct {
		name       string
		callerID   int64
		role       string
		postID     int64
		setupMocks func(r *RepoMock)
		want       *models.Post
		wantErr    error
	}{
		{
			name:     "владелец читает свою публикацию",
			callerID: 1,
			role:     models.RoleUser,
			postID:   10,
			setupMocks: func(r *RepoMock) {
				r.On("GetPost", mock.Anything, int64(10)).Return(stored, nil).Once()
			},
			want: stored,
		},
		{
			name:     "admin reads foreign post",
			callerID: 42,
			role:     models.RoleAdmin,
			postID:   10,
			setupMocks: func(r *RepoMock) {
				r.On("GetPost", mock.Anything, int64(10)).Return(stored, nil).Once()
			},
			want: stored,
		},
		{
			name:     "чужая публикация маскируется под отсутствующую",
			callerID: 2,
			role:     models.RoleUser,
			postID:   10,
			setupMocks: func(r *RepoMock) {
				r.On("GetPost", mock.Anything, int64(10)).Return(stored, nil).Once()
			},
			wantErr: ErrPostNotFound,
		},
		{
			name:     "post does not exist",
			callerID: 1,
			role:     models.RoleUser,
			postID:   777,
			setupMocks: func(r *RepoMock) {
				r.On("GetPost", mock.Anything, int64(777)).Return(nil, repository.ErrPostNotFound).Once()
			},
			wantErr: ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewService(repo, newNoopLogger())

			got, err := svc.Read(context.Background(), tt.callerID, tt.role, tt.postID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPostService_Update(t *testing.T) {
	req := models.DummyPost{Title: "new title", Description: "new text"}

	t.Run("owner updates own post", func(t *testing.T) {
		repo := new(RepoMock)
		stored := &models.Post{ID: 10, Title: "old", Description: "old", OwnerID: 1}
		repo.On("GetPost", mock.Anything, int64(10)).Return(stored, nil).Once()
		repo.On("UpdatePost", mock.Anything, int64(10), "new title", "new text").Return(nil).Once()
		svc := NewService(repo, newNoopLogger())

		got, err := svc.Update(context.Background(), 1, models.RoleUser, 10, req)
		assert.NoError(t, err)
		assert.Equal(t, "new title", got.Title)
		assert.Equal(t, "new text", got.Description)
		repo.AssertExpectations(t)
	})

	t.Run("не-владелец получает not found", func(t *testing.T) {
		repo := new(RepoMock)
		stored := &models.Post{ID: 10, OwnerID: 1}
		repo.On("GetPost", mock.Anything, int64(10)).Return(stored, nil).Once()
		svc := NewService(repo, newNoopLogger())

		_, err := svc.Update(context.Background(), 2, models.RoleUser, 10, req)
		assert.ErrorIs(t, err, ErrPostNotFound)
		repo.AssertExpectations(t)
	})
}

func TestPostService_Remove(t *testing.T) {
	t.Run("admin removes foreign post", func(t *testing.T) {
		repo := new(RepoMock)
		stored := &models.Post{ID: 10, OwnerID: 1}
		repo.On("GetPost", mock.Anything, int64(10)).Return(stored, nil).Once()
		repo.On("RemovePost", mock.Anything, int64(10)).Return(nil).Once()
		svc := NewService(repo, newNoopLogger())

		err := svc.Remove(context.Background(), 42, models.RoleAdmin, 10)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing post", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetPost", mock.Anything, int64(10)).Return(nil, repository.ErrPostNotFound).Once()
		svc := NewService(repo, newNoopLogger())

		err := svc.Remove(context.Background(), 1, models.RoleUser, 10)
		assert.ErrorIs(t, err, ErrPostNotFound)
		repo.AssertExpectations(t)
	})
}

func TestPostService_ListBySubscription(t *testing.T) {
	posts := []*models.Post{{ID: 1, OwnerID: 2, Title: "a"}}

	tests := []struct {
		name       string
		callerID   int64
		role       string
		ownerID    int64
		setupMocks func(r *RepoMock)
		wantTotal  int
		wantErr    error
	}{
		{
			name:     "подписчик видит публикации автора",
			callerID: 1,
			role:     models.RoleUser,
			ownerID:  2,
			setupMocks: func(r *RepoMock) {
				r.On("ExistsSubscription", mock.Anything, int64(1), int64(2)).Return(true, nil).Once()
				r.On("ListPostsByOwner", mock.Anything, int64(2), mock.Anything).Return(posts, 1, nil).Once()
			},
			wantTotal: 1,
		},
		{
			name:     "без подписки автор неотличим от несуществующего",
			callerID: 1,
			role:     models.RoleUser,
			ownerID:  3,
			setupMocks: func(r *RepoMock) {
				r.On("ExistsSubscription", mock.Anything, int64(1), int64(3)).Return(false, nil).Once()
			},
			wantErr: ErrUserNotFound,
		},
		{
			name:     "admin skips subscription check",
			callerID: 42,
			role:     models.RoleAdmin,
			ownerID:  2,
			setupMocks: func(r *RepoMock) {
				r.On("ListPostsByOwner", mock.Anything, int64(2), mock.Anything).Return(posts, 1, nil).Once()
			},
			wantTotal: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewService(repo, newNoopLogger())

			got, total, err := svc.ListBySubscription(context.Background(), tt.callerID, tt.role, tt.ownerID, models.ListOptions{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, total)
				assert.Equal(t, posts, got)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPostService_Feed(t *testing.T) {
	t.Run("пустой граф подписок дает пустую ленту", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListFeed", mock.Anything, int64(1), mock.Anything).
			Return([]*models.Post{}, 0, nil).Once()
		svc := NewService(repo, newNoopLogger())

		got, total, err := svc.Feed(context.Background(), 1, models.ListOptions{})
		assert.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, 0, total)
		repo.AssertExpectations(t)
	})

	t.Run("options are normalized before query", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListFeed", mock.Anything, int64(1), mock.MatchedBy(func(opts models.ListOptions) bool {
			return opts.Page == 1 && opts.PageSize == models.DefaultPageSize
		})).Return([]*models.Post{}, 0, nil).Once()
		svc := NewService(repo, newNoopLogger())

		_, _, err := svc.Feed(context.Background(), 1, models.ListOptions{Page: -5, PageSize: 0})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
