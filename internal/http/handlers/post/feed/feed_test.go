package feed

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/blog-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// MockService реализует интерфейс feed.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Feed(ctx context.Context, callerID int64, opts models.ListOptions) ([]*models.Post, int, error) {
	args := m.Called(ctx, callerID, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Post), args.Int(1), args.Error(2)
}

func TestFeedHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	posts := []*models.Post{
		{ID: 1, Title: "first", OwnerID: 2, CreatedAt: time.Now().Add(-time.Hour)},
		{ID: 2, Title: "second", OwnerID: 3, CreatedAt: time.Now()},
	}

	t.Run("страница ленты с конвертом пагинации", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("Feed", mock.Anything, int64(1), mock.MatchedBy(func(opts models.ListOptions) bool {
			return opts.Page == 1 && opts.PageSize == models.DefaultPageSize
		})).Return(posts, 12, nil)

		handler := New(logger, mockService)

		req := httptest.NewRequest(http.MethodGet, "/posts/feed", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, int64(1)))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"total":12`)
		assert.Contains(t, body, `"page_count":2`)
		assert.Contains(t, body, `"first"`)
		mockService.AssertExpectations(t)
	})

	t.Run("пустая лента", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("Feed", mock.Anything, int64(1), mock.Anything).
			Return([]*models.Post{}, 0, nil)

		handler := New(logger, mockService)

		req := httptest.NewRequest(http.MethodGet, "/posts/feed", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, int64(1)))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":0`)
		assert.Contains(t, w.Body.String(), `"page_count":0`)
		mockService.AssertExpectations(t)
	})

	t.Run("без user id в контексте", func(t *testing.T) {
		handler := New(logger, new(MockService))

		req := httptest.NewRequest(http.MethodGet, "/posts/feed", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), "unauthorized"))
	})
}
