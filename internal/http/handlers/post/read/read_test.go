package read

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/blog-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/services/post"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, callerID int64, role string, id int64) (*models.Post, error) {
	args := m.Called(ctx, callerID, role, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	stored := &models.Post{ID: 10, Title: "hello", Description: "world", OwnerID: 1}

	tests := []struct {
		name           string
		urlID          string
		callerID       int64
		role           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "владелец читает публикацию",
			urlID:    "10",
			callerID: 1,
			role:     models.RoleUser,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, int64(1), models.RoleUser, int64(10)).
					Return(stored, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"hello"`,
		},
		{
			name:     "чужая публикация даёт 404",
			urlID:    "10",
			callerID: 2,
			role:     models.RoleUser,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, int64(2), models.RoleUser, int64(10)).
					Return(nil, post.ErrPostNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"post not found"`,
		},
		{
			name:           "некорректный id",
			urlID:          "abc",
			callerID:       1,
			role:           models.RoleUser,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid post id"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/posts/"+tt.urlID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.UserID, tt.callerID)
			ctx = context.WithValue(ctx, middlewarectx.Role, tt.role)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
