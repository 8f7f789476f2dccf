package register

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/blog-platform/internal/services/auth"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, username, email, password string) (*auth.Registration, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Registration), args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	registration := &auth.Registration{
		UID:          "Nw",
		Token:        "tok-abc",
		ActivateLink: "http://localhost:8080/api/v1/account/activate/Nw/tok-abc",
	}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"username":"testuser","email":"test@example.com","password":"password123","confirm_password":"password123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "testuser", "test@example.com", "password123").
					Return(registration, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"activate_link"`,
		},
		{
			name:           "пароли не совпадают",
			body:           `{"username":"testuser","email":"test@example.com","password":"password123","confirm_password":"different"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field ConfirmPassword does not match Password`,
		},
		{
			name:           "некорректная почта",
			body:           `{"username":"testuser","email":"not-an-email","password":"password123","confirm_password":"password123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"status":"Error"`,
		},
		{
			name: "занятое имя пользователя",
			body: `{"username":"testuser","email":"test@example.com","password":"password123","confirm_password":"password123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "testuser", "test@example.com", "password123").
					Return(nil, auth.ErrUsernameTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"username already taken"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/account/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
