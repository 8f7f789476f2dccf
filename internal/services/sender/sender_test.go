package sender

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/blog-platform/internal/lib/smtp"
	"github.com/magabrotheeeer/blog-platform/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSenderService_SendActivationEmail(t *testing.T) {
	task := models.ActivationEmail{
		MessageID:    "msg-1",
		Email:        "test@example.com",
		Username:     "testuser",
		ActivateLink: "http://localhost:8080/api/v1/account/activate/Nw/abc-def",
	}
	body, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("failed to marshal task: %v", err)
	}

	t.Run("успешная отправка письма", func(t *testing.T) {
		transport := new(MockTransport)
		client := new(MockSMTPClient)
		writer := new(MockSMTPWriter)

		transport.On("GetSMTPUser").Return("noreply@example.com")
		transport.On("Connect").Return(client, nil).Once()
		client.On("Mail", "noreply@example.com").Return(nil).Once()
		client.On("Rcpt", "test@example.com").Return(nil).Once()
		client.On("Data").Return(writer, nil).Once()
		writer.On("Write", mock.MatchedBy(func(p []byte) bool {
			msg := string(p)
			return strings.Contains(msg, "To: test@example.com") &&
				strings.Contains(msg, task.ActivateLink) &&
				strings.Contains(msg, "testuser")
		})).Return(1, nil).Once()
		writer.On("Close").Return(nil).Once()
		client.On("Quit").Return(nil).Once()
		client.On("Close").Return(nil).Once()

		svc := NewService(transport, newNoopLogger())
		assert.NoError(t, svc.SendActivationEmail(body))

		transport.AssertExpectations(t)
		client.AssertExpectations(t)
		writer.AssertExpectations(t)
	})

	t.Run("битое тело сообщения", func(t *testing.T) {
		svc := NewService(new(MockTransport), newNoopLogger())
		err := svc.SendActivationEmail([]byte("{not json"))
		assert.Error(t, err)
	})

	t.Run("ошибка подключения к SMTP", func(t *testing.T) {
		transport := new(MockTransport)
		transport.On("GetSMTPUser").Return("noreply@example.com")
		transport.On("Connect").Return(nil, errors.New("connection refused")).Once()

		svc := NewService(transport, newNoopLogger())
		err := svc.SendActivationEmail(body)
		assert.Error(t, err)
		transport.AssertExpectations(t)
	})
}
