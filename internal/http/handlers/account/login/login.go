// Package login реализует HTTP-обработчик аутентификации пользователей.
//
// В нём определяется структура Request для входных данных, выполняется
// декодирование JSON, проверка и валидация полей, а также делегирование
// операции входа сервису аутентификации. При успехе возвращается JWT сессии.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/services/auth"
)

// Request — структура входных данных для авторизации.
//
// Username должен быть строкой длиной от 3 до 50 символов, пароль — минимум 6 символов.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по имени и паролю. Возвращает JWT сессии.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body Request true "Учётные данные"
// @Success 200 {object} response.Response "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации, неверные учётные данные или неактивная запись"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /account/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			log.Error("invalid credentials", slog.String("username", req.Username))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unable to login with provided credentials"))
		case errors.Is(err, auth.ErrInactiveAccount):
			log.Error("inactive account", slog.String("username", req.Username))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("user account is disabled"))
		default:
			log.Error("login failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to login"))
		}
		return
	}

	log.Info("user logged in", slog.String("username", req.Username))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"jwt_token": token,
	}))
}
