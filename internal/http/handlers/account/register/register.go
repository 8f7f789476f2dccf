// Package register реализует HTTP-обработчик регистрации новых пользователей.
//
// Handler принимает JSON с именем, почтой и паролем, валидирует поля,
// создает неактивную учётную запись через сервис аутентификации и возвращает
// данные ссылки активации.
package register

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

// Request — входные данные для регистрации.
type Request struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики регистрации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*auth.Registration, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает неактивную учётную запись и отправляет письмо со ссылкой активации.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} response.Response "Учётная запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или занятое имя"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /account/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.register"

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

	result, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			log.Error("username already taken", slog.String("username", req.Username))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("username already taken"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("username", req.Username))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(result))
}
