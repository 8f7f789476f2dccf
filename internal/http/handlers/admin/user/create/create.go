// Package create реализует административный HTTP-обработчик создания
// учётных записей.
//
// В отличие от регистрации, администратор задаёт роль и флаг активации
// сразу, без письма активации.
package create

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
	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/services/user"
)

// Handler обрабатывает административные запросы на создание пользователей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики пользователей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания пользователя.
type Service interface {
	Create(ctx context.Context, req models.DummyUser) (*models.UserProfile, error)
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
// @Summary Создать пользователя (админ)
// @Description Создает учётную запись с заданной ролью и флагом активации.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.DummyUser true "Данные пользователя"
// @Success 201 {object} response.Response "Учётная запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или занятое имя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.user.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
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

	profile, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			log.Error("username already taken", slog.String("username", req.Username))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("username already taken"))
			return
		}
		log.Error("failed to create user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create user"))
		return
	}

	log.Info("user created", slog.Int64("id", profile.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(profile))
}
