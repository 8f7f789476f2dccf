// Package update реализует административный HTTP-обработчик обновления
// учётной записи пользователя.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/services/user"
)

// Handler обрабатывает административные запросы на обновление пользователей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики пользователей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики обновления пользователя.
type Service interface {
	Update(ctx context.Context, id int64, req models.DummyUser) (*models.UserProfile, error)
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
// @Summary Обновить пользователя (админ)
// @Description Обновляет учётную запись: имя, почту, пароль, роль и флаг активации.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param request body models.DummyUser true "Новые данные пользователя"
// @Success 200 {object} response.Response "Обновлённый профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или занятое имя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/users/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.user.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

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

	profile, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			log.Error("user not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, user.ErrUsernameTaken):
			log.Error("username already taken", slog.String("username", req.Username))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("username already taken"))
		default:
			log.Error("failed to update user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update user"))
		}
		return
	}

	log.Info("user updated", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(profile))
}
