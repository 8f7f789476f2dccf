// Package read реализует административный HTTP-обработчик просмотра
// профиля пользователя по ID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/services/user"
)

// Handler обрабатывает административные запросы на просмотр профиля.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики пользователей
}

// Service описывает интерфейс бизнес-логики просмотра профиля.
type Service interface {
	Profile(ctx context.Context, id int64) (*models.UserProfile, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль пользователя (админ)
// @Description Возвращает полный профиль пользователя по ID.
// @Tags Admin
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} response.Response "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.user.read"

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

	profile, err := h.service.Profile(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			log.Error("user not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to load profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load profile"))
		return
	}

	log.Info("profile loaded", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(profile))
}
