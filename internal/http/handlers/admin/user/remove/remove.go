// Package remove реализует административный HTTP-обработчик удаления
// учётной записи пользователя.
//
// Публикации пользователя и его рёбра в графе подписок удаляются каскадно.
package remove

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
	"github.com/magabrotheeeer/blog-platform/internal/services/user"
)

// Handler обрабатывает административные запросы на удаление пользователей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики пользователей
}

// Service описывает интерфейс бизнес-логики удаления пользователя.
type Service interface {
	Remove(ctx context.Context, id int64) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить пользователя (админ)
// @Description Удаляет учётную запись вместе с её публикациями и подписками.
// @Tags Admin
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} response.Response "Учётная запись удалена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.user.remove"

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

	if err := h.service.Remove(r.Context(), id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			log.Error("user not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to remove user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove user"))
		return
	}

	log.Info("user removed", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "user removed",
	}))
}
