// Package read реализует HTTP-обработчик чтения публикации по ID.
//
// Публикация доступна владельцу и администратору; для остальных,
// как и для несуществующих ID, возвращается 404.
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

	"github.com/magabrotheeeer/blog-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/services/post"
)

// Handler обрабатывает запросы на чтение публикации по ID.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики публикаций
}

// Service описывает интерфейс бизнес-логики чтения публикации.
type Service interface {
	Read(ctx context.Context, callerID int64, role string, id int64) (*models.Post, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить публикацию
// @Description Возвращает публикацию владельцу или администратору.
// @Tags Posts
// @Produce json
// @Param id path int true "ID публикации"
// @Success 200 {object} response.Response "Публикация"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Публикация не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /posts/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid post id"))
		return
	}

	callerID, ok := r.Context().Value(middlewarectx.UserID).(int64)
	if !ok || callerID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	res, err := h.service.Read(r.Context(), callerID, role, id)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			log.Error("post not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
			return
		}
		log.Error("failed to read post", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read post"))
		return
	}

	log.Info("post loaded", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(res))
}
