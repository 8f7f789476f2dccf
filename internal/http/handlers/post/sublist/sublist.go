// Package sublist реализует HTTP-обработчик списка публикаций автора,
// на которого подписан текущий пользователь.
//
// Отсутствие подписки неотличимо от отсутствия автора: оба случая дают 404.
package sublist

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
	"github.com/magabrotheeeer/blog-platform/internal/http/query"
	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/services/post"
)

// Handler обрабатывает запросы на список публикаций автора по подписке.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики публикаций
}

// Service описывает интерфейс бизнес-логики списка публикаций по подписке.
type Service interface {
	ListBySubscription(ctx context.Context, callerID int64, role string, ownerID int64, opts models.ListOptions) ([]*models.Post, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Публикации автора по подписке
// @Description Возвращает страницу публикаций автора, если текущий пользователь на него подписан.
// @Tags Posts
// @Produce json
// @Param id path int true "ID автора"
// @Param limit query int false "Размер страницы"
// @Param page query int false "Номер страницы"
// @Param search query string false "Префикс заголовка"
// @Param ordering query string false "created или -created"
// @Success 200 {object} response.PageResponse "Страница публикаций"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Автор не найден или подписки нет"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /posts/{id}/sub [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.sublist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode user id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
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

	opts := query.ParseListOptions(r)

	posts, total, err := h.service.ListBySubscription(r.Context(), callerID, role, ownerID, opts)
	if err != nil {
		if errors.Is(err, post.ErrUserNotFound) {
			log.Error("author not available", slog.Int64("owner_id", ownerID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to list posts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list posts"))
		return
	}

	log.Info("posts listed", slog.Int64("owner_id", ownerID), slog.Int("count", len(posts)))
	render.JSON(w, r, response.Page(total, opts.PageSize, posts))
}
