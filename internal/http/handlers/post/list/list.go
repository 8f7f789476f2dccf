// Package list реализует HTTP-обработчик списка собственных публикаций.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-platform/internal/http/query"
	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// Handler обрабатывает запросы на список собственных публикаций.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики публикаций
}

// Service описывает интерфейс бизнес-логики списка публикаций каллера.
type Service interface {
	ListOwn(ctx context.Context, callerID int64, opts models.ListOptions) ([]*models.Post, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список собственных публикаций
// @Description Возвращает страницу публикаций текущего пользователя с поиском по префиксу заголовка.
// @Tags Posts
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param page query int false "Номер страницы"
// @Param search query string false "Префикс заголовка"
// @Param ordering query string false "created или -created"
// @Success 200 {object} response.PageResponse "Страница публикаций"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /posts/my [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	callerID, ok := r.Context().Value(middlewarectx.UserID).(int64)
	if !ok || callerID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	opts := query.ParseListOptions(r)

	posts, total, err := h.service.ListOwn(r.Context(), callerID, opts)
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list posts"))
		return
	}

	log.Info("posts listed", slog.Int("count", len(posts)), slog.Int("total", total))
	render.JSON(w, r, response.Page(total, opts.PageSize, posts))
}
