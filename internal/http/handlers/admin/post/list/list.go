// Package list реализует административный HTTP-обработчик списка всех
// публикаций платформы.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-platform/internal/http/query"
	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// Handler обрабатывает административные запросы на список публикаций.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики публикаций
}

// Service описывает интерфейс бизнес-логики списка всех публикаций.
type Service interface {
	ListAll(ctx context.Context, opts models.ListOptions) ([]*models.Post, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Все публикации (админ)
// @Description Возвращает страницу публикаций всех пользователей платформы.
// @Tags Admin
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param page query int false "Номер страницы"
// @Param search query string false "Префикс заголовка"
// @Param ordering query string false "created или -created"
// @Success 200 {object} response.PageResponse "Страница публикаций"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/posts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.post.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	opts := query.ParseListOptions(r)

	posts, total, err := h.service.ListAll(r.Context(), opts)
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list posts"))
		return
	}

	log.Info("posts listed", slog.Int("count", len(posts)), slog.Int("total", total))
	render.JSON(w, r, response.Page(total, opts.PageSize, posts))
}
