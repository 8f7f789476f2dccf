// Package list реализует HTTP-обработчик списка пользователей платформы.
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

// Handler обрабатывает запросы на постраничный список пользователей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики пользователей
}

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	List(ctx context.Context, opts models.ListOptions) ([]*models.UserInfo, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает страницу пользователей, отсортированных по дате регистрации.
// @Tags Users
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param page query int false "Номер страницы"
// @Param ordering query string false "Поле сортировки, префикс - задаёт убывание"
// @Success 200 {object} response.PageResponse "Страница пользователей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	opts := query.ParseListOptions(r)

	users, total, err := h.service.List(r.Context(), opts)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list users"))
		return
	}

	log.Info("users listed", slog.Int("count", len(users)), slog.Int("total", total))
	render.JSON(w, r, response.Page(total, opts.PageSize, users))
}
