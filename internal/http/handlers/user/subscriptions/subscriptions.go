// Package subscriptions реализует HTTP-обработчик списка подписок
// текущего пользователя.
package subscriptions

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

// Handler обрабатывает запросы на список подписок каллера.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики подписок
}

// Service описывает интерфейс бизнес-логики списка подписок.
type Service interface {
	List(ctx context.Context, callerID int64, opts models.ListOptions) ([]*models.UserInfo, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список подписок текущего пользователя
// @Description Возвращает страницу пользователей, на которых подписан каллер.
// @Tags Users
// @Produce json
// @Param limit query int false "Размер страницы"
// @Param page query int false "Номер страницы"
// @Success 200 {object} response.PageResponse "Страница подписок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /users/subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.subscriptions"

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

	users, total, err := h.service.List(r.Context(), callerID, opts)
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list subscriptions"))
		return
	}

	log.Info("subscriptions listed", slog.Int("count", len(users)), slog.Int("total", total))
	render.JSON(w, r, response.Page(total, opts.PageSize, users))
}
