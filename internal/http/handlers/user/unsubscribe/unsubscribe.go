// Package unsubscribe реализует HTTP-обработчик отмены подписки
// на другого пользователя.
package unsubscribe

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
	"github.com/magabrotheeeer/blog-platform/internal/services/subscription"
)

// Handler обрабатывает запросы на отмену подписки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики подписок
}

// Service описывает интерфейс бизнес-логики отмены подписки.
type Service interface {
	Unsubscribe(ctx context.Context, callerID, targetID int64) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отписаться от пользователя
// @Description Удаляет подписку текущего пользователя на автора с указанным ID.
// @Tags Users
// @Produce json
// @Param id path int true "ID автора"
// @Success 200 {object} response.Response "Подписка удалена"
// @Failure 400 {object} response.ErrorResponse "Отписка от самого себя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписки не существует"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /users/{id}/unsubscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.unsubscribe"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
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

	if err := h.service.Unsubscribe(r.Context(), callerID, targetID); err != nil {
		switch {
		case errors.Is(err, subscription.ErrSelfSubscription):
			log.Error("self unsubscription rejected", slog.Int64("user_id", callerID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("self subscription is not allowed"))
		case errors.Is(err, subscription.ErrNotSubscribed):
			log.Error("subscription does not exist",
				slog.Int64("follower_id", callerID), slog.Int64("followee_id", targetID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("not subscribed"))
		default:
			log.Error("failed to unsubscribe", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to unsubscribe"))
		}
		return
	}

	log.Info("subscription removed",
		slog.Int64("follower_id", callerID), slog.Int64("followee_id", targetID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "unsubscribed",
	}))
}
