// Package activate реализует HTTP-обработчик активации учётной записи
// по ссылке из письма.
//
// Handler извлекает uid и токен из URL, делегирует проверку сервису
// аутентификации и при успехе возвращает профиль пользователя вместе
// с JWT сессии.
package activate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/services/auth"
)

// Handler обрабатывает HTTP-запросы активации учётной записи.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики активации
}

// Service описывает интерфейс бизнес-логики активации.
type Service interface {
	Activate(ctx context.Context, uid, token string) (*models.UserProfile, string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Активация учётной записи
// @Description Одноразово активирует учётную запись по ссылке из письма и возвращает JWT сессии.
// @Tags Account
// @Produce json
// @Param uid path string true "Закодированный идентификатор пользователя"
// @Param token path string true "Токен активации"
// @Success 201 {object} response.Response "Учётная запись активирована"
// @Failure 400 {object} response.ErrorResponse "Ссылка активации недействительна"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /account/activate/{uid}/{token} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.activate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")
	token := chi.URLParam(r, "token")

	profile, sessionToken, err := h.service.Activate(r.Context(), uid, token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidActivationLink) {
			log.Error("activation rejected", slog.String("uid", uid))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("activation link is invalid"))
			return
		}
		log.Error("activation failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to activate account"))
		return
	}

	log.Info("account activated", slog.Int64("user_id", profile.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":      profile,
		"jwt_token": sessionToken,
	}))
}
