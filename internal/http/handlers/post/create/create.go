// Package create реализует HTTP-обработчик создания публикаций.
//
// Handler принимает JSON с заголовком и текстом, валидирует их, извлекает
// ID каллера из контекста и возвращает созданную публикацию.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/blog-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// Handler обрабатывает запросы на создание публикаций.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики публикаций
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания публикации.
type Service interface {
	Create(ctx context.Context, ownerID int64, req models.DummyPost) (*models.Post, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать публикацию
// @Description Создает публикацию от имени текущего пользователя.
// @Tags Posts
// @Accept json
// @Produce json
// @Param request body models.DummyPost true "Данные публикации"
// @Success 201 {object} response.Response "Публикация создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /posts/my [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPost
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	callerID, ok := r.Context().Value(middlewarectx.UserID).(int64)
	if !ok || callerID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	post, err := h.service.Create(r.Context(), callerID, req)
	if err != nil {
		log.Error("failed to create post", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create post"))
		return
	}

	log.Info("post created", slog.Int64("id", post.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(post))
}
