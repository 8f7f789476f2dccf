package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// RequireAdmin возвращает HTTP middleware, который пропускает дальше только
// администраторов. Должен стоять после JWTMiddleware.
//
// Не-администратор получает 403 Forbidden: сам факт существования
// административных маршрутов не скрывается, скрываются только данные.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAdmin"

			role, ok := r.Context().Value(Role).(string)
			if !ok || role != models.RoleAdmin {
				log.Warn("forbidden: admin role required",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("role", role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
