// Package blogplatform предоставляет маршруты для основного приложения.
package blogplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	adminpostlist "github.com/magabrotheeeer/blog-platform/internal/http/handlers/admin/post/list"
	adminusercreate "github.com/magabrotheeeer/blog-platform/internal/http/handlers/admin/user/create"
	adminuserread "github.com/magabrotheeeer/blog-platform/internal/http/handlers/admin/user/read"
	adminuserremove "github.com/magabrotheeeer/blog-platform/internal/http/handlers/admin/user/remove"
	adminuserupdate "github.com/magabrotheeeer/blog-platform/internal/http/handlers/admin/user/update"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/account/activate"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/account/login"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/account/register"
	postcreate "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/create"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/feed"
	postlist "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/list"
	postread "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/read"
	postremove "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/remove"
	postupdate "github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/update"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/post/sublist"
	userlist "github.com/magabrotheeeer/blog-platform/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/user/subscribe"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/user/subscriptions"
	"github.com/magabrotheeeer/blog-platform/internal/http/handlers/user/unsubscribe"
	"github.com/magabrotheeeer/blog-platform/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/blog-platform/internal/services/auth"
	postservice "github.com/magabrotheeeer/blog-platform/internal/services/post"
	subservice "github.com/magabrotheeeer/blog-platform/internal/services/subscription"
	userservice "github.com/magabrotheeeer/blog-platform/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.Service,
	subscriptionService *subservice.Service,
	postService *postservice.Service,
	userService *userservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limiter := rate.NewLimiter(50, 100)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/account/register", register.New(logger, authService).ServeHTTP)
		r.Get("/account/activate/{uid}/{token}", activate.New(logger, authService).ServeHTTP)
		r.Post("/account/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))

			r.Get("/users", userlist.New(logger, userService).ServeHTTP)
			r.Get("/users/me", me.New(logger, userService).ServeHTTP)
			r.Get("/users/subscriptions", subscriptions.New(logger, subscriptionService).ServeHTTP)
			r.Post("/users/{id}/subscribe", subscribe.New(logger, subscriptionService).ServeHTTP)
			r.Post("/users/{id}/unsubscribe", unsubscribe.New(logger, subscriptionService).ServeHTTP)

			r.Get("/posts/my", postlist.New(logger, postService).ServeHTTP)
			r.Post("/posts/my", postcreate.New(logger, postService).ServeHTTP)
			r.Get("/posts/feed", feed.New(logger, postService).ServeHTTP)
			r.Get("/posts/{id}/sub", sublist.New(logger, postService).ServeHTTP)
			r.Get("/posts/{id}", postread.New(logger, postService).ServeHTTP)
			r.Put("/posts/{id}", postupdate.New(logger, postService).ServeHTTP)
			r.Patch("/posts/{id}", postupdate.New(logger, postService).ServeHTTP)
			r.Delete("/posts/{id}", postremove.New(logger, postService).ServeHTTP)

			// Административные маршруты
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))

				r.Get("/admin/users", userlist.New(logger, userService).ServeHTTP)
				r.Post("/admin/users", adminusercreate.New(logger, userService).ServeHTTP)
				r.Get("/admin/users/{id}", adminuserread.New(logger, userService).ServeHTTP)
				r.Put("/admin/users/{id}", adminuserupdate.New(logger, userService).ServeHTTP)
				r.Patch("/admin/users/{id}", adminuserupdate.New(logger, userService).ServeHTTP)
				r.Delete("/admin/users/{id}", adminuserremove.New(logger, userService).ServeHTTP)

				// Управление чужими публикациями использует те же обработчики:
				// роль admin проходит проверку владельца в сервисе.
				r.Get("/admin/posts", adminpostlist.New(logger, postService).ServeHTTP)
				r.Get("/admin/posts/{id}", postread.New(logger, postService).ServeHTTP)
				r.Put("/admin/posts/{id}", postupdate.New(logger, postService).ServeHTTP)
				r.Patch("/admin/posts/{id}", postupdate.New(logger, postService).ServeHTTP)
				r.Delete("/admin/posts/{id}", postremove.New(logger, postService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
