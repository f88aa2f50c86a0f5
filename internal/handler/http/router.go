package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sandrosmarzaro/todo-list-api/pkg/health"
	"github.com/sandrosmarzaro/todo-list-api/pkg/middleware"
)

// NewRouter creates a chi router with all API routes registered.
func NewRouter(
	authService AuthService,
	userService UserService,
	todoService TodoService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("todo-api"))
	r.Use(middleware.PrometheusMetrics("todo-api"))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Todo List API"})
	})

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Token endpoints (public, form-encoded login)
	authHandler := NewAuthHandler(authService, logger)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/token", authHandler.Token)
		r.Post("/refresh_token", authHandler.Refresh)
	})

	authenticate := Authenticate(authService)

	// Account endpoints. Registration is public; listing and single-account
	// operations require a bearer token.
	userHandler := NewUserHandler(userService, logger)
	r.Route("/api/v1/users", func(r chi.Router) {
		r.With(ContentTypeJSON).Post("/", userHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/", userHandler.List)
			r.Get("/{id}", userHandler.Get)
			r.With(ContentTypeJSON).Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})
	})

	// Todo endpoints (auth required)
	todoHandler := NewTodoHandler(todoService, logger)
	r.Route("/api/v1/todos", func(r chi.Router) {
		r.Use(authenticate)

		r.With(ContentTypeJSON).Post("/", todoHandler.Create)
		r.Get("/", todoHandler.List)
		r.With(ContentTypeJSON).Patch("/{id}", todoHandler.Update)
		r.Delete("/{id}", todoHandler.Delete)
	})

	return r
}
