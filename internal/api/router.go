package api

import (
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"items-backend/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

func (s *Server) rateLimit(requests int) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		s.config.RateLimit.Window,
		httprate.WithKeyFuncs(peerKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeErrorBody(w, http.StatusTooManyRequests, CodeRateLimited, "Too many requests, slow down")
		}),
	)
}

func (s *Server) accessLogger() middleware.LoggerInterface {
	if sl, ok := s.logger.(interface{ Slog() *slog.Logger }); ok {
		return slog.NewLogLogger(sl.Slog().Handler(), slog.LevelInfo)
	}
	return log.Default()
}

// Routes builds the complete HTTP handler: API under /api/v1 plus health,
// metrics, docs, websocket and, for the local driver, stored files.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if s.config.RateLimit.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.accessLogger(), NoColor: true}))
	r.Use(s.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	if s.config.RateLimit.Requests > 0 {
		r.Use(s.rateLimit(s.config.RateLimit.Requests))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusNotFound, CodeNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", s.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Get("/ws", s.ServeWsHandler)

	if local, ok := s.storage.(*storage.LocalStore); ok {
		if u, err := url.Parse(local.PublicURL()); err == nil && strings.HasPrefix(u.Path, "/") {
			if prefix := strings.TrimSuffix(u.Path, "/"); prefix != "" {
				r.Handle(prefix+"/*", http.StripPrefix(prefix, local.Handler()))
			}
		}
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if s.config.RateLimit.AuthRequests > 0 {
				r.Use(s.rateLimit(s.config.RateLimit.AuthRequests))
			}
			r.Post("/auth/signup", s.SignupHandler)
			r.Post("/auth/login", s.LoginHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.OptionalAuthMiddleware)
			r.Get("/items", s.ListItemsHandler)
			r.Get("/items/{itemId}", s.GetItemHandler)
			r.Get("/items/{itemId}/uploads", s.ListUploadsHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)

			r.Post("/auth/logout", s.LogoutHandler)
			r.Post("/auth/refresh", s.RefreshTokenHandler)

			r.Get("/users/me", s.GetCurrentUserHandler)
			r.Put("/users/me", s.UpdateCurrentUserHandler)
			r.Put("/users/me/password", s.ChangePasswordHandler)
			r.Delete("/users/me", s.DeleteCurrentUserHandler)

			r.Get("/sessions", s.ListSessionsHandler)
			r.Delete("/sessions/{sessionId}", s.DeleteSessionHandler)
			r.Post("/sessions/terminate_all", s.TerminateAllSessionsHandler)

			r.Post("/items", s.CreateItemHandler)
			r.Put("/items/{itemId}", s.UpdateItemHandler)
			r.Delete("/items/{itemId}", s.DeleteItemHandler)
			r.Post("/items/{itemId}/upload", s.UploadHandler)

			r.Get("/events", s.GetEventsHandler)
		})
	})

	return r
}
