package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goliatone/go-hook-notify/core"
)

const (
	RouteWebhook = "/webhooks/{serviceKey}/github"
	RouteHealth  = "/healthz"
	RouteStream  = "/ws"
)

// NewRouter mounts the handler routes behind the common middleware chain.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	setupCommonMiddleware(r, h.logger)
	setupRoutes(r, h)

	return r
}

func setupCommonMiddleware(r *chi.Mux, logger core.Logger) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
}

func setupRoutes(r chi.Router, h *Handler) {
	r.Get(RouteHealth, h.Health)
	r.Post(RouteWebhook, h.GitHubWebhook)
	if h.stream != nil {
		r.Handle(RouteStream, h.stream)
	}
}

func requestLogger(logger core.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				core.LogInfo(r.Context(), logger, "http request", map[string]any{
					"method":      r.Method,
					"path":        r.URL.Path,
					"status":      ww.Status(),
					"bytes":       ww.BytesWritten(),
					"duration_ms": time.Since(start).Milliseconds(),
					"request_id":  middleware.GetReqID(r.Context()),
				})
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
