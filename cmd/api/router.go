package main

import (
	"context"
	"net/http"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
)

// readinessCheck reports whether the backing store can serve requests.
type readinessCheck func(ctx context.Context) error

func newRouter(repo book.Repository, ready readinessCheck) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	book.NewHTTPHandler(book.NewService(repo)).RegisterRoutes(router)
	return router
}

// withMiddleware wraps the router in the standard chain. RequestID is outermost so
// every later layer, including the access log, sees the id.
func withMiddleware(cfg config.HTTPConfig, rateLimiter *httpx.RateLimitMiddleware, next http.Handler) http.Handler {
	return httpx.Chain(
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		rateLimiter.Middleware,
	)(next)
}

func alwaysReady(context.Context) error { return nil }
