package main

import (
	"context"
	"net/http"
	"time"

	"bookcatalog/internal/apidoc"
	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/web"

	"go.uber.org/zap"
)

// pinger reports whether the backing store is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}

type catalogService interface {
	book.Catalog
	pinger
}

func newRouter(cfg *config.Config, service catalogService, log *zap.Logger) (http.Handler, error) {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := service.Ping(ctx); err != nil {
			log.Warn("readiness check failed", zap.Error(err))
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	book.NewHTTPHandler(service, log).Register(router)

	docs, err := apidoc.NewHandler()
	if err != nil {
		return nil, err
	}
	docs.Register(router)

	if cfg.UIEnabled {
		web.NewHandler(service, log).Register(router)
	}

	router.HandleFunc("/", httpx.NotFound)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware(log),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	), nil
}
