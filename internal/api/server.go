package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/futig/custdev-bot/internal/entity"
	"github.com/futig/custdev-bot/internal/telegram/state"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter creates the ops router: liveness, readiness and metrics. The
// bot itself has no inbound HTTP surface; this server exists for operators.
func SetupRouter(storage state.Storage, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Timeout(10 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		// A probe read against a user ID no Telegram account can have;
		// "not found" proves the store answers.
		if _, err := storage.Get(ctx, -1); err != nil && !isNotFound(err) {
			logger.Warn("readiness probe failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func isNotFound(err error) bool {
	return errors.Is(err, entity.ErrSessionNotFound)
}
