package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/xp-bot/app/shared/attr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthTimeout = 2 * time.Second

// Pinger is implemented by the database service and the redis backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// Router returns the operational HTTP routes.
func (app *App) Router() http.Handler {
	var cachePinger Pinger
	if p, ok := app.backend.(Pinger); ok {
		cachePinger = p
	}
	return newRouter(app.Obs.Registry, app.DB, cachePinger, app.Obs.Logger)
}

func newRouter(registry *prometheus.Registry, db Pinger, cache Pinger, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	r.Get("/healthz", healthHandler(db, cache, logger))
	return r
}

// healthHandler reports 503 only when the database is unreachable. A cache
// outage degrades latency, not correctness, so it is reported but stays 200.
func healthHandler(db Pinger, cache Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Database: "ok", Cache: "ok"}
		code := http.StatusOK

		if err := db.Ping(ctx); err != nil {
			logger.ErrorContext(ctx, "Database health check failed", attr.Error(err))
			resp.Status = "unavailable"
			resp.Database = "unreachable"
			code = http.StatusServiceUnavailable
		}

		switch {
		case cache == nil:
			resp.Cache = "in-process"
		default:
			if err := cache.Ping(ctx); err != nil {
				logger.WarnContext(ctx, "Cache health check failed", attr.Error(err))
				resp.Cache = "unreachable"
				if code == http.StatusOK {
					resp.Status = "degraded"
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.ErrorContext(ctx, "Failed to write health response", attr.Error(err))
		}
	}
}
