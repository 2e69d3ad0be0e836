// Package observability builds the logger, tracer, and metrics registry that
// every module receives.
package observability

import (
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/xp-bot/app/shared/opmetrics"
	"github.com/Black-And-White-Club/xp-bot/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Black-And-White-Club/xp-bot"

// Observability groups the telemetry collaborators.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
	Metrics  *opmetrics.Prometheus
}

// New creates the process-wide telemetry. The tracer comes from the global
// otel provider, which is a no-op unless an exporter was installed.
func New(cfg config.ObservabilityConfig) *Observability {
	level := slog.LevelInfo
	if strings.EqualFold(cfg.Environment, "development") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	if cfg.Environment != "" {
		logger = logger.With(slog.String("env", cfg.Environment))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(instrumentationName),
		Registry: registry,
		Metrics:  opmetrics.New(registry),
	}
}
