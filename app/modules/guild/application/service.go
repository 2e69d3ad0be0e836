package guildservice

import (
	"context"
	"log/slog"
	"time"

	guilddb "github.com/Black-And-White-Club/xp-bot/app/modules/guild/infrastructure/repositories"
	"github.com/Black-And-White-Club/xp-bot/app/shared/opmetrics"
	"github.com/Black-And-White-Club/xp-bot/app/shared/telemetry"
	"github.com/Black-And-White-Club/xp-bot/app/ttlcache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// GuildService implements the Service interface.
type GuildService struct {
	repo          guilddb.Repository
	cache         *ttlcache.Cache
	logger        *slog.Logger
	metrics       opmetrics.OperationMetrics
	tracer        trace.Tracer
	ttl           time.Duration
	defaultPrefix string
}

// Option configures a GuildService.
type Option func(*GuildService)

// WithTTL sets how long guild snapshots stay cached.
func WithTTL(ttl time.Duration) Option {
	return func(s *GuildService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithDefaultPrefix overrides the prefix reported for guilds without a row.
func WithDefaultPrefix(prefix string) Option {
	return func(s *GuildService) {
		if prefix != "" {
			s.defaultPrefix = prefix
		}
	}
}

// NewGuildService creates a new GuildService. A nil cache runs store-only.
func NewGuildService(
	repo guilddb.Repository,
	cache *ttlcache.Cache,
	logger *slog.Logger,
	metrics opmetrics.OperationMetrics,
	tracer trace.Tracer,
	opts ...Option,
) *GuildService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = opmetrics.NoOp{}
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("guildservice")
	}
	s := &GuildService{
		repo:          repo,
		cache:         cache,
		logger:        logger,
		metrics:       metrics,
		tracer:        tracer,
		ttl:           10 * time.Second,
		defaultPrefix: guilddb.DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	ctx context.Context,
	s *GuildService,
	operationName string,
	guildID int64,
	op func(ctx context.Context) (T, error),
) (T, error) {
	return telemetry.Run(ctx, telemetry.Observer{
		Service:  "GuildService",
		Logger:   s.logger,
		Tracer:   s.tracer,
		Metrics:  s.metrics,
		Expected: isBusinessError,
	}, operationName, []attribute.KeyValue{attribute.Int64("guild_id", guildID)}, op)
}
