package userservice

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	userdb "github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/xp-bot/app/shared/opmetrics"
	"github.com/Black-And-White-Club/xp-bot/app/shared/telemetry"
	"github.com/Black-And-White-Club/xp-bot/app/ttlcache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	DefaultMinMessageXP     = 15
	DefaultMaxMessageXP     = 25
	DefaultLeaderboardLimit = 10
)

// UserService implements the Service interface.
type UserService struct {
	repo     userdb.Repository
	cache    *ttlcache.Cache
	cooldown Cooldown
	logger   *slog.Logger
	metrics  opmetrics.OperationMetrics
	grants   *GrantMetrics
	tracer   trace.Tracer

	ttl   time.Duration
	minXP int64
	maxXP int64
	// randN returns a uniform value in [0, n).
	randN func(n int64) int64
}

// Option configures a UserService.
type Option func(*UserService)

// WithTTL sets how long guild user snapshots stay cached.
func WithTTL(ttl time.Duration) Option {
	return func(s *UserService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMessageXPRange sets the inclusive range of XP a message grants.
func WithMessageXPRange(minXP, maxXP int64) Option {
	return func(s *UserService) {
		if minXP >= 0 && minXP <= maxXP {
			s.minXP, s.maxXP = minXP, maxXP
		}
	}
}

// WithRandom replaces the random source used to draw message XP.
func WithRandom(randN func(n int64) int64) Option {
	return func(s *UserService) {
		if randN != nil {
			s.randN = randN
		}
	}
}

// WithGrantMetrics records message XP outcomes.
func WithGrantMetrics(m *GrantMetrics) Option {
	return func(s *UserService) { s.grants = m }
}

// NewUserService creates a new UserService. A nil cache runs store-only; a nil
// cooldown disables rate limiting.
func NewUserService(
	repo userdb.Repository,
	cache *ttlcache.Cache,
	cooldown Cooldown,
	logger *slog.Logger,
	metrics opmetrics.OperationMetrics,
	tracer trace.Tracer,
	opts ...Option,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = opmetrics.NoOp{}
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("userservice")
	}
	s := &UserService{
		repo:     repo,
		cache:    cache,
		cooldown: cooldown,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		ttl:      10 * time.Second,
		minXP:    DefaultMinMessageXP,
		maxXP:    DefaultMaxMessageXP,
		randN:    rand.Int64N,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	ctx context.Context,
	s *UserService,
	operationName string,
	userID, guildID int64,
	op func(ctx context.Context) (T, error),
) (T, error) {
	attrs := []attribute.KeyValue{attribute.Int64("guild_id", guildID)}
	if userID != 0 {
		attrs = append(attrs, attribute.Int64("user_id", userID))
	}
	return telemetry.Run(ctx, telemetry.Observer{
		Service:  "UserService",
		Logger:   s.logger,
		Tracer:   s.tracer,
		Metrics:  s.metrics,
		Expected: isBusinessError,
	}, operationName, attrs, op)
}
