package user

import (
	"context"
	"log/slog"
	"sync"
	"time"

	userservice "github.com/Black-And-White-Club/xp-bot/app/modules/user/application"
	"github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/cooldown"
	userdb "github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/xp-bot/app/shared/attr"
	"github.com/Black-And-White-Club/xp-bot/app/shared/observability"
	"github.com/Black-And-White-Club/xp-bot/app/ttlcache"
	"github.com/Black-And-White-Club/xp-bot/config"
)

// Module represents the user module.
type Module struct {
	UserService userservice.Service
	Cooldown    *cooldown.Tracker
	logger      *slog.Logger

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	closed     bool
}

// NewUserModule wires the user service to its cooldown tracker and cache.
func NewUserModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	userDB userdb.Repository,
	cache *ttlcache.Cache,
) *Module {
	logger := obs.Logger.With(slog.String("module", "user"))
	logger.InfoContext(ctx, "user.NewUserModule called",
		attr.String("cooldown", cfg.Cooldown.Window.Std().String()),
		attr.Int("cooldown_max_keys", cfg.Cooldown.MaxKeys),
	)

	tracker := cooldown.New(cfg.Cooldown.Window.Std(), cfg.Cooldown.MaxKeys)
	service := userservice.NewUserService(
		userDB,
		cache,
		tracker,
		logger,
		obs.Metrics,
		obs.Tracer,
		userservice.WithTTL(cfg.Cache.UserTTL.Std()),
		userservice.WithMessageXPRange(int64(cfg.XP.MinMessageXP), int64(cfg.XP.MaxMessageXP)),
		userservice.WithGrantMetrics(userservice.NewGrantMetrics(obs.Registry)),
	)

	return &Module{
		UserService: service,
		Cooldown:    tracker,
		logger:      logger,
	}
}

// Run sweeps expired cooldown markers once per window until ctx is canceled
// or Close is called.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting user module")

	ctx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancelFunc = cancel
	if m.closed {
		cancel()
	}
	m.mu.Unlock()
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	interval := m.Cooldown.Window()
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.InfoContext(ctx, "User module goroutine stopped")
			return
		case <-ticker.C:
			if removed := m.Cooldown.Sweep(); removed > 0 {
				m.logger.DebugContext(ctx, "Swept expired cooldowns",
					attr.Int("removed", removed),
					attr.Int("remaining", m.Cooldown.Len()),
				)
			}
		}
	}
}

// Close stops the user module.
func (m *Module) Close() error {
	m.logger.Info("Stopping user module")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
