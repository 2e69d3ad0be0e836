package guild

import (
	"context"
	"log/slog"
	"sync"

	guildservice "github.com/Black-And-White-Club/xp-bot/app/modules/guild/application"
	guilddb "github.com/Black-And-White-Club/xp-bot/app/modules/guild/infrastructure/repositories"
	"github.com/Black-And-White-Club/xp-bot/app/shared/observability"
	"github.com/Black-And-White-Club/xp-bot/app/ttlcache"
	"github.com/Black-And-White-Club/xp-bot/config"
)

// Module represents the guild module.
type Module struct {
	GuildService guildservice.Service
	logger       *slog.Logger

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	closed     bool
}

// NewGuildModule creates a new instance of the Guild module.
func NewGuildModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	guildDB guilddb.Repository,
	cache *ttlcache.Cache,
) *Module {
	logger := obs.Logger.With(slog.String("module", "guild"))
	logger.InfoContext(ctx, "guild.NewGuildModule called")

	service := guildservice.NewGuildService(
		guildDB,
		cache,
		logger,
		obs.Metrics,
		obs.Tracer,
		guildservice.WithTTL(cfg.Cache.GuildTTL.Std()),
		guildservice.WithDefaultPrefix(cfg.Guild.DefaultPrefix),
	)

	return &Module{
		GuildService: service,
		logger:       logger,
	}
}

// Run blocks until ctx is canceled or Close is called. The guild module has
// no background work; Run exists so App drives every module the same way.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting guild module")

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

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Guild module goroutine stopped")
}

// Close stops the guild module.
func (m *Module) Close() error {
	m.logger.Info("Stopping guild module")
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
