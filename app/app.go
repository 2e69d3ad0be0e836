package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/xp-bot/app/modules/guild"
	"github.com/Black-And-White-Club/xp-bot/app/modules/user"
	"github.com/Black-And-White-Club/xp-bot/app/shared/attr"
	"github.com/Black-And-White-Club/xp-bot/app/shared/observability"
	"github.com/Black-And-White-Club/xp-bot/app/ttlcache"
	"github.com/Black-And-White-Club/xp-bot/config"
	"github.com/Black-And-White-Club/xp-bot/db/bundb"
)

const (
	defaultMetricsAddress = ":8080"
	shutdownTimeout       = 10 * time.Second
	memorySweepInterval   = time.Minute
)

// App holds the wired services and their shared infrastructure.
type App struct {
	Config      *config.Config
	Obs         *observability.Observability
	DB          *bundb.DBService
	Cache       *ttlcache.Cache
	GuildModule *guild.Module
	UserModule  *user.Module

	backend ttlcache.Backend
	server  *http.Server
}

// NewApp connects to Postgres and the cache backend and builds the modules.
// An empty redis URL selects the in-process cache.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(cfg.Observability)
	logger := obs.Logger

	db, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	var backend ttlcache.Backend
	if cfg.Redis.URL != "" {
		redisBackend, err := ttlcache.NewRedisBackend(cfg.Redis.URL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize redis cache: %w", err)
		}
		if err := redisBackend.Ping(ctx); err != nil {
			// The services fall back to the store while redis is down.
			logger.WarnContext(ctx, "Redis not reachable at startup", attr.Error(err))
		}
		backend = redisBackend
		logger.InfoContext(ctx, "Using redis cache backend")
	} else {
		backend = ttlcache.NewMemoryBackend()
		logger.InfoContext(ctx, "Using in-process cache backend")
	}

	cache := ttlcache.New(backend, logger, ttlcache.NewMetrics(obs.Registry))

	app := &App{
		Config:      cfg,
		Obs:         obs,
		DB:          db,
		Cache:       cache,
		GuildModule: guild.NewGuildModule(ctx, cfg, obs, db.GuildDB, cache),
		UserModule:  user.NewUserModule(ctx, cfg, obs, db.UserDB, cache),
		backend:     backend,
	}

	addr := cfg.Observability.MetricsAddress
	if addr == "" {
		addr = defaultMetricsAddress
	}
	app.server = &http.Server{
		Addr:              addr,
		Handler:           app.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return app, nil
}

// Run starts the modules and the operational HTTP server and blocks until
// ctx is canceled or the server fails.
func (app *App) Run(ctx context.Context) error {
	logger := app.Obs.Logger

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go app.GuildModule.Run(runCtx, &wg)
	go app.UserModule.Run(runCtx, &wg)

	if mem, ok := app.backend.(*ttlcache.MemoryBackend); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sweepMemoryBackend(runCtx, mem, memorySweepInterval)
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.InfoContext(runCtx, "Starting HTTP server", attr.String("address", app.server.Addr))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-runCtx.Done():
	case err, ok := <-serverErr:
		if ok {
			logger.ErrorContext(runCtx, "HTTP server failed", attr.Error(err))
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "HTTP server shutdown failed", attr.Error(err))
	}

	cancel()
	app.GuildModule.Close()
	app.UserModule.Close()
	wg.Wait()

	logger.Info("Application stopped")
	return runErr
}

// Close releases the cache and database connections.
func (app *App) Close() error {
	var errs []error
	if err := app.Cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing cache: %w", err))
	}
	if err := app.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing database: %w", err))
	}
	return errors.Join(errs...)
}

func sweepMemoryBackend(ctx context.Context, mem *ttlcache.MemoryBackend, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mem.Sweep()
		}
	}
}
