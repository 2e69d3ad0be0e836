package guild

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Black-And-White-Club/xp-bot/app/shared/observability"
	"github.com/Black-And-White-Club/xp-bot/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestModule() *Module {
	cfg := &config.Config{
		Cache: config.CacheConfig{GuildTTL: config.Duration(time.Second)},
		Guild: config.GuildConfig{DefaultPrefix: "~"},
	}
	return NewGuildModule(context.Background(), cfg, observability.New(cfg.Observability), nil, nil)
}

func TestGuildModule_Lifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("close stops run", func(t *testing.T) {
		m := newTestModule()
		require.NotNil(t, m.GuildService)

		var wg sync.WaitGroup
		wg.Add(1)
		go m.Run(context.Background(), &wg)

		require.NoError(t, m.Close())
		wg.Wait()
	})

	t.Run("cancel stops run", func(t *testing.T) {
		m := newTestModule()
		ctx, cancel := context.WithCancel(context.Background())

		var wg sync.WaitGroup
		wg.Add(1)
		go m.Run(ctx, &wg)

		cancel()
		wg.Wait()
	})
}
