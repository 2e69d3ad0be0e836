package user

import (
	"context"
	"sync"
	"testing"
	"time"

	userdb "github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/xp-bot/app/shared/observability"
	"github.com/Black-And-White-Club/xp-bot/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testConfig(window time.Duration) *config.Config {
	return &config.Config{
		Cache:    config.CacheConfig{UserTTL: config.Duration(time.Second)},
		Cooldown: config.CooldownConfig{Window: config.Duration(window)},
		XP:       config.XPConfig{MinMessageXP: 15, MaxMessageXP: 25},
	}
}

func TestUserModule_RunSweepsAndStopsOnClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig(20 * time.Millisecond)
	m := NewUserModule(context.Background(), cfg, observability.New(cfg.Observability), userdb.NewFakeRepository(), nil)
	require.NotNil(t, m.UserService)
	require.Equal(t, 20*time.Millisecond, m.Cooldown.Window())

	var wg sync.WaitGroup
	wg.Add(1)
	go m.Run(context.Background(), &wg)

	assert.False(t, m.Cooldown.CheckAndMark(1, 2))
	assert.Equal(t, 1, m.Cooldown.Len())
	assert.Eventually(t, func() bool { return m.Cooldown.Len() == 0 }, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Close())
	wg.Wait()
}

func TestUserModule_CloseBeforeRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig(time.Minute)
	m := NewUserModule(context.Background(), cfg, observability.New(cfg.Observability), userdb.NewFakeRepository(), nil)
	require.NoError(t, m.Close())

	var wg sync.WaitGroup
	wg.Add(1)
	go m.Run(context.Background(), &wg)
	wg.Wait()
}

func TestUserModule_RunStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig(time.Minute)
	m := NewUserModule(context.Background(), cfg, observability.New(cfg.Observability), userdb.NewFakeRepository(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go m.Run(ctx, &wg)

	cancel()
	wg.Wait()
}
