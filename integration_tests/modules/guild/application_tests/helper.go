package guildintegrationtests

import (
	"context"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	guildservice "github.com/Black-And-White-Club/xp-bot/app/modules/guild/application"
	guilddb "github.com/Black-And-White-Club/xp-bot/app/modules/guild/infrastructure/repositories"
	"github.com/Black-And-White-Club/xp-bot/app/shared/opmetrics"
	"github.com/Black-And-White-Club/xp-bot/app/ttlcache"
	"github.com/Black-And-White-Club/xp-bot/integration_tests/testutils"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

// Global variables for the test environment, initialized once.
var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx     context.Context
	DB      guilddb.Repository
	BunDB   *bun.DB
	Cache   *ttlcache.Cache
	Service *guildservice.GuildService
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()
	testutils.SkipIfShort(t)

	testEnvOnce.Do(func() {
		log.Println("Initializing guild test environment...")
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})
	if testEnvErr != nil {
		t.Fatalf("Guild test environment initialization failed: %v", testEnvErr)
	}
	return testEnv
}

func SetupTestGuildService(t *testing.T) TestDeps {
	t.Helper()
	env := GetTestEnv(t)

	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resetCancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	testLogger := slog.New(slog.NewTextHandler(testutils.TestWriter{T: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	cache := ttlcache.New(env.Redis, testLogger, nil)
	service := guildservice.NewGuildService(
		env.DBService.GuildDB,
		cache,
		testLogger,
		opmetrics.NoOp{},
		noop.NewTracerProvider().Tracer("test_guild_service"),
	)

	return TestDeps{
		Ctx:     env.Ctx,
		DB:      env.DBService.GuildDB,
		BunDB:   env.DB,
		Cache:   cache,
		Service: service,
	}
}
