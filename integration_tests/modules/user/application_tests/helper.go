package userintegrationtests

import (
	"context"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	userservice "github.com/Black-And-White-Club/xp-bot/app/modules/user/application"
	"github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/cooldown"
	userdb "github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/xp-bot/app/shared/opmetrics"
	"github.com/Black-And-White-Club/xp-bot/app/ttlcache"
	"github.com/Black-And-White-Club/xp-bot/integration_tests/testutils"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx      context.Context
	DB       userdb.Repository
	BunDB    *bun.DB
	Cache    *ttlcache.Cache
	Cooldown *cooldown.Tracker
	Service  *userservice.UserService
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()
	testutils.SkipIfShort(t)

	testEnvOnce.Do(func() {
		log.Println("Initializing user test environment...")
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})
	if testEnvErr != nil {
		t.Fatalf("User test environment initialization failed: %v", testEnvErr)
	}
	return testEnv
}

func SetupTestUserService(t *testing.T, opts ...userservice.Option) TestDeps {
	t.Helper()
	env := GetTestEnv(t)

	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resetCancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	testLogger := slog.New(slog.NewTextHandler(testutils.TestWriter{T: t}, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	cache := ttlcache.New(env.Redis, testLogger, nil)
	tracker := cooldown.New(time.Minute, 0)
	service := userservice.NewUserService(
		env.DBService.UserDB,
		cache,
		tracker,
		testLogger,
		opmetrics.NoOp{},
		noop.NewTracerProvider().Tracer("test_user_service"),
		opts...,
	)

	return TestDeps{
		Ctx:      env.Ctx,
		DB:       env.DBService.UserDB,
		BunDB:    env.DB,
		Cache:    cache,
		Cooldown: tracker,
		Service:  service,
	}
}
