package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"testing"

	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/uptrace/bun"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Black-And-White-Club/xp-bot/app/ttlcache"
	"github.com/Black-And-White-Club/xp-bot/config"
	"github.com/Black-And-White-Club/xp-bot/db/bundb"
	"github.com/Black-And-White-Club/xp-bot/integration_tests/containers"
)

// TestEnvironment holds the containers and connections shared by the
// integration suites of one package.
type TestEnvironment struct {
	Ctx            context.Context
	CancelContext  context.CancelFunc
	PgContainer    *tcpostgres.PostgresContainer
	RedisContainer *tcredis.RedisContainer
	DB             *bun.DB
	DBService      *bundb.DBService
	Redis          *ttlcache.RedisBackend
	Config         *config.Config
}

// NewTestEnvironment starts Postgres and Redis, runs every module migration,
// and connects to both.
func NewTestEnvironment(t *testing.T) (*TestEnvironment, error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{Ctx: ctx, CancelContext: cancel}

	if err := env.setupContainers(ctx); err != nil {
		env.Cleanup()
		return nil, err
	}
	return env, nil
}

func (env *TestEnvironment) setupContainers(ctx context.Context) error {
	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer

	redisContainer, redisURL, err := containers.SetupRedisContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup redis container: %w", err)
	}
	env.RedisContainer = redisContainer

	sqlDB, err := sql.Open("pgx", pgConnStr)
	if err != nil {
		return fmt.Errorf("failed to open sql DB connection: %w", err)
	}
	env.DB = bundb.BunDB(sqlDB)
	env.DBService = bundb.NewDBService(env.DB)

	if err := env.DBService.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	backend, err := ttlcache.NewRedisBackend(redisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	env.Redis = backend

	env.Config = &config.Config{
		Postgres: config.PostgresConfig{DSN: pgConnStr},
		Redis:    config.RedisConfig{URL: redisURL},
	}
	return nil
}

// Reset truncates every table and flushes the cache.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	if err := TruncateTables(ctx, env.DB, "guilds", "users"); err != nil {
		return err
	}
	if env.Redis != nil {
		if err := env.Redis.FlushDB(ctx); err != nil {
			return fmt.Errorf("failed to flush redis: %w", err)
		}
	}
	return nil
}

// Cleanup closes connections and terminates the containers.
func (env *TestEnvironment) Cleanup() {
	if env.CancelContext != nil {
		env.CancelContext()
	}
	if env.Redis != nil {
		_ = env.Redis.Close()
	}
	if env.DB != nil {
		_ = env.DB.Close()
	}
	// Use context.Background() for termination as the original context is cancelled
	if env.RedisContainer != nil {
		if err := env.RedisContainer.Terminate(context.Background()); err != nil {
			log.Printf("Error terminating Redis container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(context.Background()); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
}

// TruncateTables empties tables and resets their identity sequences.
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = fmt.Sprintf("%q", table)
	}
	query := "TRUNCATE TABLE " + strings.Join(quoted, ", ") + " RESTART IDENTITY CASCADE"
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables %v: %w", tables, err)
	}
	return nil
}

// SkipIfShort skips container-backed tests under -short.
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed integration test in short mode")
	}
}

// TestWriter adapts testing.T to io.Writer for slog handlers.
type TestWriter struct {
	T *testing.T
}

func (tw TestWriter) Write(p []byte) (n int, err error) {
	tw.T.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
