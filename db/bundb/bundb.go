// Package bundb owns the Postgres pool and the repositories built on it.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	guilddb "github.com/Black-And-White-Club/xp-bot/app/modules/guild/infrastructure/repositories"
	guildmigrations "github.com/Black-And-White-Club/xp-bot/app/modules/guild/infrastructure/repositories/migrations"
	userdb "github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/repositories"
	usermigrations "github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/xp-bot/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

const pingTimeout = 5 * time.Second

// DBService holds the repositories sharing one connection pool.
type DBService struct {
	GuildDB guilddb.Repository
	UserDB  userdb.Repository
	db      *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// NewBunDBService connects to Postgres and builds the repositories.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewDBService(BunDB(sqldb)), nil
}

// NewDBService builds the repositories over an existing bun.DB.
func NewDBService(db *bun.DB) *DBService {
	db.RegisterModel((*guilddb.Guild)(nil), (*userdb.GuildUser)(nil))
	return &DBService{
		GuildDB: guilddb.NewRepository(db),
		UserDB:  userdb.NewRepository(db),
		db:      db,
	}
}

// Migrators returns one migrator per module, in dependency order.
func Migrators(db *bun.DB) []NamedMigrator {
	return []NamedMigrator{
		{Name: "guild", Migrator: migrate.NewMigrator(db, guildmigrations.Migrations)},
		{Name: "user", Migrator: migrate.NewMigrator(db, usermigrations.Migrations)},
	}
}

// NamedMigrator pairs a module name with its migrator.
type NamedMigrator struct {
	Name     string
	Migrator *migrate.Migrator
}

// Migrate creates the migration tables if needed and applies every pending
// migration.
func (dbService *DBService) Migrate(ctx context.Context) error {
	for _, m := range Migrators(dbService.db) {
		if err := m.Migrator.Init(ctx); err != nil {
			return fmt.Errorf("init %s migrations: %w", m.Name, err)
		}
		if _, err := m.Migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("run %s migrations: %w", m.Name, err)
		}
	}
	return nil
}

// Ping checks the pool can reach the server.
func (dbService *DBService) Ping(ctx context.Context) error {
	return dbService.db.PingContext(ctx)
}

// Close releases the pool.
func (dbService *DBService) Close() error {
	return dbService.db.Close()
}

// BunDB returns a new bun.DB for given sql.DB connection pool.
func BunDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
