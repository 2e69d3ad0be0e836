package guilddb

import (
	"context"

	"github.com/Black-And-White-Club/xp-bot/db/pgerr"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new guild repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) CreateGuild(ctx context.Context, guildID int64) (*Guild, error) {
	guild := &Guild{GuildID: guildID, Prefix: DefaultPrefix}
	err := r.db.NewInsert().
		Model(guild).
		Returning("*").
		Scan(ctx)
	if err != nil {
		return nil, pgerr.Classify("guilddb.CreateGuild", err, nil, ErrConflict)
	}
	return guild, nil
}

func (r *Impl) GetGuild(ctx context.Context, guildID int64) (*Guild, error) {
	guild := new(Guild)
	err := r.db.NewSelect().
		Model(guild).
		Where("guild_id = ?", guildID).
		Scan(ctx)
	if err != nil {
		return nil, pgerr.Classify("guilddb.GetGuild", err, ErrNotFound, nil)
	}
	return guild, nil
}

func (r *Impl) SetGuildPrefix(ctx context.Context, guildID int64, prefix string) (*Guild, error) {
	guild := &Guild{GuildID: guildID, Prefix: prefix}
	err := r.db.NewInsert().
		Model(guild).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("prefix = EXCLUDED.prefix").
		Set("updated_at = current_timestamp").
		Returning("*").
		Scan(ctx)
	if err != nil {
		return nil, pgerr.Classify("guilddb.SetGuildPrefix", err, nil, nil)
	}
	return guild, nil
}
