package userdb

import (
	"context"

	"github.com/Black-And-White-Club/xp-bot/db/pgerr"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new user repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) CreateGuildUser(ctx context.Context, userID, guildID, xp int64) (*GuildUser, error) {
	user := &GuildUser{UserID: userID, GuildID: guildID, XP: xp}
	err := r.db.NewInsert().
		Model(user).
		Returning("*").
		Scan(ctx)
	if err != nil {
		return nil, pgerr.Classify("userdb.CreateGuildUser", err, nil, ErrConflict)
	}
	return user, nil
}

func (r *Impl) GetGuildUser(ctx context.Context, userID, guildID int64) (*GuildUser, error) {
	user := new(GuildUser)
	err := r.db.NewSelect().
		Model(user).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, pgerr.Classify("userdb.GetGuildUser", err, ErrNotFound, nil)
	}
	return user, nil
}

func (r *Impl) GetGuildUsers(ctx context.Context, guildID int64) ([]*GuildUser, error) {
	var users []*GuildUser
	err := r.db.NewSelect().
		Model(&users).
		Where("guild_id = ?", guildID).
		Scan(ctx)
	if err != nil {
		return nil, pgerr.Classify("userdb.GetGuildUsers", err, nil, nil)
	}
	return users, nil
}

func (r *Impl) SetGuildUserXP(ctx context.Context, userID, guildID, xp int64) (*GuildUser, error) {
	user := new(GuildUser)
	err := r.db.NewUpdate().
		Model(user).
		Set("xp = ?", xp).
		Set("updated_at = current_timestamp").
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Returning("*").
		Scan(ctx)
	if err != nil {
		return nil, pgerr.Classify("userdb.SetGuildUserXP", err, ErrNotFound, nil)
	}
	return user, nil
}

func (r *Impl) AddGuildUserXP(ctx context.Context, userID, guildID, delta int64) (*GuildUser, error) {
	user := &GuildUser{UserID: userID, GuildID: guildID, XP: delta}
	err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (user_id, guild_id) DO UPDATE").
		Set("xp = gu.xp + EXCLUDED.xp").
		Set("updated_at = current_timestamp").
		Returning("*").
		Scan(ctx)
	if err != nil {
		return nil, pgerr.Classify("userdb.AddGuildUserXP", err, nil, nil)
	}
	return user, nil
}

func (r *Impl) TopNGuildUserXP(ctx context.Context, guildID int64, n int) ([]*GuildUser, error) {
	if n <= 0 {
		return []*GuildUser{}, nil
	}
	var users []*GuildUser
	err := r.db.NewSelect().
		Model(&users).
		Where("guild_id = ?", guildID).
		Order("xp DESC", "id ASC").
		Limit(n).
		Scan(ctx)
	if err != nil {
		return nil, pgerr.Classify("userdb.TopNGuildUserXP", err, nil, nil)
	}
	return users, nil
}
