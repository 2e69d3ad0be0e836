package userdb

import (
	"context"
)

// Repository defines the persistence contract for guild-scoped user XP.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (GetGuildUser, SetGuildUserXP)
//   - ErrConflict: the (user, guild) pair already exists (CreateGuildUser)
//   - ErrStoreUnavailable: infrastructure failures
type Repository interface {
	CreateGuildUser(ctx context.Context, userID, guildID, xp int64) (*GuildUser, error)
	GetGuildUser(ctx context.Context, userID, guildID int64) (*GuildUser, error)
	GetGuildUsers(ctx context.Context, guildID int64) ([]*GuildUser, error)

	// SetGuildUserXP overwrites xp on an existing row. It never inserts.
	SetGuildUserXP(ctx context.Context, userID, guildID, xp int64) (*GuildUser, error)

	// AddGuildUserXP adds delta to xp in one INSERT ... ON CONFLICT statement,
	// creating the row with xp = delta when it does not exist yet.
	AddGuildUserXP(ctx context.Context, userID, guildID, delta int64) (*GuildUser, error)

	// TopNGuildUserXP returns up to n rows ordered by xp descending, ties in
	// insertion order.
	TopNGuildUserXP(ctx context.Context, guildID int64, n int) ([]*GuildUser, error)
}
