package userservice

import (
	"context"

	userdb "github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/repositories"
)

// Service is the guild user side of the coherence layer plus the XP features
// built on it.
type Service interface {
	CreateGuildUser(ctx context.Context, userID, guildID int64) (*userdb.GuildUser, error)
	CreateGuildUserWithXP(ctx context.Context, userID, guildID, xp int64) (*userdb.GuildUser, error)
	GetGuildUser(ctx context.Context, userID, guildID int64) (*userdb.GuildUser, error)
	SetGuildUserXP(ctx context.Context, userID, guildID, xp int64) (*userdb.GuildUser, error)
	AddGuildUserXP(ctx context.Context, userID, guildID, delta int64) (*userdb.GuildUser, error)

	// GetGuildUsers and TopNGuildUserXP always read the store.
	GetGuildUsers(ctx context.Context, guildID int64) ([]*userdb.GuildUser, error)
	TopNGuildUserXP(ctx context.Context, guildID int64, n int) ([]*userdb.GuildUser, error)

	GetRank(ctx context.Context, userID, guildID int64) (Rank, error)
	Leaderboard(ctx context.Context, guildID int64, n int) ([]LeaderboardEntry, error)
	GrantMessageXP(ctx context.Context, userID, guildID int64) (Grant, error)
}

// Cooldown decides whether a (user, guild) pair may be granted XP now.
type Cooldown interface {
	CheckAndMark(userID, guildID int64) (onCooldown bool)
}
