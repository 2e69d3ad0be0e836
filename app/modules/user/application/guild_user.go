package userservice

import (
	"context"

	userdb "github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/xp-bot/app/ttlcache"
)

// CreateGuildUser creates the (user, guild) row with zero XP.
func (s *UserService) CreateGuildUser(ctx context.Context, userID, guildID int64) (*userdb.GuildUser, error) {
	return s.CreateGuildUserWithXP(ctx, userID, guildID, 0)
}

// CreateGuildUserWithXP creates the (user, guild) row and caches it. An
// existing row yields ErrUserConflict and leaves the cache untouched.
func (s *UserService) CreateGuildUserWithXP(ctx context.Context, userID, guildID, xp int64) (*userdb.GuildUser, error) {
	return withTelemetry(ctx, s, "CreateGuildUser", userID, guildID, func(ctx context.Context) (*userdb.GuildUser, error) {
		if xp < 0 {
			return nil, ErrNegativeXP
		}
		return ttlcache.CreateThrough(ctx, s.cache, ttlcache.UserKey(guildID, userID), s.ttl,
			func(ctx context.Context) (*userdb.GuildUser, error) {
				return s.repo.CreateGuildUser(ctx, userID, guildID, xp)
			})
	})
}

// GetGuildUser returns the (user, guild) row, reading through the cache.
func (s *UserService) GetGuildUser(ctx context.Context, userID, guildID int64) (*userdb.GuildUser, error) {
	return withTelemetry(ctx, s, "GetGuildUser", userID, guildID, func(ctx context.Context) (*userdb.GuildUser, error) {
		return s.getGuildUser(ctx, userID, guildID)
	})
}

func (s *UserService) getGuildUser(ctx context.Context, userID, guildID int64) (*userdb.GuildUser, error) {
	return ttlcache.ReadThrough(ctx, s.cache, ttlcache.UserKey(guildID, userID), s.ttl,
		func(ctx context.Context) (*userdb.GuildUser, error) {
			return s.repo.GetGuildUser(ctx, userID, guildID)
		})
}

// SetGuildUserXP overwrites XP on an existing row. It never creates one.
func (s *UserService) SetGuildUserXP(ctx context.Context, userID, guildID, xp int64) (*userdb.GuildUser, error) {
	return withTelemetry(ctx, s, "SetGuildUserXP", userID, guildID, func(ctx context.Context) (*userdb.GuildUser, error) {
		if xp < 0 {
			return nil, ErrNegativeXP
		}
		return ttlcache.WriteThrough(ctx, s.cache, ttlcache.UserKey(guildID, userID), s.ttl,
			func(ctx context.Context) (*userdb.GuildUser, error) {
				return s.repo.SetGuildUserXP(ctx, userID, guildID, xp)
			})
	})
}

// AddGuildUserXP adds delta to the row's XP, creating the row if needed.
// A negative delta yields ErrNegativeXP without touching cache or store.
func (s *UserService) AddGuildUserXP(ctx context.Context, userID, guildID, delta int64) (*userdb.GuildUser, error) {
	return withTelemetry(ctx, s, "AddGuildUserXP", userID, guildID, func(ctx context.Context) (*userdb.GuildUser, error) {
		if delta < 0 {
			return nil, ErrNegativeXP
		}
		return s.addGuildUserXP(ctx, userID, guildID, delta)
	})
}

func (s *UserService) addGuildUserXP(ctx context.Context, userID, guildID, delta int64) (*userdb.GuildUser, error) {
	return ttlcache.WriteThrough(ctx, s.cache, ttlcache.UserKey(guildID, userID), s.ttl,
		func(ctx context.Context) (*userdb.GuildUser, error) {
			return s.repo.AddGuildUserXP(ctx, userID, guildID, delta)
		})
}

// GetGuildUsers returns every row for the guild in no particular order.
func (s *UserService) GetGuildUsers(ctx context.Context, guildID int64) ([]*userdb.GuildUser, error) {
	return withTelemetry(ctx, s, "GetGuildUsers", 0, guildID, func(ctx context.Context) ([]*userdb.GuildUser, error) {
		return s.repo.GetGuildUsers(ctx, guildID)
	})
}

// TopNGuildUserXP returns up to n rows by XP descending.
func (s *UserService) TopNGuildUserXP(ctx context.Context, guildID int64, n int) ([]*userdb.GuildUser, error) {
	return withTelemetry(ctx, s, "TopNGuildUserXP", 0, guildID, func(ctx context.Context) ([]*userdb.GuildUser, error) {
		return s.repo.TopNGuildUserXP(ctx, guildID, n)
	})
}
