package guildservice

import (
	"context"
	"errors"
	"strings"

	guilddb "github.com/Black-And-White-Club/xp-bot/app/modules/guild/infrastructure/repositories"
	"github.com/Black-And-White-Club/xp-bot/app/ttlcache"
)

// CreateGuild inserts the guild with the default prefix and caches the row.
// An existing guild yields ErrGuildConflict and leaves the cache untouched.
func (s *GuildService) CreateGuild(ctx context.Context, guildID int64) (*guilddb.Guild, error) {
	return withTelemetry(ctx, s, "CreateGuild", guildID, func(ctx context.Context) (*guilddb.Guild, error) {
		return ttlcache.CreateThrough(ctx, s.cache, ttlcache.GuildKey(guildID), s.ttl,
			func(ctx context.Context) (*guilddb.Guild, error) {
				return s.repo.CreateGuild(ctx, guildID)
			})
	})
}

// GetGuild returns the guild, reading through the cache.
func (s *GuildService) GetGuild(ctx context.Context, guildID int64) (*guilddb.Guild, error) {
	return withTelemetry(ctx, s, "GetGuild", guildID, func(ctx context.Context) (*guilddb.Guild, error) {
		return s.getGuild(ctx, guildID)
	})
}

func (s *GuildService) getGuild(ctx context.Context, guildID int64) (*guilddb.Guild, error) {
	return ttlcache.ReadThrough(ctx, s.cache, ttlcache.GuildKey(guildID), s.ttl,
		func(ctx context.Context) (*guilddb.Guild, error) {
			return s.repo.GetGuild(ctx, guildID)
		})
}

// GetGuildPrefix returns the guild's command prefix, reading through the
// cache. Unknown guilds yield ErrGuildNotFound and nothing is cached.
func (s *GuildService) GetGuildPrefix(ctx context.Context, guildID int64) (string, error) {
	return withTelemetry(ctx, s, "GetGuildPrefix", guildID, func(ctx context.Context) (string, error) {
		guild, err := s.getGuild(ctx, guildID)
		if err != nil {
			return "", err
		}
		return guild.Prefix, nil
	})
}

// ResolvePrefix returns the prefix the command layer should match messages
// against. Unknown guilds use the default prefix; no row is created for them.
func (s *GuildService) ResolvePrefix(ctx context.Context, guildID int64) (string, error) {
	return withTelemetry(ctx, s, "ResolvePrefix", guildID, func(ctx context.Context) (string, error) {
		guild, err := s.getGuild(ctx, guildID)
		if errors.Is(err, guilddb.ErrNotFound) {
			return s.defaultPrefix, nil
		}
		if err != nil {
			return "", err
		}
		return guild.Prefix, nil
	})
}

// SetGuildPrefix upserts the guild's prefix. The cached snapshot is removed
// before the write and replaced with the stored row after it.
func (s *GuildService) SetGuildPrefix(ctx context.Context, guildID int64, prefix string) (*guilddb.Guild, error) {
	return withTelemetry(ctx, s, "SetGuildPrefix", guildID, func(ctx context.Context) (*guilddb.Guild, error) {
		if strings.TrimSpace(prefix) == "" {
			return nil, ErrInvalidPrefix
		}
		return ttlcache.WriteThrough(ctx, s.cache, ttlcache.GuildKey(guildID), s.ttl,
			func(ctx context.Context) (*guilddb.Guild, error) {
				return s.repo.SetGuildPrefix(ctx, guildID, prefix)
			})
	})
}
