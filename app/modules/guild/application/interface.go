package guildservice

import (
	"context"

	guilddb "github.com/Black-And-White-Club/xp-bot/app/modules/guild/infrastructure/repositories"
)

// Service is the guild side of the coherence layer. Reads go through the TTL
// cache; writes invalidate the cache before touching the store.
type Service interface {
	CreateGuild(ctx context.Context, guildID int64) (*guilddb.Guild, error)
	GetGuild(ctx context.Context, guildID int64) (*guilddb.Guild, error)

	GetGuildPrefix(ctx context.Context, guildID int64) (string, error)
	// ResolvePrefix falls back to the default prefix when the guild has no row.
	ResolvePrefix(ctx context.Context, guildID int64) (string, error)
	SetGuildPrefix(ctx context.Context, guildID int64, prefix string) (*guilddb.Guild, error)
}
