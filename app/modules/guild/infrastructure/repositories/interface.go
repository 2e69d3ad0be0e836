package guilddb

import (
	"context"
)

// Repository defines the contract for guild persistence.
// All methods are context-aware for cancellation and timeout propagation.
//
// Error semantics:
//   - ErrNotFound: no row for the guild (GetGuild)
//   - ErrConflict: the guild already exists (CreateGuild)
//   - ErrStoreUnavailable: connection, timeout, or query failures
type Repository interface {
	// CreateGuild inserts a guild with DefaultPrefix.
	CreateGuild(ctx context.Context, guildID int64) (*Guild, error)

	// GetGuild retrieves a guild by its platform ID.
	GetGuild(ctx context.Context, guildID int64) (*Guild, error)

	// SetGuildPrefix inserts the guild with prefix, or updates the prefix of
	// the existing row, in a single statement.
	SetGuildPrefix(ctx context.Context, guildID int64, prefix string) (*Guild, error)
}
