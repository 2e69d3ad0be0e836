package guilddb

import (
	"errors"

	"github.com/Black-And-White-Club/xp-bot/db/pgerr"
)

// Sentinel errors for the guild repository layer.
var (
	// ErrNotFound indicates no row exists for the guild.
	ErrNotFound = errors.New("guild record not found")

	// ErrConflict indicates a create hit the guild_id uniqueness constraint.
	ErrConflict = errors.New("guild record already exists")

	// ErrStoreUnavailable is the shared infrastructure failure sentinel.
	ErrStoreUnavailable = pgerr.ErrStoreUnavailable
)
