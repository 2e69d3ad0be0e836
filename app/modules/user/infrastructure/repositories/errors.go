package userdb

import (
	"errors"

	"github.com/Black-And-White-Club/xp-bot/db/pgerr"
)

// Sentinel errors for the user repository layer.
// These indicate infrastructure-level outcomes (presence/absence of rows), not
// domain validation failures. Service/business layers decide how to map these
// into domain errors or user-visible messages.
var (
	// ErrNotFound indicates the requested (user, guild) row does not exist.
	ErrNotFound = errors.New("guild user record not found")

	// ErrConflict indicates a create hit the (user_id, guild_id) uniqueness constraint.
	ErrConflict = errors.New("guild user record already exists")

	// ErrStoreUnavailable is the shared infrastructure failure sentinel.
	ErrStoreUnavailable = pgerr.ErrStoreUnavailable
)
