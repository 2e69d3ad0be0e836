package guildservice

import (
	"errors"

	guilddb "github.com/Black-And-White-Club/xp-bot/app/modules/guild/infrastructure/repositories"
)

// Store sentinels re-exported so callers compare against a single package.
var (
	ErrGuildNotFound    = guilddb.ErrNotFound
	ErrGuildConflict    = guilddb.ErrConflict
	ErrStoreUnavailable = guilddb.ErrStoreUnavailable
)

// ErrInvalidPrefix is returned by SetGuildPrefix for an empty or blank prefix.
var ErrInvalidPrefix = errors.New("guild prefix must not be blank")

func isBusinessError(err error) bool {
	return errors.Is(err, ErrGuildNotFound) ||
		errors.Is(err, ErrGuildConflict) ||
		errors.Is(err, ErrInvalidPrefix)
}
