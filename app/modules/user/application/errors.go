package userservice

import (
	"errors"

	userdb "github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/repositories"
)

// Store sentinels re-exported so callers compare against a single package.
var (
	ErrUserNotFound     = userdb.ErrNotFound
	ErrUserConflict     = userdb.ErrConflict
	ErrStoreUnavailable = userdb.ErrStoreUnavailable
)

// ErrNegativeXP is returned when a set, create, or add would store negative XP.
var ErrNegativeXP = errors.New("xp must not be negative")

func isBusinessError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrUserConflict) ||
		errors.Is(err, ErrNegativeXP)
}
