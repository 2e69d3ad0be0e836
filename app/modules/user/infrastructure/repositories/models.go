package userdb

import (
	"time"

	"github.com/uptrace/bun"
)

// GuildUser is a user's XP standing inside one guild. It doubles as the
// snapshot stored in the TTL cache.
type GuildUser struct {
	bun.BaseModel `bun:"table:users,alias:gu"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id,notnull,unique:users_user_id_guild_id_key" json:"user_id"`
	GuildID       int64     `bun:"guild_id,notnull,unique:users_user_id_guild_id_key" json:"guild_id"`
	XP            int64     `bun:"xp,notnull,default:0" json:"xp"`
	Blocked       bool      `bun:"blocked,notnull,default:false" json:"blocked"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
