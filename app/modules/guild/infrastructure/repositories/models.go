package guilddb

import (
	"time"

	"github.com/uptrace/bun"
)

// DefaultPrefix is the command prefix a guild gets when its row is created
// without an explicit one.
const DefaultPrefix = "~"

// Guild represents a Discord server's bot settings. It is also the snapshot
// stored in the TTL cache, so its JSON shape is part of the cache format.
type Guild struct {
	bun.BaseModel `bun:"table:guilds,alias:g"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	GuildID       int64     `bun:"guild_id,notnull,unique" json:"guild_id"`
	Prefix        string    `bun:"prefix,notnull,default:'~',type:varchar(32)" json:"prefix"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
