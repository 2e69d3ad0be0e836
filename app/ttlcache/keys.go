package ttlcache

import (
	"fmt"
	"strings"
)

const (
	KindGuild = "guilds"
	KindUser  = "users"
)

// GuildKey is the cache key for a guild snapshot.
func GuildKey(guildID int64) string {
	return fmt.Sprintf("%s:%d", KindGuild, guildID)
}

// UserKey is the cache key for a guild user snapshot. The guild comes first so
// all of a guild's users share a prefix.
func UserKey(guildID, userID int64) string {
	return fmt.Sprintf("%s:%d:%d", KindUser, guildID, userID)
}

// kindOf returns the namespace of key, used as a metrics label.
func kindOf(key string) string {
	kind, _, found := strings.Cut(key, ":")
	if !found {
		return "unknown"
	}
	return kind
}
