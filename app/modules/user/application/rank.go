package userservice

import (
	"context"

	userdb "github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/repositories"
)

// Rank is a user's standing inside one guild.
type Rank struct {
	User          *userdb.GuildUser
	Level         int64
	XPToNextLevel int64
}

// LeaderboardEntry is one line of a guild leaderboard. Position starts at 1.
type LeaderboardEntry struct {
	Position int
	UserID   int64
	XP       int64
	Level    int64
}

// GetRank reads the user through the cache and derives their level.
func (s *UserService) GetRank(ctx context.Context, userID, guildID int64) (Rank, error) {
	return withTelemetry(ctx, s, "GetRank", userID, guildID, func(ctx context.Context) (Rank, error) {
		user, err := s.getGuildUser(ctx, userID, guildID)
		if err != nil {
			return Rank{}, err
		}
		return Rank{
			User:          user,
			Level:         XPToLevel(user.XP),
			XPToNextLevel: XPToNextLevel(user.XP),
		}, nil
	})
}

// Leaderboard returns the guild's top n users. n <= 0 uses DefaultLeaderboardLimit.
func (s *UserService) Leaderboard(ctx context.Context, guildID int64, n int) ([]LeaderboardEntry, error) {
	if n <= 0 {
		n = DefaultLeaderboardLimit
	}
	return withTelemetry(ctx, s, "Leaderboard", 0, guildID, func(ctx context.Context) ([]LeaderboardEntry, error) {
		users, err := s.repo.TopNGuildUserXP(ctx, guildID, n)
		if err != nil {
			return nil, err
		}
		entries := make([]LeaderboardEntry, 0, len(users))
		for i, u := range users {
			entries = append(entries, LeaderboardEntry{
				Position: i + 1,
				UserID:   u.UserID,
				XP:       u.XP,
				Level:    XPToLevel(u.XP),
			})
		}
		return entries, nil
	})
}
