package userservice

import (
	"context"
	"errors"

	"github.com/Black-And-White-Club/xp-bot/app/shared/attr"
)

// SkipReason explains why a message earned no XP.
type SkipReason string

const (
	SkipNone     SkipReason = ""
	SkipCooldown SkipReason = "cooldown"
	SkipBlocked  SkipReason = "blocked"
)

// Grant is the outcome of GrantMessageXP.
type Grant struct {
	UserID  int64
	GuildID int64
	Skipped SkipReason

	Amount        int64
	PreviousXP    int64
	CurrentXP     int64
	PreviousLevel int64
	CurrentLevel  int64
	LeveledUp     bool
}

// GrantMessageXP awards a random amount of XP for a chat message. Pairs on
// cooldown and blocked users are skipped without writing. The cooldown is
// marked before the write, so a failed write still costs the user one window.
func (s *UserService) GrantMessageXP(ctx context.Context, userID, guildID int64) (Grant, error) {
	if attr.CorrelationID(ctx) == "" {
		ctx = attr.WithCorrelationID(ctx, "")
	}
	grant, err := withTelemetry(ctx, s, "GrantMessageXP", userID, guildID, func(ctx context.Context) (Grant, error) {
		return s.grantMessageXP(ctx, userID, guildID)
	})
	if err == nil {
		s.grants.record(grant)
	}
	return grant, err
}

func (s *UserService) grantMessageXP(ctx context.Context, userID, guildID int64) (Grant, error) {
	grant := Grant{UserID: userID, GuildID: guildID}

	if s.cooldown != nil && s.cooldown.CheckAndMark(userID, guildID) {
		grant.Skipped = SkipCooldown
		return grant, nil
	}

	user, err := s.getGuildUser(ctx, userID, guildID)
	switch {
	case err == nil && user.Blocked:
		grant.Skipped = SkipBlocked
		return grant, nil
	case err != nil && !errors.Is(err, ErrUserNotFound):
		return grant, err
	}

	amount := s.drawMessageXP()
	saved, err := s.addGuildUserXP(ctx, userID, guildID, amount)
	if err != nil {
		return grant, err
	}

	grant.Amount = amount
	grant.CurrentXP = saved.XP
	grant.PreviousXP = saved.XP - amount
	grant.PreviousLevel = XPToLevel(grant.PreviousXP)
	grant.CurrentLevel = XPToLevel(grant.CurrentXP)
	grant.LeveledUp = grant.CurrentLevel != grant.PreviousLevel

	if grant.LeveledUp {
		s.logger.InfoContext(ctx, "User leveled up",
			attr.ExtractCorrelationID(ctx),
			attr.UserID(userID),
			attr.GuildID(guildID),
			attr.Int64("level", grant.CurrentLevel),
		)
	}
	return grant, nil
}

// drawMessageXP returns a uniform value in [minXP, maxXP].
func (s *UserService) drawMessageXP() int64 {
	return s.minXP + s.randN(s.maxXP-s.minXP+1)
}
