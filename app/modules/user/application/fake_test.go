package userservice

import (
	"context"
	"sort"
	"sync"

	userdb "github.com/Black-And-White-Club/xp-bot/app/modules/user/infrastructure/repositories"
)

type pairKey struct{ userID, guildID int64 }

// memRepository layers a map-backed store over userdb.FakeRepository so the
// call trace still records every store access.
type memRepository struct {
	*userdb.FakeRepository

	mu     sync.Mutex
	rows   map[pairKey]userdb.GuildUser
	nextID int64
}

func newMemRepository() *memRepository {
	m := &memRepository{
		FakeRepository: userdb.NewFakeRepository(),
		rows:           map[pairKey]userdb.GuildUser{},
	}
	m.CreateGuildUserFn = func(_ context.Context, userID, guildID, xp int64) (*userdb.GuildUser, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		k := pairKey{userID, guildID}
		if _, ok := m.rows[k]; ok {
			return nil, userdb.ErrConflict
		}
		return m.insertLocked(k, xp, false), nil
	}
	m.GetGuildUserFn = func(_ context.Context, userID, guildID int64) (*userdb.GuildUser, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		u, ok := m.rows[pairKey{userID, guildID}]
		if !ok {
			return nil, userdb.ErrNotFound
		}
		return &u, nil
	}
	m.GetGuildUsersFn = func(_ context.Context, guildID int64) ([]*userdb.GuildUser, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		var out []*userdb.GuildUser
		for _, u := range m.rows {
			if u.GuildID == guildID {
				u := u
				out = append(out, &u)
			}
		}
		return out, nil
	}
	m.SetGuildUserXPFn = func(_ context.Context, userID, guildID, xp int64) (*userdb.GuildUser, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		k := pairKey{userID, guildID}
		u, ok := m.rows[k]
		if !ok {
			return nil, userdb.ErrNotFound
		}
		u.XP = xp
		m.rows[k] = u
		return &u, nil
	}
	m.AddGuildUserXPFn = func(_ context.Context, userID, guildID, delta int64) (*userdb.GuildUser, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		k := pairKey{userID, guildID}
		u, ok := m.rows[k]
		if !ok {
			return m.insertLocked(k, delta, false), nil
		}
		u.XP += delta
		m.rows[k] = u
		return &u, nil
	}
	m.TopNGuildUserXPFn = func(ctx context.Context, guildID int64, n int) ([]*userdb.GuildUser, error) {
		users, _ := m.GetGuildUsersFn(ctx, guildID)
		sort.Slice(users, func(i, j int) bool {
			if users[i].XP != users[j].XP {
				return users[i].XP > users[j].XP
			}
			return users[i].ID < users[j].ID
		})
		if n < len(users) {
			users = users[:n]
		}
		return users, nil
	}
	return m
}

func (m *memRepository) insertLocked(k pairKey, xp int64, blocked bool) *userdb.GuildUser {
	m.nextID++
	u := userdb.GuildUser{ID: m.nextID, UserID: k.userID, GuildID: k.guildID, XP: xp, Blocked: blocked}
	m.rows[k] = u
	return &u
}

// put writes a row directly, bypassing the service.
func (m *memRepository) put(userID, guildID, xp int64, blocked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertLocked(pairKey{userID, guildID}, xp, blocked)
}

func (m *memRepository) xp(userID, guildID int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[pairKey{userID, guildID}].XP
}

// fakeCooldown replays a fixed answer and counts calls.
type fakeCooldown struct {
	onCooldown bool
	calls      int
}

func (f *fakeCooldown) CheckAndMark(int64, int64) bool {
	f.calls++
	return f.onCooldown
}
