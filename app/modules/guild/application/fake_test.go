package guildservice

import (
	"context"
	"sync"

	guilddb "github.com/Black-And-White-Club/xp-bot/app/modules/guild/infrastructure/repositories"
)

// ------------------------
// Fake Guild Repo
// ------------------------

// FakeGuildRepository provides a programmable stub for the guilddb.Repository interface.
type FakeGuildRepository struct {
	mu    sync.Mutex
	trace []string

	CreateGuildFunc    func(ctx context.Context, guildID int64) (*guilddb.Guild, error)
	GetGuildFunc       func(ctx context.Context, guildID int64) (*guilddb.Guild, error)
	SetGuildPrefixFunc func(ctx context.Context, guildID int64, prefix string) (*guilddb.Guild, error)
}

var _ guilddb.Repository = (*FakeGuildRepository)(nil)

// NewFakeGuildRepository initializes a new FakeGuildRepository with an empty trace.
func NewFakeGuildRepository() *FakeGuildRepository {
	return &FakeGuildRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeGuildRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGuildRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeGuildRepository) CreateGuild(ctx context.Context, guildID int64) (*guilddb.Guild, error) {
	f.record("CreateGuild")
	if f.CreateGuildFunc != nil {
		return f.CreateGuildFunc(ctx, guildID)
	}
	return &guilddb.Guild{GuildID: guildID, Prefix: guilddb.DefaultPrefix}, nil
}

func (f *FakeGuildRepository) GetGuild(ctx context.Context, guildID int64) (*guilddb.Guild, error) {
	f.record("GetGuild")
	if f.GetGuildFunc != nil {
		return f.GetGuildFunc(ctx, guildID)
	}
	// Default: Return ErrNotFound to simulate a clean state
	return nil, guilddb.ErrNotFound
}

func (f *FakeGuildRepository) SetGuildPrefix(ctx context.Context, guildID int64, prefix string) (*guilddb.Guild, error) {
	f.record("SetGuildPrefix")
	if f.SetGuildPrefixFunc != nil {
		return f.SetGuildPrefixFunc(ctx, guildID, prefix)
	}
	return &guilddb.Guild{GuildID: guildID, Prefix: prefix}, nil
}

// memGuildRepository is a map-backed Repository for multi-step scenarios.
type memGuildRepository struct {
	*FakeGuildRepository
	rows map[int64]guilddb.Guild
}

func newMemGuildRepository() *memGuildRepository {
	m := &memGuildRepository{
		FakeGuildRepository: NewFakeGuildRepository(),
		rows:                map[int64]guilddb.Guild{},
	}
	m.CreateGuildFunc = func(_ context.Context, guildID int64) (*guilddb.Guild, error) {
		if _, ok := m.rows[guildID]; ok {
			return nil, guilddb.ErrConflict
		}
		g := guilddb.Guild{ID: int64(len(m.rows) + 1), GuildID: guildID, Prefix: guilddb.DefaultPrefix}
		m.rows[guildID] = g
		return &g, nil
	}
	m.GetGuildFunc = func(_ context.Context, guildID int64) (*guilddb.Guild, error) {
		g, ok := m.rows[guildID]
		if !ok {
			return nil, guilddb.ErrNotFound
		}
		return &g, nil
	}
	m.SetGuildPrefixFunc = func(_ context.Context, guildID int64, prefix string) (*guilddb.Guild, error) {
		g, ok := m.rows[guildID]
		if !ok {
			g = guilddb.Guild{ID: int64(len(m.rows) + 1), GuildID: guildID}
		}
		g.Prefix = prefix
		m.rows[guildID] = g
		return &g, nil
	}
	return m
}
