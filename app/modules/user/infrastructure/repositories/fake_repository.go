package userdb

import (
	"context"
	"sync"
)

// FakeRepository is a fake implementation of Repository for testing.
// Every call is recorded in order; unset funcs return ErrNotFound or zero values.
type FakeRepository struct {
	CreateGuildUserFn func(ctx context.Context, userID, guildID, xp int64) (*GuildUser, error)
	GetGuildUserFn    func(ctx context.Context, userID, guildID int64) (*GuildUser, error)
	GetGuildUsersFn   func(ctx context.Context, guildID int64) ([]*GuildUser, error)
	SetGuildUserXPFn  func(ctx context.Context, userID, guildID, xp int64) (*GuildUser, error)
	AddGuildUserXPFn  func(ctx context.Context, userID, guildID, delta int64) (*GuildUser, error)
	TopNGuildUserXPFn func(ctx context.Context, guildID int64, n int) ([]*GuildUser, error)

	mu    sync.Mutex
	trace []string
}

// NewFakeRepository initializes a new FakeRepository with an empty trace.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{trace: []string{}}
}

func (f *FakeRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) CreateGuildUser(ctx context.Context, userID, guildID, xp int64) (*GuildUser, error) {
	f.record("CreateGuildUser")
	if f.CreateGuildUserFn != nil {
		return f.CreateGuildUserFn(ctx, userID, guildID, xp)
	}
	return &GuildUser{UserID: userID, GuildID: guildID, XP: xp}, nil
}

func (f *FakeRepository) GetGuildUser(ctx context.Context, userID, guildID int64) (*GuildUser, error) {
	f.record("GetGuildUser")
	if f.GetGuildUserFn != nil {
		return f.GetGuildUserFn(ctx, userID, guildID)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) GetGuildUsers(ctx context.Context, guildID int64) ([]*GuildUser, error) {
	f.record("GetGuildUsers")
	if f.GetGuildUsersFn != nil {
		return f.GetGuildUsersFn(ctx, guildID)
	}
	return []*GuildUser{}, nil
}

func (f *FakeRepository) SetGuildUserXP(ctx context.Context, userID, guildID, xp int64) (*GuildUser, error) {
	f.record("SetGuildUserXP")
	if f.SetGuildUserXPFn != nil {
		return f.SetGuildUserXPFn(ctx, userID, guildID, xp)
	}
	return nil, ErrNotFound
}

func (f *FakeRepository) AddGuildUserXP(ctx context.Context, userID, guildID, delta int64) (*GuildUser, error) {
	f.record("AddGuildUserXP")
	if f.AddGuildUserXPFn != nil {
		return f.AddGuildUserXPFn(ctx, userID, guildID, delta)
	}
	return &GuildUser{UserID: userID, GuildID: guildID, XP: delta}, nil
}

func (f *FakeRepository) TopNGuildUserXP(ctx context.Context, guildID int64, n int) ([]*GuildUser, error) {
	f.record("TopNGuildUserXP")
	if f.TopNGuildUserXPFn != nil {
		return f.TopNGuildUserXPFn(ctx, guildID, n)
	}
	return []*GuildUser{}, nil
}

// Ensure the fake actually satisfies the interface
var _ Repository = (*FakeRepository)(nil)
