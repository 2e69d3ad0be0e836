package ttlcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestMemoryBackend_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	_, err := b.Get(ctx, "guilds:1")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, b.Set(ctx, "guilds:1", []byte(`{"guild_id":1}`), time.Minute))
	got, err := b.Get(ctx, "guilds:1")
	require.NoError(t, err)
	assert.Equal(t, `{"guild_id":1}`, string(got))

	require.NoError(t, b.Delete(ctx, "guilds:1"))
	_, err = b.Get(ctx, "guilds:1")
	assert.ErrorIs(t, err, ErrMiss)

	// deleting an absent key is fine
	assert.NoError(t, b.Delete(ctx, "guilds:404"))
}

func TestMemoryBackend_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	b := NewMemoryBackend(WithClock(clock.Now))

	require.NoError(t, b.Set(ctx, "users:1:2", []byte("x"), 10*time.Second))

	clock.Advance(9 * time.Second)
	_, err := b.Get(ctx, "users:1:2")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = b.Get(ctx, "users:1:2")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 0, b.Len(), "expired entry should be purged on read")
}

func TestMemoryBackend_Sweep(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	b := NewMemoryBackend(WithClock(clock.Now))

	require.NoError(t, b.Set(ctx, "a", []byte("1"), time.Second))
	require.NoError(t, b.Set(ctx, "b", []byte("2"), time.Second))
	require.NoError(t, b.Set(ctx, "c", []byte("3"), time.Hour))

	clock.Advance(2 * time.Second)
	assert.Equal(t, 2, b.Sweep())
	assert.Equal(t, 1, b.Len())
}

func TestMemoryBackend_CopiesValues(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	value := []byte("abc")
	require.NoError(t, b.Set(ctx, "k", value, time.Minute))
	value[0] = 'z'

	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "guilds:42", GuildKey(42))
	assert.Equal(t, "users:42:7", UserKey(42, 7))

	// a user key never collides with its mirrored identity
	assert.NotEqual(t, UserKey(1, 2), UserKey(2, 1))
	assert.NotEqual(t, GuildKey(1), UserKey(1, 0))

	assert.Equal(t, KindGuild, kindOf(GuildKey(1)))
	assert.Equal(t, KindUser, kindOf(UserKey(1, 2)))
	assert.Equal(t, "unknown", kindOf("nocolon"))
}
