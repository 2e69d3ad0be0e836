package cooldown

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTracker_CheckAndMark(t *testing.T) {
	clock := newFakeClock()
	tr := New(time.Minute, 0, WithClock(clock.Now))

	assert.False(t, tr.CheckAndMark(1, 100), "first message is not on cooldown")
	assert.True(t, tr.CheckAndMark(1, 100), "second message within window is")

	// other pairs are independent
	assert.False(t, tr.CheckAndMark(2, 100))
	assert.False(t, tr.CheckAndMark(1, 200))

	clock.Advance(time.Minute)
	assert.False(t, tr.CheckAndMark(1, 100), "window elapsed")
	assert.True(t, tr.CheckAndMark(1, 100))
}

func TestTracker_CooldownDoesNotExtendExpiry(t *testing.T) {
	clock := newFakeClock()
	tr := New(10*time.Second, 0, WithClock(clock.Now))

	require.False(t, tr.CheckAndMark(1, 1))
	for range 9 {
		clock.Advance(time.Second)
		require.True(t, tr.CheckAndMark(1, 1))
	}
	clock.Advance(time.Second)
	assert.False(t, tr.CheckAndMark(1, 1), "hits during the window must not push expiry out")
}

func TestTracker_EvictsLeastRecentlyUsed(t *testing.T) {
	clock := newFakeClock()
	tr := New(time.Hour, 2, WithClock(clock.Now))

	require.False(t, tr.CheckAndMark(1, 1))
	require.False(t, tr.CheckAndMark(2, 1))
	require.True(t, tr.CheckAndMark(1, 1)) // touch 1 so 2 is coldest

	require.False(t, tr.CheckAndMark(3, 1))
	assert.Equal(t, 2, tr.Len())

	assert.True(t, tr.CheckAndMark(1, 1))
	assert.True(t, tr.CheckAndMark(3, 1))
	assert.False(t, tr.CheckAndMark(2, 1), "evicted pair starts a fresh cooldown")
}

func TestTracker_Sweep(t *testing.T) {
	clock := newFakeClock()
	tr := New(time.Minute, 0, WithClock(clock.Now))

	tr.CheckAndMark(1, 1)
	tr.CheckAndMark(2, 1)
	clock.Advance(30 * time.Second)
	tr.CheckAndMark(3, 1)

	clock.Advance(30 * time.Second)
	assert.Equal(t, 2, tr.Sweep())
	assert.Equal(t, 1, tr.Len())
	assert.True(t, tr.CheckAndMark(3, 1))
}

func TestTracker_PrunesExpiredOnInsert(t *testing.T) {
	clock := newFakeClock()
	tr := New(time.Second, 0, WithClock(clock.Now))

	for i := range int64(50) {
		tr.CheckAndMark(i, 1)
	}
	clock.Advance(2 * time.Second)
	tr.CheckAndMark(1000, 1)
	assert.Equal(t, 1, tr.Len())
}

func TestTracker_ConcurrentCheckAndMark(t *testing.T) {
	tr := New(time.Minute, 0)

	const goroutines = 64
	var passed atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if !tr.CheckAndMark(42, 7) {
				passed.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, passed.Load(), "exactly one concurrent message may pass")
}

func TestNew_NegativeMaxKeysIsUnbounded(t *testing.T) {
	tr := New(time.Minute, -1)
	for i := range int64(10) {
		tr.CheckAndMark(i, 1)
	}
	assert.Equal(t, 10, tr.Len())
	assert.Equal(t, time.Minute, tr.Window())
}
