// Package cooldown rate-limits XP grants per (user, guild) pair.
//
// A Tracker remembers which pairs were granted XP within the last window.
// CheckAndMark tests and records in one locked step, so two concurrent
// messages from the same user can never both pass.
package cooldown

import (
	"container/list"
	"sync"
	"time"
)

type key struct {
	userID  int64
	guildID int64
}

type entry struct {
	key       key
	expiresAt time.Time
}

// Tracker is an LRU of live cooldown markers. The zero value is not usable;
// call New.
type Tracker struct {
	window  time.Duration
	maxKeys int
	clock   func() time.Time

	mu    sync.Mutex
	lru   *list.List
	index map[key]*list.Element
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now, for tests.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// New creates a Tracker with the given cooldown window. maxKeys <= 0 leaves
// the tracker unbounded; otherwise inserting past the bound evicts the least
// recently used pair.
func New(window time.Duration, maxKeys int, opts ...Option) *Tracker {
	if maxKeys < 0 {
		maxKeys = 0
	}
	t := &Tracker{
		window:  window,
		maxKeys: maxKeys,
		clock:   time.Now,
		lru:     list.New(),
		index:   make(map[key]*list.Element),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CheckAndMark reports whether the pair is on cooldown. When it is not, a
// fresh marker is recorded before returning. A live marker's expiry is never
// extended.
func (t *Tracker) CheckAndMark(userID, guildID int64) (onCooldown bool) {
	k := key{userID: userID, guildID: guildID}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	if elem, ok := t.index[k]; ok {
		e := elem.Value.(*entry)
		if now.Before(e.expiresAt) {
			t.lru.MoveToFront(elem)
			return true
		}
		e.expiresAt = now.Add(t.window)
		t.lru.MoveToFront(elem)
		return false
	}

	t.pruneExpiredTail(now)
	elem := t.lru.PushFront(&entry{key: k, expiresAt: now.Add(t.window)})
	t.index[k] = elem
	for t.maxKeys > 0 && t.lru.Len() > t.maxKeys {
		t.removeElement(t.lru.Back())
	}
	return false
}

// Sweep drops every expired marker and returns how many were removed.
func (t *Tracker) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	removed := 0
	for elem := t.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if !now.Before(elem.Value.(*entry).expiresAt) {
			t.removeElement(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// Len returns the number of tracked pairs, expired or not.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lru.Len()
}

// Window returns the configured cooldown duration.
func (t *Tracker) Window() time.Duration { return t.window }

// pruneExpiredTail trims expired markers from the cold end of the list.
func (t *Tracker) pruneExpiredTail(now time.Time) {
	for elem := t.lru.Back(); elem != nil; elem = t.lru.Back() {
		if now.Before(elem.Value.(*entry).expiresAt) {
			return
		}
		t.removeElement(elem)
	}
}

func (t *Tracker) removeElement(elem *list.Element) {
	e := t.lru.Remove(elem).(*entry)
	delete(t.index, e.key)
}
