package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPToLevel(t *testing.T) {
	tests := []struct {
		xp   int64
		want int64
	}{
		{0, 0},
		{99, 0},
		{100, 0},
		{149, 0},
		{150, 1},
		{155, 1},
		{213, 1},
		{214, 2},
		{220, 2},
		{1000, 9},
		{10000, 39},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, XPToLevel(tt.xp), "xp=%d", tt.xp)
	}
}

func TestXPToLevel_Monotonic(t *testing.T) {
	prev := XPToLevel(0)
	for xp := int64(1); xp <= 50000; xp++ {
		lvl := XPToLevel(xp)
		if lvl < prev {
			t.Fatalf("level decreased at xp=%d: %d -> %d", xp, prev, lvl)
		}
		prev = lvl
	}
}

func TestLevelThreshold_MatchesXPToLevel(t *testing.T) {
	assert.Equal(t, int64(0), LevelThreshold(0))
	assert.Equal(t, int64(150), LevelThreshold(1))
	assert.Equal(t, int64(214), LevelThreshold(2))

	for level := int64(1); level <= 200; level++ {
		threshold := LevelThreshold(level)
		assert.Equal(t, level, XPToLevel(threshold), "level %d at its threshold", level)
		assert.Equal(t, level-1, XPToLevel(threshold-1), "level %d just below its threshold", level)
	}
}

func TestLevelToXP(t *testing.T) {
	assert.Equal(t, int64(100), LevelToXP(0))
	assert.Equal(t, int64(155), LevelToXP(1))
	assert.Equal(t, int64(220), LevelToXP(2))
}

func TestXPToNextLevel(t *testing.T) {
	assert.Equal(t, int64(150), XPToNextLevel(0))
	assert.Equal(t, int64(1), XPToNextLevel(149))
	assert.Equal(t, int64(64), XPToNextLevel(150))

	for xp := int64(0); xp <= 20000; xp += 7 {
		need := XPToNextLevel(xp)
		if need <= 0 {
			t.Fatalf("XPToNextLevel(%d) = %d, want positive", xp, need)
		}
		assert.Equal(t, XPToLevel(xp)+1, XPToLevel(xp+need))
	}
}
