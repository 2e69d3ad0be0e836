package userservice

import "math"

// XPToLevel returns the level reached with xp total experience.
func XPToLevel(xp int64) int64 {
	if xp < 100 {
		return 0
	}
	return (-50 + int64(math.Ceil(math.Sqrt(float64(20*xp+500))))) / 10
}

// LevelToXP returns the experience a level costs.
func LevelToXP(level int64) int64 {
	return 5*level*level + 50*level + 100
}

// LevelThreshold returns the smallest total xp at which XPToLevel reports
// level.
func LevelThreshold(level int64) int64 {
	if level <= 0 {
		return 0
	}
	// XPToLevel(xp) >= level  <=>  20*xp + 500 > (10*level + 49)^2
	edge := 10*level + 49
	return (edge*edge-500)/20 + 1
}

// XPToNextLevel returns the experience still needed to reach the level after
// the one xp is at. It is always positive.
func XPToNextLevel(xp int64) int64 {
	return LevelThreshold(XPToLevel(xp)+1) - xp
}
