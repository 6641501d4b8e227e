package data

// XPCurve maps player levels to cumulative experience thresholds.
// thresholds[i] is the total xp required to reach level i+1, so
// thresholds[0] is always 0 (level 1 is free).
type XPCurve struct {
	thresholds     []int64
	pointsPerLevel int
}

// DefaultXPCurve returns the built-in leveling curve: quadratic growth up to
// level 50, one skill point per level.
func DefaultXPCurve() *XPCurve {
	const maxLevel = 50
	thresholds := make([]int64, maxLevel)
	total := int64(0)
	for lvl := 2; lvl <= maxLevel; lvl++ {
		total += int64(50 * (lvl - 1) * (lvl - 1))
		thresholds[lvl-1] = total
	}
	return &XPCurve{thresholds: thresholds, pointsPerLevel: 1}
}

// NewXPCurve builds a curve from explicit cumulative thresholds.
func NewXPCurve(thresholds []int64, pointsPerLevel int) *XPCurve {
	return &XPCurve{thresholds: thresholds, pointsPerLevel: pointsPerLevel}
}

// MaxLevel returns the highest reachable level.
func (c *XPCurve) MaxLevel() int {
	return len(c.thresholds)
}

// TotalForLevel returns the cumulative xp required to reach level.
// Levels beyond the curve return the final threshold.
func (c *XPCurve) TotalForLevel(level int) int64 {
	if level <= 1 || len(c.thresholds) == 0 {
		return 0
	}
	if level > len(c.thresholds) {
		level = len(c.thresholds)
	}
	return c.thresholds[level-1]
}

// SkillPointsPerLevel returns the points granted per level gained.
func (c *XPCurve) SkillPointsPerLevel() int {
	return c.pointsPerLevel
}
