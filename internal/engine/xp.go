package engine

// LevelFor returns the 1-based level for totalXP: the highest i such that
// totalXP >= thresholds[i-1]. The floor is level 1.
func LevelFor(thresholds []int, totalXP int) int {
	for i := len(thresholds) - 1; i >= 0; i-- {
		if totalXP >= thresholds[i] {
			return i + 1
		}
	}
	return 1
}

// LevelBounds returns the XP thresholds bracketing level. At the max level
// next equals current.
func LevelBounds(thresholds []int, level int) (current, next int) {
	if level-1 >= 0 && level-1 < len(thresholds) {
		current = thresholds[level-1]
	}
	next = current
	if level >= 0 && level < len(thresholds) {
		next = thresholds[level]
	}
	return current, next
}

// LevelPercent is the 0-100 progress from current to next; 100 at max level.
func LevelPercent(totalXP, current, next int) float64 {
	if next <= current {
		return 100
	}
	pct := float64(totalXP-current) / float64(next-current) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
