package engine

import (
	"time"
)

// streakLookback bounds how far back the streak walk goes.
const streakLookback = 364

// Progress is the gamification summary derived from the current state.
type Progress struct {
	TotalXP           int
	Level             int
	XPForCurrentLevel int
	XPForNextLevel    int
	Percent           float64

	CompletedCount int
	TotalCount     int
	AllDone        bool

	EstimatedFinish time.Time
	Streak          int
}

// Progress derives every summary figure from scratch for the given today.
func (t *Tracker) Progress(today time.Time) Progress {
	xp := t.TotalXP()
	level := LevelFor(t.cat.LevelThresholds, xp)
	cur, next := LevelBounds(t.cat.LevelThresholds, level)
	done := t.CompletedCount()

	return Progress{
		TotalXP:           xp,
		Level:             level,
		XPForCurrentLevel: cur,
		XPForNextLevel:    next,
		Percent:           LevelPercent(xp, cur, next),
		CompletedCount:    done,
		TotalCount:        len(t.assignments),
		AllDone:           len(t.assignments) > 0 && done == len(t.assignments),
		EstimatedFinish:   t.EstimatedFinish(today),
		Streak:            t.Streak(today),
	}
}

// TotalXP sums completed assignments and every logged activity occurrence.
// Logged ids missing from the catalog count for nothing.
func (t *Tracker) TotalXP() int {
	total := 0
	for _, a := range t.assignments {
		if a.Done() {
			total += a.XP
		}
	}
	for _, ids := range t.log {
		for _, id := range ids {
			total += t.activities[id].XP
		}
	}
	return total
}

// EstimatedFinish projects when the remaining backlog will be done. With
// nothing left it is the latest completion day (or today if none). Otherwise
// it walks forward from max(today, start), spending each non-Sunday's
// capacity, until the remaining count is exhausted or the horizon is passed.
func (t *Tracker) EstimatedFinish(today time.Time) time.Time {
	today = Midnight(today)
	remaining := 0
	latest := ""
	for _, a := range t.assignments {
		d, ok := a.Status.Date()
		if !ok {
			remaining++
			continue
		}
		if d > latest {
			latest = d
		}
	}

	if remaining == 0 {
		if latest == "" {
			return today
		}
		if d, err := ParseDate(latest); err == nil {
			return d
		}
		return today
	}

	day := today
	if start := t.cat.Start(); start.After(day) {
		day = start
	}
	last := day
	for remaining > 0 {
		if day.Weekday() != time.Sunday {
			remaining -= capacityFor(t.cat, day)
		}
		last = day
		day = day.AddDate(0, 0, 1)
		if day.Year() > t.cat.HorizonYear {
			break
		}
	}
	return last
}

// Streak counts consecutive fully completed days walking back from
// yesterday. Days with no activities and no primary assignments are skipped
// without breaking the run. The walk stops at the catalog start date.
func (t *Tracker) Streak(today time.Time) int {
	today = Midnight(today)
	start := t.cat.Start()
	streak := 0
	for i := 1; i <= streakLookback; i++ {
		day := today.AddDate(0, 0, -i)
		if day.Before(start) {
			break
		}
		key := DateKey(day)
		plan, _ := t.plan.Day(key)
		primary := t.resolve(plan.Primary)
		activities := ActivitiesFor(t.cat, day)
		if len(primary) == 0 && len(activities) == 0 {
			continue
		}
		if !t.dayComplete(key, primary, activities) {
			break
		}
		streak++
	}
	return streak
}
