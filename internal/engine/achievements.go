package engine

import (
	"fmt"
	"time"
)

// Achievement represents a badge the student can earn.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker derives badges from one progress snapshot.
type AchievementChecker struct {
	progress Progress
	subjects []SubjectSummary
	active   int
}

func NewAchievementChecker(t *Tracker, today time.Time) *AchievementChecker {
	return &AchievementChecker{
		progress: t.Progress(today),
		subjects: t.Subjects(),
		active:   len(t.log),
	}
}

// Achievements returns all badges with their earned status.
func (c *AchievementChecker) Achievements() []Achievement {
	achievements := []Achievement{
		// Level milestones
		c.levelAchievement("drizzle", "First Drops", "Reach level 2", "🌦️", 2),
		c.levelAchievement("front", "Weather Front", "Reach level 4", "🌬️", 4),
		c.levelAchievement("storm_chaser", "Storm Chaser", "Reach level 6", "🌪️", 6),
		c.levelAchievement("eye", "Eye of the Storm", "Reach level 8", "🌀", 8),

		// Assignment milestones
		c.countAchievement("first_task", "First Forecast", "Complete 1 assignment", "✓", 1),
		c.countAchievement("ten_down", "Steady Rain", "Complete 10 assignments", "📋", 10),
		c.countAchievement("half_way", "Halfway Front", "Complete half the backlog", "🏅", (c.progress.TotalCount+1)/2),
		c.allDoneAchievement("clear_skies", "Clear Skies", "Complete every assignment", "🏆"),

		// Streaks
		c.streakAchievement("three_day", "Three-Day Forecast", "3 complete days in a row", "🔥", 3),
		c.streakAchievement("week_long", "Week-Long Front", "7 complete days in a row", "⚡", 7),

		// Activities
		c.activityAchievement("routine", "Routine", "Log activities on 5 different days", "🔁", 5),
	}
	for _, s := range c.subjects {
		if s.Total == 0 {
			continue
		}
		achievements = append(achievements, Achievement{
			ID:          "subject_" + s.Subject,
			Name:        s.Subject + " Cleared",
			Description: fmt.Sprintf("Finish all %d %s assignments", s.Total, s.Subject),
			Icon:        "📚",
			Earned:      s.Done == s.Total,
		})
	}
	return achievements
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.Achievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.progress.Level >= level}
}

func (c *AchievementChecker) countAchievement(id, name, desc, icon string, count int) Achievement {
	earned := count > 0 && c.progress.CompletedCount >= count
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) allDoneAchievement(id, name, desc, icon string) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.progress.AllDone}
}

func (c *AchievementChecker) streakAchievement(id, name, desc, icon string, days int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.progress.Streak >= days}
}

func (c *AchievementChecker) activityAchievement(id, name, desc, icon string, days int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.active >= days}
}
