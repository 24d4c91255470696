package engine

import (
	"sort"
	"time"

	"stormquest/internal/catalog"
)

// DaySchedule is the live view of one day. Items holds the day's recurring
// activities, its primary assignments, and any assignment completed on this
// day that was allocated elsewhere. BonusItems stay out of Items until the
// caller promotes them with WithBonus.
type DaySchedule struct {
	Date          string
	Items         []ScheduledItem
	BonusItems    []Assignment
	BonusUnlocked bool

	defaultSlot int
}

// ScheduleFor builds the live schedule for day. Allocated ids are resolved
// against current completion state, never the state at planning time.
func (t *Tracker) ScheduleFor(day time.Time) DaySchedule {
	key := DateKey(day)
	plan, _ := t.plan.Day(key)
	primary := t.resolve(plan.Primary)
	bonus := t.resolve(plan.Bonus)
	activities := ActivitiesFor(t.cat, day)

	planned := make(map[string]bool, len(primary)+len(bonus))
	for _, a := range primary {
		planned[a.ID] = true
	}
	for _, a := range bonus {
		planned[a.ID] = true
	}

	items := make([]ScheduledItem, 0, len(activities)+len(primary))
	for _, a := range activities {
		items = append(items, activityItem(a))
	}
	for _, a := range primary {
		items = append(items, assignmentItem(a))
	}
	for _, a := range t.assignments {
		if d, ok := a.Status.Date(); ok && d == key && !planned[a.ID] {
			items = append(items, assignmentItem(a))
		}
	}

	unlocked := len(primary)+len(activities) > 0 && t.dayComplete(key, primary, activities)

	return DaySchedule{
		Date:          key,
		Items:         items,
		BonusItems:    bonus,
		BonusUnlocked: unlocked,
		defaultSlot:   t.cat.DefaultSlotMinutes(),
	}
}

// Sorted returns Items ordered by time of day. Assignments have no time and
// sort at the catalog's default slot; ties keep their original order.
func (d DaySchedule) Sorted() []ScheduledItem {
	return d.sortItems(d.Items)
}

// WithBonus returns the sorted items plus the bonus items once the bonus
// round is unlocked, or just the sorted items otherwise.
func (d DaySchedule) WithBonus() []ScheduledItem {
	if !d.BonusUnlocked || len(d.BonusItems) == 0 {
		return d.Sorted()
	}
	items := append([]ScheduledItem(nil), d.Items...)
	for _, a := range d.BonusItems {
		items = append(items, assignmentItem(a))
	}
	return d.sortItems(items)
}

func (d DaySchedule) sortItems(items []ScheduledItem) []ScheduledItem {
	out := append([]ScheduledItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return d.minutes(out[i]) < d.minutes(out[j])
	})
	return out
}

func (d DaySchedule) minutes(item ScheduledItem) int {
	if item.Activity != nil {
		return item.Activity.Minutes()
	}
	return d.defaultSlot
}

// Assignments returns the assignment entries of Items.
func (d DaySchedule) Assignments() []Assignment {
	var out []Assignment
	for _, it := range d.Items {
		if it.Assignment != nil {
			out = append(out, *it.Assignment)
		}
	}
	return out
}

// IsBonus reports whether id is one of the day's bonus items.
func (d DaySchedule) IsBonus(id string) bool {
	for _, a := range d.BonusItems {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (t *Tracker) dayComplete(key string, primary []Assignment, activities []catalog.Activity) bool {
	for _, a := range activities {
		if !t.log.Has(key, a.ID) {
			return false
		}
	}
	for _, a := range primary {
		if !a.Done() {
			return false
		}
	}
	return true
}
