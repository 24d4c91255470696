package engine

import (
	"time"

	"stormquest/internal/catalog"
)

// ActivitiesFor returns the recurring activities scheduled on day's weekday,
// in catalog order.
func ActivitiesFor(cat *catalog.Catalog, day time.Time) []catalog.Activity {
	wd := day.Weekday()
	var out []catalog.Activity
	for _, a := range cat.Activities {
		if a.OnWeekday(wd) {
			out = append(out, a)
		}
	}
	return out
}

// capacityFor is the number of primary assignments a non-Sunday day can take:
// the Saturday cap, the reduced cap on days with a heavy activity, or the
// normal cap.
func capacityFor(cat *catalog.Catalog, day time.Time) int {
	c := cat.Rules.Capacity
	if day.Weekday() == time.Saturday {
		return c.Saturday
	}
	for _, a := range ActivitiesFor(cat, day) {
		if cat.IsHeavy(a.Title) {
			return c.Heavy
		}
	}
	return c.Normal
}
