package engine

import (
	"fmt"
	"time"
)

type ChangeKind string

const (
	ChangeAssignment ChangeKind = "assignment"
	ChangeActivity   ChangeKind = "activity"
)

// Change describes the single record a toggle modified.
type Change struct {
	Kind   ChangeKind
	ItemID string
	Day    string
	Done   bool
}

// ToggleAssignment flips an assignment between pending and completed on day.
// Toggling twice restores the original state.
func (t *Tracker) ToggleAssignment(id string, day time.Time) (Change, error) {
	i, ok := t.index[id]
	if !ok {
		return Change{}, fmt.Errorf("assignment %q: %w", id, ErrUnknownItem)
	}
	a := &t.assignments[i]
	if a.Done() {
		prev, _ := a.Status.Date()
		a.Status = Pending()
		return Change{Kind: ChangeAssignment, ItemID: id, Day: prev, Done: false}, nil
	}
	a.Status = CompletedOn(day)
	return Change{Kind: ChangeAssignment, ItemID: id, Day: DateKey(day), Done: true}, nil
}

// ToggleActivity adds or removes one occurrence of an activity on day. New
// occurrences are only accepted on the activity's recurring weekdays; an
// existing entry can always be removed.
func (t *Tracker) ToggleActivity(id string, day time.Time) (Change, error) {
	act, ok := t.activities[id]
	if !ok {
		return Change{}, fmt.Errorf("activity %q: %w", id, ErrUnknownItem)
	}
	key := DateKey(day)
	if !act.OnWeekday(day.Weekday()) && !t.log.Has(key, id) {
		return Change{}, fmt.Errorf("activity %q on %s (%s): %w", id, key, day.Weekday(), ErrNotScheduled)
	}
	done := t.log.toggle(key, id)
	return Change{Kind: ChangeActivity, ItemID: id, Day: key, Done: done}, nil
}

// Toggle flips whichever kind of item id names: assignments first, then
// activities.
func (t *Tracker) Toggle(id string, day time.Time) (Change, error) {
	if _, ok := t.index[id]; ok {
		return t.ToggleAssignment(id, day)
	}
	if _, ok := t.activities[id]; ok {
		return t.ToggleActivity(id, day)
	}
	return Change{}, fmt.Errorf("%q: %w", id, ErrUnknownItem)
}
