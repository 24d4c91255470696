package engine

import (
	"time"

	"stormquest/internal/catalog"
)

// Completion is the two-state completion marker of an assignment: pending, or
// completed on a calendar day. The zero value is pending.
type Completion struct {
	on string
}

func Pending() Completion { return Completion{} }

// CompletedOn marks completion on day's local calendar date.
func CompletedOn(day time.Time) Completion { return Completion{on: DateKey(day)} }

func (c Completion) Done() bool { return c.on != "" }

// Date returns the completion day key, if completed.
func (c Completion) Date() (string, bool) { return c.on, c.on != "" }

// Assignment is a backlog item. Status is its only mutable field.
type Assignment struct {
	ID      string
	Subject string
	Name    string
	XP      int
	Status  Completion
}

func (a Assignment) Done() bool { return a.Status.Done() }

// ScheduledItem is one entry of a day's list: exactly one of Activity or
// Assignment is set.
type ScheduledItem struct {
	Activity   *catalog.Activity
	Assignment *Assignment
}

func (i ScheduledItem) IsActivity() bool { return i.Activity != nil }

func (i ScheduledItem) ID() string {
	if i.Activity != nil {
		return i.Activity.ID
	}
	return i.Assignment.ID
}

func (i ScheduledItem) Title() string {
	if i.Activity != nil {
		return i.Activity.Title
	}
	return i.Assignment.Name
}

func (i ScheduledItem) XP() int {
	if i.Activity != nil {
		return i.Activity.XP
	}
	return i.Assignment.XP
}

func activityItem(a catalog.Activity) ScheduledItem { return ScheduledItem{Activity: &a} }

func assignmentItem(a Assignment) ScheduledItem { return ScheduledItem{Assignment: &a} }
