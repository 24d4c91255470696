package engine

import (
	"stormquest/internal/catalog"
)

// Tracker is the in-memory state of one backlog: the live assignments, the
// activity log, and the memoized allocation. It is not safe for concurrent
// mutation; callers serialize toggles.
type Tracker struct {
	cat         *catalog.Catalog
	plan        *Allocation
	assignments []Assignment
	index       map[string]int
	activities  map[string]catalog.Activity
	log         ActivityLog
}

// NewTracker builds a tracker over assignments and log. Assignment ids are
// indexed once; later duplicates of an id are ignored.
func NewTracker(cat *catalog.Catalog, assignments []Assignment, log ActivityLog) *Tracker {
	t := &Tracker{
		cat:        cat,
		plan:       PlanFor(cat),
		index:      make(map[string]int, len(assignments)),
		activities: make(map[string]catalog.Activity, len(cat.Activities)),
		log:        log.Clone(),
	}
	for _, a := range assignments {
		if _, dup := t.index[a.ID]; dup {
			continue
		}
		t.index[a.ID] = len(t.assignments)
		t.assignments = append(t.assignments, a)
	}
	for _, a := range cat.Activities {
		t.activities[a.ID] = a
	}
	return t
}

// SeedAssignments returns the catalog backlog with every item pending.
func SeedAssignments(cat *catalog.Catalog) []Assignment {
	out := make([]Assignment, 0, len(cat.Assignments))
	for _, a := range cat.Assignments {
		out = append(out, Assignment{ID: a.ID, Subject: a.Subject, Name: a.Name, XP: a.XP})
	}
	return out
}

func (t *Tracker) Catalog() *catalog.Catalog { return t.cat }

func (t *Tracker) Plan() *Allocation { return t.plan }

// Assignments returns a copy of the live backlog in load order.
func (t *Tracker) Assignments() []Assignment {
	return append([]Assignment(nil), t.assignments...)
}

// Assignment looks up a live assignment by id.
func (t *Tracker) Assignment(id string) (Assignment, bool) {
	i, ok := t.index[id]
	if !ok {
		return Assignment{}, false
	}
	return t.assignments[i], true
}

// Activity looks up a recurring activity definition by id.
func (t *Tracker) Activity(id string) (catalog.Activity, bool) {
	a, ok := t.activities[id]
	return a, ok
}

// ActivityLog returns a copy of the activity completion record.
func (t *Tracker) ActivityLog() ActivityLog { return t.log.Clone() }

// resolve maps allocated ids to live assignments, dropping unknown ids.
func (t *Tracker) resolve(ids []string) []Assignment {
	out := make([]Assignment, 0, len(ids))
	for _, id := range ids {
		if a, ok := t.Assignment(id); ok {
			out = append(out, a)
		}
	}
	return out
}

// CompletedCount is the number of completed assignments.
func (t *Tracker) CompletedCount() int {
	n := 0
	for _, a := range t.assignments {
		if a.Done() {
			n++
		}
	}
	return n
}
