package engine

import (
	"errors"
	"testing"
)

func TestToggleAssignmentRoundTrip(t *testing.T) {
	tr := newTestTracker(t)
	ch, err := tr.ToggleAssignment("m1", day(t, "2025-07-09"))
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if ch.Kind != ChangeAssignment || !ch.Done || ch.Day != "2025-07-09" {
		t.Fatalf("change=%+v", ch)
	}
	a, _ := tr.Assignment("m1")
	if d, ok := a.Status.Date(); !ok || d != "2025-07-09" {
		t.Fatalf("status=%+v", a.Status)
	}

	// Un-completing reports the day it had been completed on.
	ch, err = tr.ToggleAssignment("m1", day(t, "2025-07-20"))
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if ch.Done || ch.Day != "2025-07-09" {
		t.Fatalf("undo change=%+v", ch)
	}
	if a, _ := tr.Assignment("m1"); a.Done() {
		t.Fatalf("m1 still done after second toggle")
	}
}

func TestToggleActivityPrunesEmptyDays(t *testing.T) {
	tr := newTestTracker(t)
	d := day(t, "2025-07-09")
	if ch, _ := tr.ToggleActivity("golf", d); !ch.Done || ch.Kind != ChangeActivity {
		t.Fatalf("first toggle=%+v", ch)
	}
	if !tr.ActivityLog().Has("2025-07-09", "golf") {
		t.Fatalf("golf not logged")
	}
	if ch, _ := tr.ToggleActivity("golf", d); ch.Done {
		t.Fatalf("second toggle should clear")
	}
	if _, ok := tr.ActivityLog()["2025-07-09"]; ok {
		t.Fatalf("empty day not pruned: %+v", tr.ActivityLog())
	}
}

func TestToggleUnknownItem(t *testing.T) {
	tr := newTestTracker(t)
	d := day(t, "2025-07-09")
	if _, err := tr.ToggleAssignment("nope", d); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("assignment err=%v", err)
	}
	if _, err := tr.ToggleActivity("m1", d); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("activity err=%v", err)
	}
	if _, err := tr.Toggle("nope", d); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("toggle err=%v", err)
	}
	if tr.CompletedCount() != 0 || len(tr.ActivityLog()) != 0 {
		t.Fatalf("unknown toggle mutated state")
	}
}

func TestToggleActivityOffWeekday(t *testing.T) {
	tr := newTestTracker(t)
	if _, err := tr.ToggleActivity("golf", day(t, "2025-07-07")); !errors.Is(err, ErrNotScheduled) {
		t.Fatalf("Monday golf err=%v, want ErrNotScheduled", err)
	}
	if _, err := tr.Toggle("wake", day(t, "2025-07-13")); !errors.Is(err, ErrNotScheduled) {
		t.Fatalf("Sunday wake err=%v, want ErrNotScheduled", err)
	}
	if len(tr.ActivityLog()) != 0 || tr.TotalXP() != 0 {
		t.Fatalf("rejected toggle mutated state: %+v xp=%d", tr.ActivityLog(), tr.TotalXP())
	}

	// A stored off-weekday entry can still be cleared.
	tr = NewTracker(tr.Catalog(), SeedAssignments(tr.Catalog()), ActivityLog{"2025-07-07": {"golf"}})
	ch, err := tr.ToggleActivity("golf", day(t, "2025-07-07"))
	if err != nil || ch.Done {
		t.Fatalf("clearing stored entry: change=%+v err=%v", ch, err)
	}
	if len(tr.ActivityLog()) != 0 {
		t.Fatalf("stored entry not removed: %+v", tr.ActivityLog())
	}
}

func TestActivityLogCloneIsIndependent(t *testing.T) {
	tr := newTestTracker(t)
	mustToggle(t, tr, "wake", "2025-07-07")
	snap := tr.ActivityLog()
	snap["2025-07-07"][0] = "changed"
	if !tr.ActivityLog().Has("2025-07-07", "wake") {
		t.Fatalf("tracker log mutated through a copy")
	}
}
