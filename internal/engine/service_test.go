package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"stormquest/internal/storage"
)

func openTestStore(t *testing.T, path string) storage.Store {
	t.Helper()
	st, err := storage.NewByEngine(context.Background(), storage.EngineSQLite, path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func newTestService(t *testing.T, path string, now time.Time) (*Service, func()) {
	t.Helper()
	st := openTestStore(t, path)
	svc := Open(context.Background(), testCatalog(t), st, WithClock(func() time.Time { return now }))
	return svc, func() { _ = st.Close() }
}

func TestServiceSeedsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sq.db")
	svc, cleanup := newTestService(t, path, time.Date(2025, 7, 8, 14, 0, 0, 0, time.Local))
	defer cleanup()

	if n := len(svc.Tracker().Assignments()); n != 8 {
		t.Fatalf("seeded %d assignments, want 8", n)
	}
	if DateKey(svc.Today()) != "2025-07-08" {
		t.Fatalf("today=%s", DateKey(svc.Today()))
	}
	if p := svc.Progress(); p.TotalXP != 0 || p.Level != 1 {
		t.Fatalf("progress=%+v", p)
	}
}

func TestServiceTodayClampsToStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sq.db")
	svc, cleanup := newTestService(t, path, time.Date(2025, 1, 2, 9, 0, 0, 0, time.Local))
	defer cleanup()
	if DateKey(svc.Today()) != "2025-07-07" {
		t.Fatalf("today=%s, want start date", DateKey(svc.Today()))
	}
}

func TestServicePersistsToggles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sq.db")
	now := time.Date(2025, 7, 7, 10, 0, 0, 0, time.Local)

	svc, cleanup := newTestService(t, path, now)
	if _, err := svc.ToggleAssignment(ctx, "m2", svc.Today()); err != nil {
		t.Fatalf("toggle m2: %v", err)
	}
	if _, err := svc.ToggleActivity(ctx, "wake", svc.Today()); err != nil {
		t.Fatalf("toggle wake: %v", err)
	}
	if _, err := svc.ToggleItem(ctx, "nope", svc.Today()); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("unknown item err=%v", err)
	}
	cleanup()

	again, cleanup := newTestService(t, path, now)
	defer cleanup()
	a, _ := again.Tracker().Assignment("m2")
	if d, ok := a.Status.Date(); !ok || d != "2025-07-07" {
		t.Fatalf("m2 after reopen=%+v", a)
	}
	if !again.Tracker().ActivityLog().Has("2025-07-07", "wake") {
		t.Fatalf("wake not persisted")
	}
	if p := again.Progress(); p.TotalXP != 110 {
		t.Fatalf("xp after reopen=%d, want 110", p.TotalXP)
	}

	evs, err := again.History(ctx, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(evs) != 2 || evs[0].ItemID != "wake" || evs[1].ItemID != "m2" || evs[1].XP != 100 {
		t.Fatalf("history=%+v", evs)
	}
}

func TestServiceCompleteEasiest(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sq.db")
	svc, cleanup := newTestService(t, path, time.Date(2025, 7, 9, 8, 0, 0, 0, time.Local))
	defer cleanup()

	a, ok, err := svc.CompleteEasiest(ctx, svc.Today())
	if err != nil || !ok {
		t.Fatalf("CompleteEasiest ok=%v err=%v", ok, err)
	}
	if a.ID != "s3" {
		t.Fatalf("completed %s, want s3", a.ID)
	}
	if d, _ := a.Status.Date(); d != "2025-07-09" {
		t.Fatalf("completed on %q", d)
	}
	// Completed off-schedule: s3 belongs to 2025-07-14 but shows on 2025-07-09.
	s := svc.Schedule(svc.Today())
	found := false
	for _, it := range s.Items {
		if it.ID() == "s3" {
			found = true
		}
	}
	if !found {
		t.Fatalf("s3 missing from today's schedule: %v", itemIDs(s.Items))
	}

	next, ok, err := svc.CompleteEasiest(ctx, day(t, "2025-07-12"))
	if err != nil || !ok {
		t.Fatalf("CompleteEasiest(07-12) ok=%v err=%v", ok, err)
	}
	if d, _ := next.Status.Date(); d != "2025-07-12" {
		t.Fatalf("%s completed on %q, want 2025-07-12", next.ID, d)
	}
}

func TestServiceFallsBackOnInvalidRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sq.db")
	st, err := storage.NewSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()

	for key, value := range map[string]string{
		storage.KeyAssignments: `[{"id":"m1","name":"no xp"}]`,
		storage.KeyActivities:  `["not","an","object"]`,
	} {
		if _, err := st.DB().ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`, key, value); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}

	svc := Open(ctx, testCatalog(t), st)
	if n := len(svc.Tracker().Assignments()); n != 8 {
		t.Fatalf("fallback assignments=%d, want seed of 8", n)
	}
	if svc.Tracker().CompletedCount() != 0 || len(svc.Tracker().ActivityLog()) != 0 {
		t.Fatalf("fallback state not clean")
	}
}

func TestServiceKeepsStaleRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sq.db")
	st := openTestStore(t, path)
	defer st.Close()

	done := "2025-07-07"
	bad := "07/07/2025"
	records := []storage.AssignmentRecord{
		{ID: "m2", Subject: "Math", Name: "Beta", XP: 100, CompletionDate: &done},
		{ID: "s2", Subject: "Science", Name: "Atoms", XP: 80, CompletionDate: &bad},
		{ID: "gone", Subject: "History", Name: "Old", XP: 40},
	}
	if err := st.SaveAssignments(ctx, records); err != nil {
		t.Fatalf("save: %v", err)
	}

	svc := Open(ctx, testCatalog(t), st)
	tr := svc.Tracker()
	if n := len(tr.Assignments()); n != 3 {
		t.Fatalf("loaded %d, want stored 3", n)
	}
	if a, _ := tr.Assignment("s2"); a.Done() {
		t.Fatalf("bad completion date should load as pending")
	}
	if got := itemIDs(tr.ScheduleFor(day(t, "2025-07-07")).Items); !equalStrings(got, []string{"wake", "m2", "s2"}) {
		t.Fatalf("items=%v", got)
	}
	// s1 is allocated to 2025-07-08 but no longer stored; the schedule drops it.
	if got := itemIDs(tr.ScheduleFor(day(t, "2025-07-08")).Items); !equalStrings(got, []string{"wake"}) {
		t.Fatalf("items=%v", got)
	}
}
