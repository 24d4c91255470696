package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stormquest/internal/catalog"
	"stormquest/internal/engine"
	"stormquest/internal/storage"
)

func newTestBoard(t *testing.T) boardModel {
	t.Helper()
	ctx := context.Background()
	cat, err := catalog.Embedded()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	st, err := storage.NewJSONStore(filepath.Join(t.TempDir(), "sq.json"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	now := time.Date(2025, 7, 7, 9, 0, 0, 0, time.Local)
	svc := engine.Open(ctx, cat, st, engine.WithClock(func() time.Time { return now }))
	return newBoardModel(ctx, svc)
}

// run applies msg and then drains the resulting command chain.
func run(t *testing.T, m boardModel, msg tea.Msg) boardModel {
	t.Helper()
	for i := 0; msg != nil && i < 5; i++ {
		next, cmd := m.Update(msg)
		m = next.(boardModel)
		if cmd == nil {
			break
		}
		msg = cmd()
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardLoadsToday(t *testing.T) {
	m := newTestBoard(t)
	m = run(t, m, m.Init()())
	if m.sched.Date != "2025-07-07" || m.loading {
		t.Fatalf("board day=%q loading=%v", m.sched.Date, m.loading)
	}
	if len(m.rows) == 0 {
		t.Fatalf("no rows for the first day")
	}
	if !strings.Contains(m.View(), "2025-07-07") {
		t.Fatalf("view missing date")
	}
}

func TestBoardNavigatesDays(t *testing.T) {
	m := newTestBoard(t)
	m = run(t, m, m.Init()())
	m = run(t, m, key("right"))
	if m.sched.Date != "2025-07-08" {
		t.Fatalf("after right: %q", m.sched.Date)
	}
	m = run(t, m, key("left"))
	m = run(t, m, key("left"))
	if m.sched.Date != "2025-07-06" {
		t.Fatalf("after left x2: %q", m.sched.Date)
	}
	m = run(t, m, key("t"))
	if m.sched.Date != "2025-07-07" {
		t.Fatalf("after t: %q", m.sched.Date)
	}
}

func TestBoardTogglesSelectedRow(t *testing.T) {
	m := newTestBoard(t)
	m = run(t, m, m.Init()())
	first := m.rows[0]
	m = run(t, m, key(" "))
	if !strings.HasPrefix(m.lastLog, "Completed") {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
	if first.IsActivity() {
		if !m.log.Has("2025-07-07", first.ID()) {
			t.Fatalf("activity %s not logged", first.ID())
		}
	} else if a, _ := m.svc.Tracker().Assignment(first.ID()); !a.Done() {
		t.Fatalf("assignment %s not completed", first.ID())
	}
}

func TestBoardEasiest(t *testing.T) {
	m := newTestBoard(t)
	m = run(t, m, m.Init()())
	m = run(t, m, key("right"))
	m = run(t, m, key("right"))
	if got := engine.DateKey(m.day); got != "2025-07-09" {
		t.Fatalf("viewing %s, want 2025-07-09", got)
	}
	m = run(t, m, key("e"))
	if m.svc.Tracker().CompletedCount() != 1 {
		t.Fatalf("easiest did not complete anything: %q", m.lastLog)
	}
	for _, a := range m.svc.Tracker().Assignments() {
		if d, ok := a.Status.Date(); ok && d != "2025-07-09" {
			t.Fatalf("%s completed on %s, want the viewed day 2025-07-09", a.ID, d)
		}
	}
}
