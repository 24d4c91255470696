package engine

import (
	"testing"
	"time"

	"stormquest/internal/catalog"
)

// testCatalogYAML is a small backlog starting on Monday 2025-07-07. Its
// allocation is:
//
//	2025-07-07 [m2 s2]
//	2025-07-08 [s1]
//	2025-07-14 [s3 m1] bonus [m3]
//	2025-07-15 [a2 a1]
const testCatalogYAML = `
start_date: "2025-07-07"
target_finish: "2025-07-31"
horizon_year: 2026
level_thresholds: [0, 100, 300]
rules:
  week_one:
    monday: [Math, Science]
    tuesday: [Science]
  week_priorities:
    2: [Science, Math]
  default_priorities: [Math, Science, Art]
  front: {weekday: tuesday, subject: Art}
  heavy_activities: [Golf]
  capacity: {saturday: 1, heavy: 1, normal: 2, bonus: 1}
assignments:
  - {id: m1, subject: Math, name: Alpha, xp: 50}
  - {id: m2, subject: Math, name: Beta, xp: 100}
  - {id: m3, subject: Math, name: Gamma, xp: 50}
  - {id: s1, subject: Science, name: Cells, xp: 80}
  - {id: s2, subject: Science, name: Atoms, xp: 80}
  - {id: s3, subject: Science, name: Review, xp: 20}
  - {id: a1, subject: Art, name: Sketch, xp: 30}
  - {id: a2, subject: Art, name: Paint, xp: 60}
activities:
  - {id: wake, title: Wake, time: "8:30 am", days: [1, 2, 3, 4, 5, 6], xp: 10}
  - {id: golf, title: Golf, time: "5:00 pm", days: [3], xp: 20}
quotes:
  - {text: "first", author: "A"}
  - {text: "second", author: "B"}
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("parse test catalog: %v", err)
	}
	return cat
}

func embeddedCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Embedded()
	if err != nil {
		t.Fatalf("embedded catalog: %v", err)
	}
	return cat
}

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	cat := testCatalog(t)
	return NewTracker(cat, SeedAssignments(cat), nil)
}

func day(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := ParseDate(key)
	if err != nil {
		t.Fatalf("parse %q: %v", key, err)
	}
	return d
}

func ids(items []Assignment) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.ID)
	}
	return out
}

func itemIDs(items []ScheduledItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustToggle(t *testing.T, tr *Tracker, id, key string) Change {
	t.Helper()
	ch, err := tr.Toggle(id, day(t, key))
	if err != nil {
		t.Fatalf("toggle %s on %s: %v", id, key, err)
	}
	return ch
}

func TestWeatherFor(t *testing.T) {
	cases := []struct {
		xp    int
		label string
	}{
		{250, "Thunderstorm"},
		{200, "Thunderstorm"},
		{199, "Rainy Day"},
		{150, "Rainy Day"},
		{100, "Overcast"},
		{75, "Partly Cloudy"},
		{74, "Sunny"},
		{50, "Sunny"},
		{49, "Rainbow"},
		{0, "Rainbow"},
		{-5, "Rainbow"},
	}
	for _, tc := range cases {
		if got := WeatherFor(tc.xp); got.Label != tc.label {
			t.Fatalf("WeatherFor(%d)=%q, want %q", tc.xp, got.Label, tc.label)
		}
	}
	if WeatherFor(0).Emoji != "🌈" {
		t.Fatalf("rainbow emoji = %q", WeatherFor(0).Emoji)
	}
}

func TestLevelFor(t *testing.T) {
	thresholds := []int{0, 500, 1200, 2200, 3500, 5000, 7000, 10000}
	cases := []struct {
		xp, level, cur, next int
	}{
		{0, 1, 0, 500},
		{499, 1, 0, 500},
		{500, 2, 500, 1200},
		{1199, 2, 500, 1200},
		{1200, 3, 1200, 2200},
		{10000, 8, 10000, 10000},
		{25000, 8, 10000, 10000},
		{-10, 1, 0, 500},
	}
	for _, tc := range cases {
		level := LevelFor(thresholds, tc.xp)
		if level != tc.level {
			t.Fatalf("LevelFor(%d)=%d, want %d", tc.xp, level, tc.level)
		}
		cur, next := LevelBounds(thresholds, level)
		if cur != tc.cur || next != tc.next {
			t.Fatalf("LevelBounds(%d)=(%d,%d), want (%d,%d)", level, cur, next, tc.cur, tc.next)
		}
	}
	if got := LevelPercent(10000, 10000, 10000); got != 100 {
		t.Fatalf("max level percent=%v, want 100", got)
	}
	if got := LevelPercent(850, 500, 1200); got != 50 {
		t.Fatalf("LevelPercent(850)=%v, want 50", got)
	}
}

func TestResolveDate(t *testing.T) {
	base := day(t, "2025-07-10")
	cases := map[string]string{
		"":           "2025-07-10",
		"today":      "2025-07-10",
		"yesterday":  "2025-07-09",
		"Tomorrow":   "2025-07-11",
		"+3":         "2025-07-13",
		"-10":        "2025-06-30",
		"2025-08-01": "2025-08-01",
	}
	for arg, want := range cases {
		got, err := ResolveDate(arg, base)
		if err != nil {
			t.Fatalf("ResolveDate(%q): %v", arg, err)
		}
		if DateKey(got) != want {
			t.Fatalf("ResolveDate(%q)=%s, want %s", arg, DateKey(got), want)
		}
	}
	for _, bad := range []string{"+x", "07/10/2025", "soon"} {
		if _, err := ResolveDate(bad, base); err == nil {
			t.Fatalf("ResolveDate(%q) expected error", bad)
		} else if _, ok := err.(DateError); !ok {
			t.Fatalf("ResolveDate(%q) err %T, want DateError", bad, err)
		}
	}
}

func TestEffectiveToday(t *testing.T) {
	start := day(t, "2025-07-07")
	early := time.Date(2025, 6, 1, 15, 30, 0, 0, time.Local)
	if got := EffectiveToday(early, start); !got.Equal(start) {
		t.Fatalf("before start: got %s, want start", DateKey(got))
	}
	later := time.Date(2025, 7, 20, 23, 59, 0, 0, time.Local)
	if got := EffectiveToday(later, start); DateKey(got) != "2025-07-20" || got.Hour() != 0 {
		t.Fatalf("after start: got %s", got)
	}
}

func TestActivitiesForAndCapacity(t *testing.T) {
	cat := embeddedCatalog(t)
	mon := day(t, "2025-07-14")
	got := ActivitiesFor(cat, mon)
	var titles []string
	for _, a := range got {
		titles = append(titles, a.ID)
	}
	want := []string{"act-wake", "act-read", "act-lunch", "act-music", "act-guitar", "act-winddown"}
	if !equalStrings(titles, want) {
		t.Fatalf("Monday activities=%v, want %v", titles, want)
	}
	if n := len(ActivitiesFor(cat, day(t, "2025-07-13"))); n != 1 {
		t.Fatalf("Sunday activities=%d, want 1", n)
	}

	caps := map[string]int{
		"2025-07-14": 3, // Guitar Class
		"2025-07-15": 3, // Golf
		"2025-07-16": 3, // Band Practice
		"2025-07-17": 4,
		"2025-07-18": 4,
		"2025-07-19": 2,
	}
	for key, want := range caps {
		if got := capacityFor(cat, day(t, key)); got != want {
			t.Fatalf("capacityFor(%s)=%d, want %d", key, got, want)
		}
	}
}
