package engine

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the day-granularity key used for schedules and completion
// records. Keys are built from local calendar fields, never UTC-converted.
const DateLayout = "2006-01-02"

// DateKey formats t's local calendar day as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD key as local midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, DateError{Input: s}
	}
	return t, nil
}

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from a to b, ignoring DST shifts.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// EffectiveToday clamps the local day of now so it never precedes start.
func EffectiveToday(now, start time.Time) time.Time {
	today := Midnight(now.In(time.Local))
	if today.Before(start) {
		return start
	}
	return today
}

// ResolveDate interprets CLI-style day arguments relative to base:
// "" or "today", "yesterday", "tomorrow", "+N"/"-N" day offsets, or YYYY-MM-DD.
func ResolveDate(arg string, base time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(arg))
	base = Midnight(base)
	switch s {
	case "", "today":
		return base, nil
	case "yesterday":
		return base.AddDate(0, 0, -1), nil
	case "tomorrow":
		return base.AddDate(0, 0, 1), nil
	}
	if s[0] == '+' || s[0] == '-' {
		n, err := strconv.Atoi(s)
		if err != nil {
			return time.Time{}, DateError{Input: arg}
		}
		return base.AddDate(0, 0, n), nil
	}
	return ParseDate(s)
}
