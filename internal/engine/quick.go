package engine

import (
	"time"

	"stormquest/internal/catalog"
)

// Easiest returns the incomplete assignment with the lowest XP; the first in
// backlog order wins ties.
func (t *Tracker) Easiest() (Assignment, bool) {
	return t.pick(func(a, best Assignment) bool { return a.XP < best.XP })
}

// Hardest returns the incomplete assignment with the highest XP.
func (t *Tracker) Hardest() (Assignment, bool) {
	return t.pick(func(a, best Assignment) bool { return a.XP > best.XP })
}

func (t *Tracker) pick(better func(a, best Assignment) bool) (Assignment, bool) {
	var best Assignment
	found := false
	for _, a := range t.assignments {
		if a.Done() {
			continue
		}
		if !found || better(a, best) {
			best = a
			found = true
		}
	}
	return best, found
}

// Upcoming returns the first n incomplete assignments in backlog order.
func (t *Tracker) Upcoming(n int) []Assignment {
	var out []Assignment
	for _, a := range t.assignments {
		if len(out) >= n {
			break
		}
		if !a.Done() {
			out = append(out, a)
		}
	}
	return out
}

type SubjectSummary struct {
	Subject string
	Done    int
	Total   int
	XPDone  int
	XPTotal int
	Items   []Assignment
}

// Subjects groups the backlog by subject, catalog subjects first.
func (t *Tracker) Subjects() []SubjectSummary {
	order := t.cat.Subjects()
	idx := map[string]int{}
	out := make([]SubjectSummary, 0, len(order))
	for _, s := range order {
		idx[s] = len(out)
		out = append(out, SubjectSummary{Subject: s})
	}
	for _, a := range t.assignments {
		i, ok := idx[a.Subject]
		if !ok {
			i = len(out)
			idx[a.Subject] = i
			out = append(out, SubjectSummary{Subject: a.Subject})
		}
		s := &out[i]
		s.Total++
		s.XPTotal += a.XP
		if a.Done() {
			s.Done++
			s.XPDone += a.XP
		}
		s.Items = append(s.Items, a)
	}
	return out
}

// Message is a short encouragement line.
type Message struct {
	Emoji string
	Text  string
}

// Motivation picks a message from the share of today's assignments done.
func Motivation(completed, total int) Message {
	if completed == 0 {
		return Message{"🌅", "Ready to tackle today's work?"}
	}
	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total) * 100
	}
	switch {
	case pct >= 100:
		return Message{"🏆", "All done. Nice work today."}
	case pct >= 75:
		return Message{"⚡", "Almost finished - solid progress"}
	case pct >= 50:
		return Message{"🌪️", "Halfway there - keep it up"}
	case pct >= 25:
		return Message{"🌤️", "Good start - building momentum"}
	default:
		return Message{"☀️", "Pick a task and get started"}
	}
}

// QuoteFor picks the catalog quote for day by day of year.
func QuoteFor(cat *catalog.Catalog, day time.Time) (catalog.Quote, bool) {
	if len(cat.Quotes) == 0 {
		return catalog.Quote{}, false
	}
	return cat.Quotes[day.YearDay()%len(cat.Quotes)], true
}

// DayTally counts how many of a day's assignments (primary and off-schedule)
// are complete.
func (d DaySchedule) DayTally() (completed, total int) {
	for _, a := range d.Assignments() {
		total++
		if a.Done() {
			completed++
		}
	}
	return completed, total
}
