package engine

import (
	"sort"
	"strings"
	"time"

	"stormquest/internal/catalog"
)

// subjectPools holds the not-yet-allocated backlog, one queue per subject,
// hardest first.
type subjectPools struct {
	order []string
	queue map[string][]catalog.Assignment
}

func newSubjectPools(cat *catalog.Catalog) *subjectPools {
	p := &subjectPools{queue: map[string][]catalog.Assignment{}}
	for _, a := range cat.Assignments {
		if _, ok := p.queue[a.Subject]; !ok {
			p.order = append(p.order, a.Subject)
		}
		p.queue[a.Subject] = append(p.queue[a.Subject], a)
	}
	for _, s := range p.order {
		q := p.queue[s]
		sort.SliceStable(q, func(i, j int) bool {
			if q[i].XP != q[j].XP {
				return q[i].XP > q[j].XP
			}
			return strings.Compare(q[i].Name, q[j].Name) < 0
		})
	}
	return p
}

func (p *subjectPools) remaining() int {
	n := 0
	for _, q := range p.queue {
		n += len(q)
	}
	return n
}

// pull removes the head of a subject's queue.
func (p *subjectPools) pull(subject string) (catalog.Assignment, bool) {
	q := p.queue[subject]
	if len(q) == 0 {
		return catalog.Assignment{}, false
	}
	p.queue[subject] = q[1:]
	return q[0], true
}

// pullGeneric takes up to count items: one per priority subject in order,
// then round-robin over subjects that still have items.
func (p *subjectPools) pullGeneric(count int, priorities []string) []string {
	var pulled []string
	for _, s := range priorities {
		if len(pulled) >= count {
			break
		}
		if a, ok := p.pull(s); ok {
			pulled = append(pulled, a.ID)
		}
	}

	var live []string
	for _, s := range p.order {
		if len(p.queue[s]) > 0 {
			live = append(live, s)
		}
	}
	for i := 0; len(pulled) < count && p.remainingIn(live) > 0; i = (i + 1) % len(live) {
		if a, ok := p.pull(live[i]); ok {
			pulled = append(pulled, a.ID)
		}
	}
	return pulled
}

func (p *subjectPools) remainingIn(subjects []string) int {
	n := 0
	for _, s := range subjects {
		n += len(p.queue[s])
	}
	return n
}

func (p *subjectPools) drain() []string {
	var ids []string
	for _, s := range p.order {
		for _, a := range p.queue[s] {
			ids = append(ids, a.ID)
		}
		p.queue[s] = nil
	}
	return ids
}

// GeneratePlan deterministically spreads the catalog backlog over days from
// the catalog start date. Sundays are skipped. Week 1 follows the fixed
// per-weekday ramp with no bonus; later weeks fill capacity by priority then
// round-robin, followed by bonus pulls. Days that receive nothing are omitted.
// Generation stops once the backlog is empty or the walk passes the horizon
// year; anything left is reported by Unscheduled.
func GeneratePlan(cat *catalog.Catalog) *Allocation {
	alloc := &Allocation{days: map[string]DayPlan{}, dateOf: map[string]string{}}
	pools := newSubjectPools(cat)
	start := cat.Start()

	for day := start; pools.remaining() > 0; {
		if day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
			continue
		}

		var plan DayPlan
		week := DaysBetween(start, day)/7 + 1
		if week == 1 {
			for _, s := range cat.WeekOneSubjects(day.Weekday()) {
				if a, ok := pools.pull(s); ok {
					plan.Primary = append(plan.Primary, a.ID)
				}
			}
		} else {
			priorities := cat.PrioritiesFor(week, day.Weekday())
			plan.Primary = pools.pullGeneric(capacityFor(cat, day), priorities)
			plan.Bonus = pools.pullGeneric(cat.Rules.Capacity.Bonus, priorities)
		}
		if len(plan.Primary) > 0 || len(plan.Bonus) > 0 {
			alloc.add(DateKey(day), plan)
		}

		day = day.AddDate(0, 0, 1)
		if day.Year() > cat.HorizonYear {
			break
		}
	}

	alloc.unscheduled = pools.drain()
	return alloc
}
