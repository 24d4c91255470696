package engine

import (
	"sync"

	"stormquest/internal/catalog"
)

// DayPlan lists the assignment ids allocated to one day.
type DayPlan struct {
	Primary []string
	Bonus   []string
}

// Allocation is the immutable day -> DayPlan map produced by GeneratePlan.
type Allocation struct {
	days        map[string]DayPlan
	dates       []string
	dateOf      map[string]string
	unscheduled []string
}

// Day returns a copy of the plan for a date key.
func (a *Allocation) Day(key string) (DayPlan, bool) {
	p, ok := a.days[key]
	if !ok {
		return DayPlan{}, false
	}
	return DayPlan{
		Primary: append([]string(nil), p.Primary...),
		Bonus:   append([]string(nil), p.Bonus...),
	}, true
}

// Dates lists allocated date keys in ascending order.
func (a *Allocation) Dates() []string {
	return append([]string(nil), a.dates...)
}

// DateOf returns the day an assignment was allocated to.
func (a *Allocation) DateOf(id string) (string, bool) {
	d, ok := a.dateOf[id]
	return d, ok
}

// Unscheduled lists assignment ids that never received a day because the
// horizon year was reached first.
func (a *Allocation) Unscheduled() []string {
	return append([]string(nil), a.unscheduled...)
}

// Last is the final allocated date key, or "" for an empty allocation.
func (a *Allocation) Last() string {
	if len(a.dates) == 0 {
		return ""
	}
	return a.dates[len(a.dates)-1]
}

func (a *Allocation) add(key string, p DayPlan) {
	a.days[key] = p
	a.dates = append(a.dates, key)
	for _, id := range p.Primary {
		a.dateOf[id] = key
	}
	for _, id := range p.Bonus {
		a.dateOf[id] = key
	}
}

type planEntry struct {
	once  sync.Once
	alloc *Allocation
}

var plans sync.Map // *catalog.Catalog -> *planEntry

// PlanFor returns the allocation for cat, generating it at most once per
// catalog instance. Safe for concurrent first access.
func PlanFor(cat *catalog.Catalog) *Allocation {
	v, _ := plans.LoadOrStore(cat, &planEntry{})
	e := v.(*planEntry)
	e.once.Do(func() {
		e.alloc = GeneratePlan(cat)
	})
	return e.alloc
}
