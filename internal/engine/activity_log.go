package engine

import "sort"

// ActivityLog records which recurring activities were completed on which day:
// date key -> activity ids in completion order. A date key is present only
// while its list is non-empty.
type ActivityLog map[string][]string

// Has reports whether activity id is logged for the date key.
func (l ActivityLog) Has(key, id string) bool {
	for _, v := range l[key] {
		if v == id {
			return true
		}
	}
	return false
}

// toggle flips id for key and reports whether it is now logged. Empty days
// are pruned.
func (l ActivityLog) toggle(key, id string) bool {
	ids := l[key]
	for i, v := range ids {
		if v == id {
			rest := append(append([]string(nil), ids[:i]...), ids[i+1:]...)
			if len(rest) == 0 {
				delete(l, key)
			} else {
				l[key] = rest
			}
			return false
		}
	}
	l[key] = append(append([]string(nil), ids...), id)
	return true
}

// Clone returns a deep copy, dropping empty days.
func (l ActivityLog) Clone() ActivityLog {
	out := make(ActivityLog, len(l))
	for k, ids := range l {
		if len(ids) == 0 {
			continue
		}
		out[k] = append([]string(nil), ids...)
	}
	return out
}

// Dates returns the logged date keys in ascending order.
func (l ActivityLog) Dates() []string {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
