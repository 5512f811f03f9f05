package domain

import "time"

// Predicate is a caller-supplied test evaluated before any aggregation, so it
// can discard records cheaply (typically a date filter).
type Predicate func(DailyRecord) bool

// AcceptAll keeps every record.
func AcceptAll(DailyRecord) bool { return true }

// RejectAll keeps nothing.
func RejectAll(DailyRecord) bool { return false }

// Between keeps records dated strictly after `after` and strictly before
// `before`. A zero bound leaves that side open.
func Between(after, before time.Time) Predicate {
	return func(r DailyRecord) bool {
		if !after.IsZero() && !r.Date.After(after) {
			return false
		}
		if !before.IsZero() && !r.Date.Before(before) {
			return false
		}
		return true
	}
}

// And keeps a record only when every predicate keeps it. Nil predicates are
// skipped.
func And(preds ...Predicate) Predicate {
	return func(r DailyRecord) bool {
		for _, p := range preds {
			if p != nil && !p(r) {
				return false
			}
		}
		return true
	}
}
