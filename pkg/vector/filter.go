package vector

import "strings"

// Filter is an optional conjunctive predicate over record metadata. The zero
// value matches every record. Unsupported filter dimensions do not exist by
// construction; enumerated fields only.
type Filter struct {
	// BusinessFocus, when non-empty, requires a case-insensitive equality
	// match on Metadata.BusinessFocus.
	BusinessFocus string

	// Participant, when non-empty, requires a case-insensitive equality
	// match on the record's participant name.
	Participant string

	// MinUrgency, when > 0, requires Metadata.UrgencyLevel >= MinUrgency.
	MinUrgency int
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.BusinessFocus == "" && f.Participant == "" && f.MinUrgency <= 0
}

// Matches evaluates the filter against a record. This is the single
// definition of filter semantics; the local backend applies it directly and
// the remote backend's filter translation must agree with it.
func (f Filter) Matches(rec Record) bool {
	if f.BusinessFocus != "" && !strings.EqualFold(rec.Metadata.BusinessFocus, f.BusinessFocus) {
		return false
	}
	if f.Participant != "" && !strings.EqualFold(rec.Participant, f.Participant) {
		return false
	}
	if f.MinUrgency > 0 && rec.Metadata.UrgencyLevel < f.MinUrgency {
		return false
	}
	return true
}
