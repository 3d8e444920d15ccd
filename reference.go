package oifits

import (
	"strings"
)

// RefState is the resolution state of a cross-reference
type RefState int

const (
	// RefUnresolved means the naming keyword is set but no table of the container matches it (yet)
	RefUnresolved RefState = iota
	// RefResolved means the reference points to a table of the container
	RefResolved
	// RefNoKeyword means the naming keyword is absent, so the reference does not apply
	RefNoKeyword
)

// String returns a readable name for this RefState
func (s RefState) String() string {
	switch s {
	case RefResolved:
		return "resolved"
	case RefNoKeyword:
		return "not applicable"
	default:
		return "unresolved"
	}
}

// reference lazily resolves the table named by a keyword of its owner. Only
// positive results are cached: a missing table may be added to the container later.
type reference struct {
	keyword    string
	kind       Kind
	resolved   OITable
	generation uint64
}

// invalidate drops the cached table
func (r *reference) invalidate() {
	r.resolved = nil
}

// get returns the referenced table, resolving it through the owner's container when needed
func (r *reference) get(owner *Table) (OITable, RefState) {
	if !owner.HasKeyword(r.keyword) {
		r.resolved = nil
		return nil, RefNoKeyword
	}
	c := owner.container
	if r.resolved != nil && c != nil && r.generation == c.generation {
		return r.resolved, RefResolved
	}
	r.resolved = nil

	name := owner.Keyword(r.keyword)
	var found OITable
	if c != nil {
		found = c.lookup(r.kind, name)
	}
	if found == nil {
		owner.log.Warn("Missing "+r.kind.ExtName()+" table", "table", owner.String(), r.keyword, strings.TrimRight(name, " "))
		return nil, RefUnresolved
	}
	owner.log.Debug("Resolved "+r.kind.ExtName()+" reference", "table", owner.String(), "target", found.Base().String())
	r.resolved = found
	r.generation = c.generation
	return found, RefResolved
}
