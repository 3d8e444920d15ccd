package oifits

import (
	"fmt"
	"sort"
	"strings"
)

// AcceptedSet is an enumeration of the values a keyword or column accepts.
// An empty AcceptedSet means the constraint cannot be evaluated and is skipped.
type AcceptedSet struct {
	strs []string
	ints []int32
}

// AcceptStrings builds an AcceptedSet of string values
func AcceptStrings(values ...string) AcceptedSet {
	return AcceptedSet{strs: values}
}

// AcceptInts builds an AcceptedSet of integer values
func AcceptInts(values ...int32) AcceptedSet {
	return AcceptedSet{ints: values}
}

// AcceptShorts builds an AcceptedSet of 16 bit integer values
func AcceptShorts(values ...int16) AcceptedSet {
	ints := make([]int32, len(values))
	for i, v := range values {
		ints[i] = int32(v)
	}
	return AcceptedSet{ints: ints}
}

// IsEmpty returns true iff this set enumerates nothing
func (s AcceptedSet) IsEmpty() bool {
	return len(s.strs) == 0 && len(s.ints) == 0
}

// Strings returns the accepted string values
func (s AcceptedSet) Strings() []string {
	return s.strs
}

// Ints returns the accepted integer values
func (s AcceptedSet) Ints() []int32 {
	return s.ints
}

// HasString returns true iff v is accepted. Strings are compared after trimming trailing blanks, as FITS pads them.
func (s AcceptedSet) HasString(v string) bool {
	v = strings.TrimRight(v, " ")
	for _, a := range s.strs {
		if a == v {
			return true
		}
	}
	return false
}

// HasInt returns true iff v is accepted
func (s AcceptedSet) HasInt(v int32) bool {
	for _, a := range s.ints {
		if a == v {
			return true
		}
	}
	return false
}

// String returns a readable enumeration of this set
func (s AcceptedSet) String() string {
	if len(s.strs) != 0 {
		return "'" + strings.Join(s.strs, "' | '") + "'"
	}
	ints := append([]int32(nil), s.ints...)
	sort.Slice(ints, func(i, j int) bool { return ints[i] < ints[j] })
	parts := make([]string, len(ints))
	for i, v := range ints {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, " | ")
}

// AcceptedValueProvider computes the accepted values of a keyword or column.
// It is evaluated at check time against the owning table, so the result can
// depend on sibling tables of the owner's container.
type AcceptedValueProvider interface {
	AcceptedValues(owner OITable) AcceptedSet
}

// AcceptedValuesFunc adapts a function to the AcceptedValueProvider interface
type AcceptedValuesFunc func(owner OITable) AcceptedSet

// AcceptedValues calls f(owner)
func (f AcceptedValuesFunc) AcceptedValues(owner OITable) AcceptedSet {
	return f(owner)
}

// FixedAccepted returns a provider for an enumeration which does not depend on any table
func FixedAccepted(set AcceptedSet) AcceptedValueProvider {
	return AcceptedValuesFunc(func(OITable) AcceptedSet { return set })
}
