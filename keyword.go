package oifits

import (
	"fmt"
)

// KeywordDescriptor describes a scalar attribute of a table. It is immutable once built.
type KeywordDescriptor struct {
	name        string
	description string
	dataType    Type
	unit        Unit
	optional    bool
	accepted    AcceptedValueProvider
}

// KeywordOption customizes a KeywordDescriptor at construction
type KeywordOption func(*KeywordDescriptor)

// WithKeywordUnit sets the unit of a keyword
func WithKeywordUnit(u Unit) KeywordOption {
	return func(k *KeywordDescriptor) { k.unit = u }
}

// OptionalKeyword marks a keyword as optional
func OptionalKeyword() KeywordOption {
	return func(k *KeywordDescriptor) { k.optional = true }
}

// WithKeywordAccepted constrains the values of a keyword
func WithKeywordAccepted(p AcceptedValueProvider) KeywordOption {
	return func(k *KeywordDescriptor) { k.accepted = p }
}

// NewKeyword is a factory for KeywordDescriptors
func NewKeyword(name string, description string, dataType Type, opts ...KeywordOption) *KeywordDescriptor {
	k := &KeywordDescriptor{name: name, description: description, dataType: dataType}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Name returns the keyword name, unique within a table
func (k *KeywordDescriptor) Name() string {
	return k.name
}

// Description returns a human description of the keyword
func (k *KeywordDescriptor) Description() string {
	return k.description
}

// Type returns the scalar kind of the keyword
func (k *KeywordDescriptor) Type() Type {
	return k.dataType
}

// Unit returns the physical unit of the keyword
func (k *KeywordDescriptor) Unit() Unit {
	return k.unit
}

// IsOptional returns true iff the keyword may be absent
func (k *KeywordDescriptor) IsOptional() bool {
	return k.optional
}

// Accepted returns the accepted values provider, or nil if the keyword is unconstrained
func (k *KeywordDescriptor) Accepted() AcceptedValueProvider {
	return k.accepted
}

// String returns a short representation such as "NAXIS2 (int)"
func (k *KeywordDescriptor) String() string {
	return fmt.Sprintf("%s (%s)", k.name, k.dataType)
}

// check validates a present keyword value against this descriptor
func (k *KeywordDescriptor) check(checker *Checker, owner OITable, value interface{}) {
	if !scalarMatches(k.dataType, value) {
		checker.RuleFailed(RuleKeywordFormat, owner, k.name,
			fmt.Sprintf("Invalid format for keyword '%s', expected %s but was %T", k.name, k.dataType, value))
		return
	}
	if k.accepted == nil {
		return
	}
	set := k.accepted.AcceptedValues(owner)
	if set.IsEmpty() {
		return
	}
	var ok bool
	switch v := value.(type) {
	case string:
		ok = set.HasString(v)
	case int16:
		ok = set.HasInt(int32(v))
	case int32:
		ok = set.HasInt(v)
	default:
		ok = true
	}
	if !ok {
		checker.RuleFailed(RuleKeywordAccepted, owner, k.name,
			fmt.Sprintf("Invalid value for keyword '%s': '%v' is not in %s", k.name, value, set))
	}
}

// scalarMatches returns true iff v has the Go type backing scalars of dataType
func scalarMatches(dataType Type, v interface{}) bool {
	switch v.(type) {
	case string:
		return dataType == TypeChar
	case int16:
		return dataType == TypeShort
	case int32:
		return dataType == TypeInt
	case float32:
		return dataType == TypeReal
	case float64:
		return dataType == TypeDouble
	case complex64:
		return dataType == TypeComplex
	case bool:
		return dataType == TypeLogical
	}
	return false
}
