package oifits

import (
	"math"
)

// Type enumerates the scalar kinds a keyword or column may hold
type Type int

const (
	// TypeChar holds character strings (FITS code A)
	TypeChar Type = iota
	// TypeShort holds 16 bit integers (FITS code I)
	TypeShort
	// TypeInt holds 32 bit integers (FITS code J)
	TypeInt
	// TypeReal holds single precision floats (FITS code E)
	TypeReal
	// TypeDouble holds double precision floats (FITS code D)
	TypeDouble
	// TypeComplex holds pairs of single precision floats (FITS code C)
	TypeComplex
	// TypeLogical holds booleans (FITS code L)
	TypeLogical
)

// Storage enumerates the Go element types backing column and keyword values
type Storage int

const (
	// StorageString stores string elements
	StorageString Storage = iota
	// StorageInt16 stores int16 elements
	StorageInt16
	// StorageInt32 stores int32 elements
	StorageInt32
	// StorageFloat32 stores float32 elements
	StorageFloat32
	// StorageFloat64 stores float64 elements
	StorageFloat64
	// StorageBool stores bool elements
	StorageBool
)

const (
	// UndefinedShort is the placeholder written into fresh TypeShort storage
	UndefinedShort int16 = math.MinInt16
	// UndefinedInt is the placeholder written into fresh TypeInt storage
	UndefinedInt int32 = math.MinInt32
	// UndefinedString is the placeholder written into fresh TypeChar storage
	UndefinedString = ""
)

var (
	// UndefinedFloat is the placeholder written into fresh TypeReal and TypeComplex storage
	UndefinedFloat = float32(math.NaN())
	// UndefinedDouble is the placeholder written into fresh TypeDouble storage
	UndefinedDouble = math.NaN()
)

var typeCodes = [...]byte{'A', 'I', 'J', 'E', 'D', 'C', 'L'}

var typeNames = [...]string{"char", "short", "int", "real", "double", "complex", "logical"}

// Storage returns the base storage representation of this Type
func (t Type) Storage() Storage {
	switch t {
	case TypeShort:
		return StorageInt16
	case TypeInt:
		return StorageInt32
	case TypeReal, TypeComplex:
		return StorageFloat32
	case TypeDouble:
		return StorageFloat64
	case TypeLogical:
		return StorageBool
	default:
		return StorageString
	}
}

// Undefined returns the placeholder value of this Type. Complex has no
// scalar placeholder, in which case ok is false.
func (t Type) Undefined() (v interface{}, ok bool) {
	if t == TypeComplex {
		return nil, false
	}
	return t.Storage().Undefined(), true
}

// IsNumeric returns true iff min/max ranges apply to this Type
func (t Type) IsNumeric() bool {
	switch t {
	case TypeShort, TypeInt, TypeReal, TypeDouble:
		return true
	}
	return false
}

// Code returns the FITS TFORM letter of this Type
func (t Type) Code() byte {
	if t < 0 || int(t) >= len(typeCodes) {
		return '?'
	}
	return typeCodes[t]
}

// String returns a readable name for this Type
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// TypeFromCode returns the Type matching a FITS TFORM letter
func TypeFromCode(code byte) (Type, bool) {
	for i, c := range typeCodes {
		if c == code {
			return Type(i), true
		}
	}
	return TypeChar, false
}

// Undefined returns the leaf value used to fill freshly allocated storage
func (s Storage) Undefined() interface{} {
	switch s {
	case StorageInt16:
		return UndefinedShort
	case StorageInt32:
		return UndefinedInt
	case StorageFloat32:
		return UndefinedFloat
	case StorageFloat64:
		return UndefinedDouble
	case StorageBool:
		return false
	default:
		return UndefinedString
	}
}

// String returns the Go element type name of this Storage
func (s Storage) String() string {
	switch s {
	case StorageInt16:
		return "int16"
	case StorageInt32:
		return "int32"
	case StorageFloat32:
		return "float32"
	case StorageFloat64:
		return "float64"
	case StorageBool:
		return "bool"
	default:
		return "string"
	}
}
