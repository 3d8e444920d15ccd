package errors

import (
	"fmt"
)

// InvalidShapeError occurs when a table is initialized with fewer than one row
type InvalidShapeError struct{ Rows int }

// Error returns a textual representation of this InvalidShapeError
func (e InvalidShapeError) Error() string {
	return fmt.Sprintf("Invalid number of rows %d: the table must have at least 1 row", e.Rows)
}

// TypeMismatchError occurs when a keyword or column value does not match the storage kind declared by its descriptor
type TypeMismatchError struct {
	Name string
	Want string
	Got  string
}

// Error returns a textual representation of this TypeMismatchError
func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("Value for %s must be %s, was %s", e.Name, e.Want, e.Got)
}

// UnknownMemberError occurs when a keyword or column name is not declared by a table's schema
type UnknownMemberError struct {
	Table string
	Name  string
}

// Error returns a textual representation of this UnknownMemberError
func (e UnknownMemberError) Error() string {
	return fmt.Sprintf("Table %s does not declare %s", e.Table, e.Name)
}

// UnknownTableError occurs when no table kind is registered for an extension name
type UnknownTableError struct{ ExtName string }

// Error returns a textual representation of this UnknownTableError
func (e UnknownTableError) Error() string {
	return fmt.Sprintf("Unsupported table extension %s", e.ExtName)
}

// DuplicateTableError occurs when a table is added to a container it already belongs to, or to a second container
type DuplicateTableError struct{ ExtName string }

// Error returns a textual representation of this DuplicateTableError
func (e DuplicateTableError) Error() string {
	return fmt.Sprintf("Table %s already belongs to a container", e.ExtName)
}
