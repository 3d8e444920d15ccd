package oifits

import (
	"fmt"
	"math"
	"reflect"
)

// ColumnDescriptor describes a tabular field of a table. It is immutable once built.
//
// Each row holds a scalar, or repeat elements when IsArray, or a repeat x repeat
// matrix when Is3D. Complex columns add a trailing dimension of 2 (re, im).
type ColumnDescriptor struct {
	name        string
	description string
	dataType    Type
	unit        Unit
	repeat      int
	repeatRef   string
	isArray     bool
	is3D        bool
	optional    bool
	finite      bool
	accepted    AcceptedValueProvider
}

// ColumnOption customizes a ColumnDescriptor at construction
type ColumnOption func(*ColumnDescriptor)

// WithUnit sets the unit of a column
func WithUnit(u Unit) ColumnOption {
	return func(c *ColumnDescriptor) { c.unit = u }
}

// Optional marks a column as optional
func Optional() ColumnOption {
	return func(c *ColumnDescriptor) { c.optional = true }
}

// WithRepeat makes every row of the column an array of n elements
func WithRepeat(n int) ColumnOption {
	return func(c *ColumnDescriptor) {
		c.repeat = n
		c.isArray = true
	}
}

// RepeatFrom makes every row of the column an array whose length is resolved
// by the owning table from ref (e.g. "NWAVE")
func RepeatFrom(ref string) ColumnOption {
	return func(c *ColumnDescriptor) {
		c.repeatRef = ref
		c.isArray = true
	}
}

// Matrix makes every row of an array column a square matrix
func Matrix() ColumnOption {
	return func(c *ColumnDescriptor) {
		c.isArray = true
		c.is3D = true
	}
}

// CharWidth sets the maximum width of a character column. Rows stay scalar strings.
func CharWidth(n int) ColumnOption {
	return func(c *ColumnDescriptor) { c.repeat = n }
}

// RequireFinite flags NaN or infinite values of a floating column
func RequireFinite() ColumnOption {
	return func(c *ColumnDescriptor) { c.finite = true }
}

// WithAccepted constrains the values of a column
func WithAccepted(p AcceptedValueProvider) ColumnOption {
	return func(c *ColumnDescriptor) { c.accepted = p }
}

// NewColumn is a factory for ColumnDescriptors
func NewColumn(name string, description string, dataType Type, opts ...ColumnOption) *ColumnDescriptor {
	c := &ColumnDescriptor{name: name, description: description, dataType: dataType, repeat: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.repeat < 1 {
		c.repeat = 1
	}
	return c
}

// Name returns the column name
func (c *ColumnDescriptor) Name() string {
	return c.name
}

// Description returns a human description of the column
func (c *ColumnDescriptor) Description() string {
	return c.description
}

// Type returns the scalar kind of the column elements
func (c *ColumnDescriptor) Type() Type {
	return c.dataType
}

// Unit returns the physical unit of the column
func (c *ColumnDescriptor) Unit() Unit {
	return c.unit
}

// Repeat returns the static per-row element count
func (c *ColumnDescriptor) Repeat() int {
	return c.repeat
}

// RepeatRef returns the name the owning table resolves the repeat count from, or ""
func (c *ColumnDescriptor) RepeatRef() string {
	return c.repeatRef
}

// IsArray returns true iff each row stores several elements
func (c *ColumnDescriptor) IsArray() bool {
	return c.isArray
}

// Is3D returns true iff each row stores a square matrix
func (c *ColumnDescriptor) Is3D() bool {
	return c.is3D
}

// IsOptional returns true iff the column may be absent
func (c *ColumnDescriptor) IsOptional() bool {
	return c.optional
}

// Accepted returns the accepted values provider, or nil if the column is unconstrained
func (c *ColumnDescriptor) Accepted() AcceptedValueProvider {
	return c.accepted
}

// Format returns the FITS TFORM of the column for a given repeat, such as "3D" or "16A"
func (c *ColumnDescriptor) Format(repeat int) string {
	n := 1
	if c.dataType == TypeChar {
		n = c.repeat
	} else if c.isArray {
		n = repeat
		if c.is3D {
			n *= repeat
		}
	}
	return fmt.Sprintf("%d%c", n, c.dataType.Code())
}

// String returns a short representation such as "STAXYZ [3D]"
func (c *ColumnDescriptor) String() string {
	return fmt.Sprintf("%s [%s]", c.name, c.Format(c.repeat))
}

// Dims returns the dimension vector of the column storage for rows rows
// and an effective repeat count: [rows, repeat?, repeat?, 2?]
func (c *ColumnDescriptor) Dims(rows int, repeat int) []int {
	dims := make([]int, 1, 4)
	dims[0] = rows
	if c.isArray {
		dims = append(dims, repeat)
		if c.is3D {
			// square matrix M[n x n]
			dims = append(dims, repeat)
		}
	}
	if c.dataType == TypeComplex {
		dims = append(dims, 2)
	}
	return dims
}

// ArrayType returns the Go type of the column storage
func (c *ColumnDescriptor) ArrayType() reflect.Type {
	return ArrayType(c.dataType.Storage(), len(c.Dims(1, 1)))
}

// check validates a present column value against this descriptor
func (c *ColumnDescriptor) check(checker *Checker, owner OITable, value interface{}, rows int, repeat int) {
	rv := reflect.ValueOf(value)
	if rv.Type() != c.ArrayType() {
		checker.RuleFailed(RuleColumnFormat, owner, c.name,
			fmt.Sprintf("Invalid format for column '%s', expected %s but was %T", c.name, c.ArrayType(), value))
		return
	}
	if rv.Len() != rows {
		checker.RuleFailed(RuleColumnRows, owner, c.name,
			fmt.Sprintf("Invalid length for column '%s', expected %d rows but was %d", c.name, rows, rv.Len()))
	}
	dims := c.Dims(rows, repeat)
	for i := 0; i < rv.Len(); i++ {
		if d, ok := badShape(rv.Index(i), dims[1:]); !ok {
			checker.RuleFailed(RuleColumnDim, owner, c.name,
				fmt.Sprintf("Invalid dimensions for column '%s' at row %d, expected %v but was %v", c.name, i, dims[1:], d))
			break
		}
	}
	c.checkAccepted(checker, owner, rv)
	if c.finite {
		c.checkFinite(checker, owner, rv)
	}
}

// badShape compares the dimensions of one row against the expected ones
func badShape(row reflect.Value, dims []int) ([]int, bool) {
	if len(dims) == 0 {
		return nil, true
	}
	if row.Len() != dims[0] {
		return ArrayDims(row.Interface()), false
	}
	for j := 0; j < row.Len(); j++ {
		if _, ok := badShape(row.Index(j), dims[1:]); !ok {
			return ArrayDims(row.Interface()), false
		}
	}
	return nil, true
}

func (c *ColumnDescriptor) checkAccepted(checker *Checker, owner OITable, rv reflect.Value) {
	if c.accepted == nil {
		return
	}
	set := c.accepted.AcceptedValues(owner)
	if set.IsEmpty() {
		return
	}
	for i := 0; i < rv.Len(); i++ {
		forEachLeaf(rv.Index(i), func(leaf reflect.Value) bool {
			var ok bool
			switch leaf.Kind() {
			case reflect.String:
				ok = set.HasString(leaf.String())
			case reflect.Int16, reflect.Int32:
				ok = set.HasInt(int32(leaf.Int()))
			default:
				return false
			}
			if !ok {
				checker.RuleFailed(RuleColumnAccepted, owner, c.name,
					fmt.Sprintf("Invalid value at row %d for column '%s': '%v' is not in %s", i, c.name, leaf.Interface(), set))
				return false
			}
			return true
		})
	}
}

func (c *ColumnDescriptor) checkFinite(checker *Checker, owner OITable, rv reflect.Value) {
	count := 0
	forEachLeaf(rv, func(leaf reflect.Value) bool {
		if leaf.Kind() == reflect.Float32 || leaf.Kind() == reflect.Float64 {
			f := leaf.Float()
			if math.IsNaN(f) || math.IsInf(f, 0) {
				count++
			}
		}
		return true
	})
	if count != 0 {
		checker.RuleFailed(RuleColumnFinite, owner, c.name,
			fmt.Sprintf("Column '%s' has %d undefined or infinite values", c.name, count))
	}
}

// forEachLeaf calls fn on every scalar of a nested slice until fn returns false
func forEachLeaf(v reflect.Value, fn func(leaf reflect.Value) bool) bool {
	if v.Kind() != reflect.Slice {
		return fn(v)
	}
	for i := 0; i < v.Len(); i++ {
		if !forEachLeaf(v.Index(i), fn) {
			return false
		}
	}
	return true
}
