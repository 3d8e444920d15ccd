package oifits

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"

	"github.com/go-sif/oifits/errors"
	"github.com/go-sif/oifits/logging"
	"github.com/gofrs/uuid"
)

// Kind enumerates the concrete table kinds of the data model
type Kind int

const (
	// KindTarget is the OI_TARGET table
	KindTarget Kind = iota
	// KindArray is the OI_ARRAY table (array geometry)
	KindArray
	// KindWavelength is the OI_WAVELENGTH table (spectral setup)
	KindWavelength
	// KindVis is the OI_VIS table (complex visibilities)
	KindVis
	// KindVis2 is the OI_VIS2 table (squared visibilities)
	KindVis2
	// KindT3 is the OI_T3 table (triple products)
	KindT3
)

var extNames = [...]string{"OI_TARGET", "OI_ARRAY", "OI_WAVELENGTH", "OI_VIS", "OI_VIS2", "OI_T3"}

// ExtName returns the FITS EXTNAME of this Kind
func (k Kind) ExtName() string {
	if k < 0 || int(k) >= len(extNames) {
		return "UNKNOWN"
	}
	return extNames[k]
}

// KindFromExtName returns the Kind matching a FITS EXTNAME
func KindFromExtName(extName string) (Kind, bool) {
	for i, n := range extNames {
		if n == extName {
			return Kind(i), true
		}
	}
	return KindTarget, false
}

// IsData returns true iff tables of this Kind hold measurements referring to other tables
func (k Kind) IsData() bool {
	return k == KindVis || k == KindVis2 || k == KindT3
}

// OITable is implemented by every concrete table kind
type OITable interface {
	Kind() Kind                   // Kind returns the concrete kind of this table
	Base() *Table                 // Base returns the generic table embedded in this table
	CheckSyntax(checker *Checker) // CheckSyntax validates keywords, columns and kind-specific rules
}

// tableHooks let concrete kinds plug behavior into the generic table
type tableHooks struct {
	derive        func(name string) interface{} // computes a derived column value
	repeat        func(ref string) int          // resolves a RepeatFrom reference
	keywordSet    func(name string)             // runs after a keyword is rewritten
	derivedExpiry func() bool                   // returns true iff cached derived values depend on stale data
}

// Table is the generic schema-driven table. It owns its keyword values,
// column arrays, derived values and min/max ranges. Table is not safe for
// concurrent use.
type Table struct {
	id        uuid.UUID
	kind      Kind
	self      OITable
	extNb     int
	container *Container
	version   uint64
	hooks     tableHooks
	log       *slog.Logger

	keywordDescs map[string]*KeywordDescriptor
	keywordOrder []*KeywordDescriptor
	keywords     map[string]interface{}

	columnDescs map[string]*ColumnDescriptor
	columnOrder []*ColumnDescriptor
	columns     map[string]interface{}

	// lazily created
	derivedDescs map[string]*ColumnDescriptor
	derivedOrder []*ColumnDescriptor
	derived      map[string]interface{}
	ranges       map[string]*Range
}

var (
	keywordNaxis2 = NewKeyword(KeywordNaxis2, "number of table rows", TypeInt)
	keywordExtVer = NewKeyword(KeywordExtVer, "extension version", TypeInt, OptionalKeyword())
)

// init prepares the generic part of a concrete table
func (t *Table) init(kind Kind, self OITable) {
	t.id = uuid.Must(uuid.NewV4())
	t.kind = kind
	t.self = self
	t.log = logging.Default()
	t.keywordDescs = make(map[string]*KeywordDescriptor)
	t.keywords = make(map[string]interface{})
	t.columnDescs = make(map[string]*ColumnDescriptor)
	t.columns = make(map[string]interface{})

	t.addKeyword(keywordNaxis2)
	t.addKeyword(keywordExtVer)
}

// Initialize sets the row count and allocates every mandatory column, filled with undefined values
func (t *Table) Initialize(rows int) error {
	if rows < 1 {
		return errors.InvalidShapeError{Rows: rows}
	}
	t.setNbRows(rows)
	for _, desc := range t.columnOrder {
		if desc.IsOptional() {
			continue
		}
		t.columns[desc.Name()] = t.CreateColumnArray(desc, rows)
	}
	t.SetChanged()
	return nil
}

// CreateColumnArray allocates a column array of the shape [rows, repeat?, repeat?, 2?]
// with every leaf set to the undefined value of the column type
func (t *Table) CreateColumnArray(desc *ColumnDescriptor, rows int) interface{} {
	dims := desc.Dims(rows, t.Repeat(desc))
	value := NewArray(desc.Type().Storage(), dims)
	t.log.Debug("column array allocated", "table", t.String(), "column", desc.Name(), "array", ArrayDescription(value))
	return value
}

// Repeat returns the effective per-row element count of a column. Columns
// repeated from a reference fall back to their static repeat when the reference cannot be resolved.
func (t *Table) Repeat(desc *ColumnDescriptor) int {
	if desc.RepeatRef() != "" && t.hooks.repeat != nil {
		if n := t.hooks.repeat(desc.RepeatRef()); n > 0 {
			return n
		}
	}
	return desc.Repeat()
}

// SetChanged clears every cached value derived from the table data
func (t *Table) SetChanged() {
	t.version++
	for k := range t.derived {
		delete(t.derived, k)
	}
	for k := range t.ranges {
		delete(t.ranges, k)
	}
}

// Version is incremented each time the table data changes
func (t *Table) Version() uint64 {
	return t.version
}

// ID returns the unique identifier of this table
func (t *Table) ID() uuid.UUID {
	return t.id
}

// Kind returns the concrete kind of this table
func (t *Table) Kind() Kind {
	return t.kind
}

// Base returns t
func (t *Table) Base() *Table {
	return t
}

// ExtName returns the FITS EXTNAME of this table
func (t *Table) ExtName() string {
	return t.kind.ExtName()
}

// ExtNb returns the position of this table in its container, starting at 1, or 0 when detached
func (t *Table) ExtNb() int {
	return t.extNb
}

// Container returns the container owning this table, or nil
func (t *Table) Container() *Container {
	return t.container
}

// SetLogger replaces the logger of this table
func (t *Table) SetLogger(l *slog.Logger) {
	t.log = l
}

// String returns a short identification such as "OI_VIS2#4"
func (t *Table) String() string {
	return fmt.Sprintf("%s#%d", t.ExtName(), t.extNb)
}

/*
 * --- Keywords ---
 */

func (t *Table) addKeyword(desc *KeywordDescriptor) {
	if _, ok := t.keywordDescs[desc.Name()]; !ok {
		t.keywordOrder = append(t.keywordOrder, desc)
	}
	t.keywordDescs[desc.Name()] = desc
}

// KeywordDescs returns the keyword descriptors in schema order
func (t *Table) KeywordDescs() []*KeywordDescriptor {
	return t.keywordOrder
}

// KeywordDesc returns a keyword descriptor, or nil if undeclared
func (t *Table) KeywordDesc(name string) *KeywordDescriptor {
	return t.keywordDescs[name]
}

// KeywordValue returns a keyword value, or nil if unset
func (t *Table) KeywordValue(name string) interface{} {
	return t.keywords[name]
}

// HasKeyword returns true iff the keyword is set
func (t *Table) HasKeyword(name string) bool {
	_, ok := t.keywords[name]
	return ok
}

// Keyword returns a string keyword value, or "" if unset or not a string
func (t *Table) Keyword(name string) string {
	s, _ := t.keywords[name].(string)
	return s
}

// KeywordInt returns an integer keyword value, or 0 if unset or not an integer
func (t *Table) KeywordInt(name string) int {
	switch v := t.keywords[name].(type) {
	case int16:
		return int(v)
	case int32:
		return int(v)
	}
	return 0
}

// KeywordDouble returns a numeric keyword value, or NaN if unset or not numeric
func (t *Table) KeywordDouble(name string) float64 {
	switch v := t.keywords[name].(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	}
	return math.NaN()
}

// SetKeywordValue defines a keyword value, which must have the Go type backing the declared keyword type.
// A nil value removes the keyword.
func (t *Table) SetKeywordValue(name string, value interface{}) error {
	desc := t.keywordDescs[name]
	if desc == nil {
		return errors.UnknownMemberError{Table: t.String(), Name: name}
	}
	if value != nil && !scalarMatches(desc.Type(), value) {
		return errors.TypeMismatchError{Name: name, Want: desc.Type().Storage().String(), Got: fmt.Sprintf("%T", value)}
	}
	t.putKeyword(name, value)
	return nil
}

// SetKeyword defines a string keyword value. Values which do not match the
// declared keyword type are dropped with a warning, see SetKeywordValue.
func (t *Table) SetKeyword(name string, value string) {
	t.setKeywordChecked(name, value)
}

// SetKeywordInt defines an integer keyword value, stored with the width of the declared keyword type
func (t *Table) SetKeywordInt(name string, value int) {
	if desc := t.keywordDescs[name]; desc != nil && desc.Type() == TypeShort {
		t.setKeywordChecked(name, int16(value))
		return
	}
	t.setKeywordChecked(name, int32(value))
}

// SetKeywordDouble defines a floating keyword value, stored with the width of the declared keyword type
func (t *Table) SetKeywordDouble(name string, value float64) {
	if desc := t.keywordDescs[name]; desc != nil && desc.Type() == TypeReal {
		t.setKeywordChecked(name, float32(value))
		return
	}
	t.setKeywordChecked(name, value)
}

func (t *Table) setKeywordChecked(name string, value interface{}) {
	if err := t.SetKeywordValue(name, value); err != nil {
		t.log.Warn("keyword value dropped", "table", t.String(), "error", err)
	}
}

// RemoveKeyword unsets a keyword
func (t *Table) RemoveKeyword(name string) {
	t.putKeyword(name, nil)
}

func (t *Table) putKeyword(name string, value interface{}) {
	if value == nil {
		delete(t.keywords, name)
	} else {
		t.keywords[name] = value
	}
	t.SetChanged()
	if t.hooks.keywordSet != nil {
		t.hooks.keywordSet(name)
	}
}

// NbRows returns the number of rows, i.e. the NAXIS2 keyword value
func (t *Table) NbRows() int {
	return t.KeywordInt(KeywordNaxis2)
}

func (t *Table) setNbRows(rows int) {
	t.SetKeywordInt(KeywordNaxis2, rows)
}

// ExtVer returns the EXTVER keyword value
func (t *Table) ExtVer() int {
	return t.KeywordInt(KeywordExtVer)
}

// SetExtVer defines the EXTVER keyword value
func (t *Table) SetExtVer(extVer int) {
	t.SetKeywordInt(KeywordExtVer, extVer)
}

/*
 * --- Column descriptors ---
 */

func (t *Table) addColumn(desc *ColumnDescriptor) {
	if _, ok := t.columnDescs[desc.Name()]; !ok {
		t.columnOrder = append(t.columnOrder, desc)
	}
	t.columnDescs[desc.Name()] = desc
}

// ColumnDescs returns the standard column descriptors in schema order
func (t *Table) ColumnDescs() []*ColumnDescriptor {
	return t.columnOrder
}

// ColumnDesc returns a standard column descriptor, or nil if undeclared
func (t *Table) ColumnDesc(name string) *ColumnDescriptor {
	return t.columnDescs[name]
}

// NbColumns returns the number of standard columns
func (t *Table) NbColumns() int {
	return len(t.columnOrder)
}

// HasColumn returns true iff the table holds the column: mandatory columns always count as present
func (t *Table) HasColumn(desc *ColumnDescriptor) bool {
	if desc.IsOptional() {
		return t.columns[desc.Name()] != nil
	}
	return true
}

// LookupColumn returns the standard column descriptor of that name, else the
// derived one, else nil. Standard columns always take precedence.
func (t *Table) LookupColumn(name string) *ColumnDescriptor {
	if desc := t.ColumnDesc(name); desc != nil {
		return desc
	}
	return t.DerivedColumnDesc(name)
}

// AllColumnDescs returns the standard then derived column descriptors
func (t *Table) AllColumnDescs() []*ColumnDescriptor {
	all := make([]*ColumnDescriptor, 0, len(t.columnOrder)+len(t.derivedOrder))
	all = append(all, t.columnOrder...)
	return append(all, t.derivedOrder...)
}

// NumericalColumns returns the standard then derived column descriptors holding double values
func (t *Table) NumericalColumns() []*ColumnDescriptor {
	var res []*ColumnDescriptor
	for _, desc := range t.AllColumnDescs() {
		if desc.Type() == TypeDouble {
			res = append(res, desc)
		}
	}
	return res
}

/*
 * --- Column values ---
 */

// ColumnValue returns the stored array of a standard column, or nil if never defined
func (t *Table) ColumnValue(name string) interface{} {
	return t.columns[name]
}

// SetColumnValue defines the array of a standard column. The array must have
// the Go type of the column storage; its dimensions are checked by CheckColumns.
// A nil value removes the column array.
func (t *Table) SetColumnValue(name string, value interface{}) error {
	desc := t.columnDescs[name]
	if desc == nil {
		return errors.UnknownMemberError{Table: t.String(), Name: name}
	}
	if value == nil {
		delete(t.columns, name)
		t.SetChanged()
		return nil
	}
	if reflect.TypeOf(value) != desc.ArrayType() {
		return errors.TypeMismatchError{Name: name, Want: desc.ArrayType().String(), Got: fmt.Sprintf("%T", value)}
	}
	t.log.Debug("column value set", "table", t.String(), "column", name, "array", ArrayDescription(value))
	t.columns[name] = value
	t.SetChanged()
	return nil
}

// AllocateColumn allocates a fresh array for a declared column, typically an optional one, using the current row count
func (t *Table) AllocateColumn(name string) (interface{}, error) {
	desc := t.columnDescs[name]
	if desc == nil {
		return nil, errors.UnknownMemberError{Table: t.String(), Name: name}
	}
	rows := t.NbRows()
	if rows < 1 {
		return nil, errors.InvalidShapeError{Rows: rows}
	}
	value := t.CreateColumnArray(desc, rows)
	t.columns[name] = value
	t.SetChanged()
	return value, nil
}

// ColumnString returns a string column, or nil if undefined or of another storage
func (t *Table) ColumnString(name string) []string {
	v, _ := t.columns[name].([]string)
	return v
}

// ColumnInt16 returns a 16 bit integer column, or nil if undefined or of another storage
func (t *Table) ColumnInt16(name string) []int16 {
	v, _ := t.columns[name].([]int16)
	return v
}

// ColumnInt16s returns a 16 bit integer array column, or nil if undefined or of another storage
func (t *Table) ColumnInt16s(name string) [][]int16 {
	v, _ := t.columns[name].([][]int16)
	return v
}

// ColumnInt32 returns a 32 bit integer column, or nil if undefined or of another storage
func (t *Table) ColumnInt32(name string) []int32 {
	v, _ := t.columns[name].([]int32)
	return v
}

// ColumnFloat32 returns a single precision column, or nil if undefined or of another storage
func (t *Table) ColumnFloat32(name string) []float32 {
	v, _ := t.columns[name].([]float32)
	return v
}

// ColumnFloat64 returns a double precision column, or nil if undefined or of another storage
func (t *Table) ColumnFloat64(name string) []float64 {
	v, _ := t.columns[name].([]float64)
	return v
}

// ColumnFloat64s returns a double precision array column, or nil if undefined or of another storage
func (t *Table) ColumnFloat64s(name string) [][]float64 {
	v, _ := t.columns[name].([][]float64)
	return v
}

// ColumnComplexes returns a complex array column as [row][element][re, im], or nil if undefined or of another storage
func (t *Table) ColumnComplexes(name string) [][][]float32 {
	v, _ := t.columns[name].([][][]float32)
	return v
}

// ColumnBools returns a logical array column, or nil if undefined or of another storage
func (t *Table) ColumnBools(name string) [][]bool {
	v, _ := t.columns[name].([][]bool)
	return v
}

// ColumnBools3D returns a logical matrix column, or nil if undefined or of another storage
func (t *Table) ColumnBools3D(name string) [][][]bool {
	v, _ := t.columns[name].([][][]bool)
	return v
}

/*
 * --- Derived columns ---
 */

func (t *Table) addDerivedColumn(desc *ColumnDescriptor) {
	if t.derivedDescs == nil {
		t.derivedDescs = make(map[string]*ColumnDescriptor)
	}
	if _, ok := t.derivedDescs[desc.Name()]; !ok {
		t.derivedOrder = append(t.derivedOrder, desc)
	}
	t.derivedDescs[desc.Name()] = desc
}

// DerivedColumnDescs returns the derived column descriptors
func (t *Table) DerivedColumnDescs() []*ColumnDescriptor {
	return t.derivedOrder
}

// DerivedColumnDesc returns a derived column descriptor, or nil if undeclared
func (t *Table) DerivedColumnDesc(name string) *ColumnDescriptor {
	return t.derivedDescs[name]
}

// NbDerivedColumns returns the number of derived columns
func (t *Table) NbDerivedColumns() int {
	return len(t.derivedOrder)
}

// DerivedValue returns the value of a derived column, computing and caching it on first use.
// Returns nil if the column is undeclared or cannot be computed.
func (t *Table) DerivedValue(name string) interface{} {
	if t.derivedDescs[name] == nil {
		return nil
	}
	t.expireDerived()
	if v, ok := t.derived[name]; ok {
		return v
	}
	if t.hooks.derive == nil {
		return nil
	}
	v := t.hooks.derive(name)
	if v == nil {
		return nil
	}
	if t.derived == nil {
		t.derived = make(map[string]interface{})
	}
	t.log.Debug("derived column computed", "table", t.String(), "column", name, "array", ArrayDescription(v))
	t.derived[name] = v
	return v
}

// expireDerived clears the derived and range caches when the data they were computed from lives
// in another table which changed since
func (t *Table) expireDerived() {
	if t.hooks.derivedExpiry != nil && t.hooks.derivedExpiry() {
		t.SetChanged()
	}
}

// Values returns the array of a standard column, else the value of a derived column, else nil
func (t *Table) Values(name string) interface{} {
	if t.ColumnDesc(name) != nil {
		return t.ColumnValue(name)
	}
	return t.DerivedValue(name)
}

// ColumnAsFloat64 returns a standard or derived scalar double column, without conversion
func (t *Table) ColumnAsFloat64(name string) []float64 {
	desc := t.LookupColumn(name)
	if desc == nil || desc.Type() != TypeDouble || desc.IsArray() {
		return nil
	}
	v, _ := t.Values(name).([]float64)
	return v
}

// ColumnAsFloat64s returns a standard or derived double array column, without conversion
func (t *Table) ColumnAsFloat64s(name string) [][]float64 {
	desc := t.LookupColumn(name)
	if desc == nil || desc.Type() != TypeDouble || !desc.IsArray() {
		return nil
	}
	v, _ := t.Values(name).([][]float64)
	return v
}

// ColumnAsInt16s returns a standard or derived 16 bit integer array column
func (t *Table) ColumnAsInt16s(name string) [][]int16 {
	desc := t.LookupColumn(name)
	if desc == nil || desc.Type() != TypeShort || !desc.IsArray() {
		return nil
	}
	v, _ := t.Values(name).([][]int16)
	return v
}

/*
 * --- Checker ---
 */

// CheckSyntax validates the keywords then the columns of the table
func (t *Table) CheckSyntax(checker *Checker) {
	t.CheckKeywords(checker)
	t.CheckColumns(checker)
}

// CheckKeywords records missing mandatory keywords and invalid keyword values
func (t *Table) CheckKeywords(checker *Checker) {
	for _, desc := range t.keywordOrder {
		value := t.keywords[desc.Name()]
		if value == nil {
			if !desc.IsOptional() {
				checker.RuleFailed(RuleKeywordMandatory, t.owner(), desc.Name(),
					fmt.Sprintf("Missing keyword '%s'", desc.Name()))
			}
			continue
		}
		desc.check(checker, t.owner(), value)
	}
}

// CheckColumns records missing mandatory columns and invalid column values.
// In inspect mode a missing column is replaced by a placeholder array for the
// duration of the check so that its value rules still run.
func (t *Table) CheckColumns(checker *Checker) {
	t.log.Debug("checking columns", "table", t.String())
	rows := t.NbRows()
	for _, desc := range t.columnOrder {
		value := t.columns[desc.Name()]
		if value == nil {
			if !desc.IsOptional() {
				checker.RuleFailed(RuleColumnMandatory, t.owner(), desc.Name(),
					fmt.Sprintf("Missing column '%s'", desc.Name()))
			}
			if checker.InspectRules() && rows > 0 {
				value = t.CreateColumnArray(desc, rows)
			}
		}
		if value != nil {
			desc.check(checker, t.owner(), value, rows, t.Repeat(desc))
		}
	}
}

func (t *Table) owner() OITable {
	if t.self != nil {
		return t.self
	}
	return t
}
