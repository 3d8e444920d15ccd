package oifits

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-sif/oifits/errors"
	"github.com/go-sif/oifits/logging"
	"github.com/gofrs/uuid"
)

// Container holds the tables of one OIFits file and resolves names to tables.
//
// Tables refer to their container, and the container indexes OI_ARRAY and
// OI_WAVELENGTH tables by name. The index and the cross-references cached by
// data tables are invalidated each time the generation changes, i.e. when a
// table is added or removed, or when a referenced table is renamed.
// Container is not safe for concurrent use.
type Container struct {
	id         uuid.UUID
	tables     []OITable
	generation uint64
	log        *slog.Logger

	// lazily built name indexes, nil when stale
	arrays      map[string]*OIArray
	wavelengths map[string]*OIWavelength
}

// Option customizes a Container at construction
type Option func(*Container)

// WithLogger sets the logger of the container and of every table added to it
func WithLogger(l *slog.Logger) Option {
	return func(c *Container) { c.log = l }
}

// New creates an empty Container
func New(opts ...Option) *Container {
	c := &Container{
		id:  uuid.Must(uuid.NewV4()),
		log: logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTable creates a detached table of the kind named by extName
func NewTable(extName string) (OITable, error) {
	kind, ok := KindFromExtName(extName)
	if !ok {
		return nil, errors.UnknownTableError{ExtName: extName}
	}
	return NewTableOfKind(kind), nil
}

// NewTableOfKind creates a detached table of the given kind
func NewTableOfKind(kind Kind) OITable {
	switch kind {
	case KindArray:
		return NewOIArray()
	case KindWavelength:
		return NewOIWavelength()
	case KindVis:
		return NewOIVis()
	case KindVis2:
		return NewOIVis2()
	case KindT3:
		return NewOIT3()
	default:
		return NewOITarget()
	}
}

// ID returns the unique identifier of this Container
func (c *Container) ID() uuid.UUID {
	return c.id
}

// Logger returns the logger of this Container
func (c *Container) Logger() *slog.Logger {
	return c.log
}

// Generation is incremented each time table membership or a referenced name changes
func (c *Container) Generation() uint64 {
	return c.generation
}

func (c *Container) touch() {
	c.generation++
	c.arrays = nil
	c.wavelengths = nil
}

// Add appends a detached table to this Container. Its extension number becomes its 1-based position.
func (c *Container) Add(t OITable) error {
	base := t.Base()
	if base.container != nil {
		return errors.DuplicateTableError{ExtName: base.String()}
	}
	c.tables = append(c.tables, t)
	base.container = c
	base.extNb = len(c.tables)
	base.log = c.log
	c.touch()
	c.log.Debug("table added", "container", c.id.String(), "table", base.String(), "id", base.ID().String())
	return nil
}

// Remove detaches a table from this Container, renumbering the following tables.
// It returns false if the table does not belong to this Container.
func (c *Container) Remove(t OITable) bool {
	base := t.Base()
	if base.container != c {
		return false
	}
	for i, other := range c.tables {
		if other.Base() != base {
			continue
		}
		c.tables = append(c.tables[:i], c.tables[i+1:]...)
		for j := i; j < len(c.tables); j++ {
			c.tables[j].Base().extNb = j + 1
		}
		base.container = nil
		base.extNb = 0
		c.touch()
		c.log.Debug("table removed", "container", c.id.String(), "id", base.ID().String())
		return true
	}
	return false
}

// Tables returns every table in extension order
func (c *Container) Tables() []OITable {
	return c.tables
}

// NbTables returns the number of tables
func (c *Container) NbTables() int {
	return len(c.tables)
}

// Target returns the first OI_TARGET table, or nil
func (c *Container) Target() *OITarget {
	for _, t := range c.tables {
		if target, ok := t.(*OITarget); ok {
			return target
		}
	}
	return nil
}

// Targets returns every OI_TARGET table
func (c *Container) Targets() []*OITarget {
	var res []*OITarget
	for _, t := range c.tables {
		if target, ok := t.(*OITarget); ok {
			res = append(res, target)
		}
	}
	return res
}

// Arrays returns every OI_ARRAY table
func (c *Container) Arrays() []*OIArray {
	var res []*OIArray
	for _, t := range c.tables {
		if a, ok := t.(*OIArray); ok {
			res = append(res, a)
		}
	}
	return res
}

// Wavelengths returns every OI_WAVELENGTH table
func (c *Container) Wavelengths() []*OIWavelength {
	var res []*OIWavelength
	for _, t := range c.tables {
		if w, ok := t.(*OIWavelength); ok {
			res = append(res, w)
		}
	}
	return res
}

// Data returns every measurement table (OI_VIS, OI_VIS2, OI_T3)
func (c *Container) Data() []DataTable {
	var res []DataTable
	for _, t := range c.tables {
		if d, ok := t.(DataTable); ok {
			res = append(res, d)
		}
	}
	return res
}

func normalizeName(name string) string {
	return strings.TrimRight(name, " ")
}

// OIArray returns the first OI_ARRAY table named arrName, or nil
func (c *Container) OIArray(arrName string) *OIArray {
	if c.arrays == nil {
		c.arrays = make(map[string]*OIArray)
		for _, a := range c.Arrays() {
			name := normalizeName(a.ArrName())
			if _, ok := c.arrays[name]; !ok {
				c.arrays[name] = a
			}
		}
	}
	return c.arrays[normalizeName(arrName)]
}

// OIWavelength returns the first OI_WAVELENGTH table named insName, or nil
func (c *Container) OIWavelength(insName string) *OIWavelength {
	if c.wavelengths == nil {
		c.wavelengths = make(map[string]*OIWavelength)
		for _, w := range c.Wavelengths() {
			name := normalizeName(w.InsName())
			if _, ok := c.wavelengths[name]; !ok {
				c.wavelengths[name] = w
			}
		}
	}
	return c.wavelengths[normalizeName(insName)]
}

// lookup resolves a name to a referenced table. It returns a nil interface when not found.
func (c *Container) lookup(kind Kind, name string) OITable {
	switch kind {
	case KindArray:
		if a := c.OIArray(name); a != nil {
			return a
		}
	case KindWavelength:
		if w := c.OIWavelength(name); w != nil {
			return w
		}
	}
	return nil
}

// AcceptedArrNames returns the ARRNAME values of the OI_ARRAY tables
func (c *Container) AcceptedArrNames() []string {
	var res []string
	for _, a := range c.Arrays() {
		if a.HasKeyword(KeywordArrName) {
			res = append(res, a.ArrName())
		}
	}
	return res
}

// AcceptedInsNames returns the INSNAME values of the OI_WAVELENGTH tables
func (c *Container) AcceptedInsNames() []string {
	var res []string
	for _, w := range c.Wavelengths() {
		if w.HasKeyword(KeywordInsName) {
			res = append(res, w.InsName())
		}
	}
	return res
}

// AcceptedTargetIDs returns the TARGET_ID values of the OI_TARGET table, or nil without one
func (c *Container) AcceptedTargetIDs() []int16 {
	target := c.Target()
	if target == nil {
		return nil
	}
	return target.TargetID()
}

// AcceptedStaIndexes returns the STA_INDEX values of the given OI_ARRAY table
func (c *Container) AcceptedStaIndexes(a *OIArray) []int16 {
	if a == nil {
		return nil
	}
	return a.StaIndex()
}

// Walk calls v on every table in extension order
func (c *Container) Walk(v Visitor) {
	for _, t := range c.tables {
		Accept(t, v)
	}
}

// Check runs the file level rules then the rules of every table
func (c *Container) Check(checker *Checker) {
	c.log.Debug("checking container", "container", c.id.String(), "tables", len(c.tables))
	c.checkFile(checker)
	c.Walk(checkVisitor{checker: checker})
}

func (c *Container) checkFile(checker *Checker) {
	if n := len(c.Targets()); n != 1 {
		checker.RuleFailed(RuleTargetExists, nil, "",
			fmt.Sprintf("Expected one OI_TARGET table but found %d", n))
	}
	if len(c.Data()) == 0 {
		checker.RuleFailed(RuleDataExists, nil, "", "No OI_VIS, OI_VIS2 or OI_T3 table")
	}

	arrNames := make(map[string]*OIArray)
	for _, a := range c.Arrays() {
		if !a.HasKeyword(KeywordArrName) {
			continue
		}
		name := normalizeName(a.ArrName())
		if first, ok := arrNames[name]; ok {
			checker.RuleFailed(RuleArrayNameUnique, a, KeywordArrName,
				fmt.Sprintf("ARRNAME '%s' is already used by %s", name, first.String()))
			continue
		}
		arrNames[name] = a
	}

	insNames := make(map[string]*OIWavelength)
	for _, w := range c.Wavelengths() {
		if !w.HasKeyword(KeywordInsName) {
			continue
		}
		name := normalizeName(w.InsName())
		if first, ok := insNames[name]; ok {
			checker.RuleFailed(RuleWavelengthNameUnique, w, KeywordInsName,
				fmt.Sprintf("INSNAME '%s' is already used by %s", name, first.String()))
			continue
		}
		insNames[name] = w
	}
}

// SetChanged clears the cached values of every table
func (c *Container) SetChanged() {
	for _, t := range c.tables {
		t.Base().SetChanged()
	}
}

// Fingerprint hashes the fingerprints of every table in extension order
func (c *Container) Fingerprint() uint64 {
	hasher := xxhash.New()
	buf := make([]byte, 8)
	for _, t := range c.tables {
		binary.LittleEndian.PutUint64(buf, t.Base().Fingerprint())
		hasher.Write(buf)
	}
	return hasher.Sum64()
}
