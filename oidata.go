package oifits

import (
	"fmt"
	"math"
	"strings"
)

// DataTable is implemented by the measurement tables (OI_VIS, OI_VIS2, OI_T3)
type DataTable interface {
	OITable
	Data() *OIData
}

// OIData holds the keywords, columns and cross-references shared by the
// measurement tables. The associated OI_ARRAY and OI_WAVELENGTH tables are
// resolved lazily by name through the container and cached until the naming
// keyword changes or the container membership changes.
type OIData struct {
	Table
	arrayRef      reference
	wavelengthRef reference
	stamp         derivedStamp
}

// derivedStamp records what the cached derived values were computed from
type derivedStamp struct {
	generation        uint64
	wavelength        *OIWavelength
	wavelengthVersion uint64
}

var (
	keywordOIRevn = NewKeyword(KeywordOIRevn, "revision number of the table definition", TypeShort,
		WithKeywordAccepted(FixedAccepted(AcceptShorts(1, 2))))
	keywordDateObs = NewKeyword(KeywordDateObs, "UTC start date of observations", TypeChar)
	keywordArrRef  = NewKeyword(KeywordArrName, "name of corresponding array", TypeChar, OptionalKeyword(),
		WithKeywordAccepted(containerAccepted(func(c *Container) AcceptedSet { return AcceptStrings(c.AcceptedArrNames()...) })))
	keywordInsRef = NewKeyword(KeywordInsName, "name of corresponding detector", TypeChar,
		WithKeywordAccepted(containerAccepted(func(c *Container) AcceptedSet { return AcceptStrings(c.AcceptedInsNames()...) })))

	columnTargetRef = NewColumn(ColumnTargetID, "target number as index into OI_TARGET table", TypeShort,
		WithAccepted(containerAccepted(func(c *Container) AcceptedSet { return AcceptShorts(c.AcceptedTargetIDs()...) })))
	columnTime    = NewColumn(ColumnTime, "UTC time of observation", TypeDouble, WithUnit(UnitSecond))
	columnMJD     = NewColumn(ColumnMJD, "modified Julian Day", TypeDouble, WithUnit(UnitMJD), RequireFinite())
	columnIntTime = NewColumn(ColumnIntTime, "integration time", TypeDouble, WithUnit(UnitSecond))
	columnUCoord  = NewColumn(ColumnUCoord, "U coordinate of the data", TypeDouble, WithUnit(UnitMeter))
	columnVCoord  = NewColumn(ColumnVCoord, "V coordinate of the data", TypeDouble, WithUnit(UnitMeter))
	columnFlag    = NewColumn(ColumnFlag, "flag", TypeLogical, RepeatFrom(RefNWave))

	derivedEffWave     = NewColumn(ColumnEffWave, "effective wavelength of each channel", TypeDouble, WithUnit(UnitMeter), RepeatFrom(RefNWave))
	derivedRadius      = NewColumn(ColumnRadius, "radius i.e. projected baseline length", TypeDouble, WithUnit(UnitMeter))
	derivedPosAngle    = NewColumn(ColumnPosAngle, "position angle of the projected baseline", TypeDouble, WithUnit(UnitDegree))
	derivedSpatialFreq = NewColumn(ColumnSpatialFreq, "spatial frequencies", TypeDouble, WithUnit(UnitPerRad), RepeatFrom(RefNWave))
)

// containerAccepted computes accepted values from the container of the owning table.
// Detached tables have no accepted values so the check does not apply.
func containerAccepted(fn func(c *Container) AcceptedSet) AcceptedValueProvider {
	return AcceptedValuesFunc(func(owner OITable) AcceptedSet {
		c := owner.Base().Container()
		if c == nil {
			return AcceptedSet{}
		}
		return fn(c)
	})
}

// staIndexColumn returns the STA_INDEX column of a data table involving n stations
func staIndexColumn(n int) *ColumnDescriptor {
	return NewColumn(ColumnStaIndex, "station numbers contributing to the data", TypeShort, WithRepeat(n),
		WithAccepted(AcceptedValuesFunc(func(owner OITable) AcceptedSet {
			d, ok := owner.(DataTable)
			if !ok {
				return AcceptedSet{}
			}
			return AcceptShorts(d.Data().AcceptedStaIndexes()...)
		})))
}

// initData prepares the shared part of a measurement table
func (d *OIData) initData(kind Kind, self DataTable) {
	d.init(kind, self)
	d.arrayRef = reference{keyword: KeywordArrName, kind: KindArray}
	d.wavelengthRef = reference{keyword: KeywordInsName, kind: KindWavelength}
	d.hooks.keywordSet = d.keywordSet
	d.hooks.repeat = d.repeat
	d.hooks.derivedExpiry = d.derivedExpired

	d.addKeyword(keywordOIRevn)
	d.addKeyword(keywordDateObs)
	d.addKeyword(keywordArrRef)
	d.addKeyword(keywordInsRef)

	d.addColumn(columnTargetRef)
	d.addColumn(columnTime)
	d.addColumn(columnMJD)
	d.addColumn(columnIntTime)

	d.addDerivedColumn(derivedEffWave)
}

// addBaselineColumns declares the columns following the measurements of OI_VIS and OI_VIS2
func (d *OIData) addBaselineColumns() {
	d.addColumn(columnUCoord)
	d.addColumn(columnVCoord)
	d.addColumn(staIndexColumn(2))
	d.addColumn(columnFlag)

	d.addDerivedColumn(derivedRadius)
	d.addDerivedColumn(derivedPosAngle)
	d.addDerivedColumn(derivedSpatialFreq)
}

// Data returns d
func (d *OIData) Data() *OIData {
	return d
}

func (d *OIData) keywordSet(name string) {
	switch name {
	case KeywordArrName:
		d.arrayRef.invalidate()
	case KeywordInsName:
		d.wavelengthRef.invalidate()
	}
}

func (d *OIData) repeat(ref string) int {
	if ref == RefNWave {
		return d.NWave()
	}
	return 0
}

func (d *OIData) derivedExpired() bool {
	var now derivedStamp
	if d.container != nil {
		now.generation = d.container.generation
	}
	if w := d.OIWavelength(); w != nil {
		now.wavelength = w
		now.wavelengthVersion = w.Version()
	}
	if now == d.stamp {
		return false
	}
	d.stamp = now
	return true
}

/*
 * --- Keywords ---
 */

// OIRevn returns the OI_REVN keyword value
func (d *OIData) OIRevn() int {
	return d.KeywordInt(KeywordOIRevn)
}

// DateObs returns the DATE-OBS keyword value
func (d *OIData) DateObs() string {
	return d.Keyword(KeywordDateObs)
}

// SetDateObs defines the DATE-OBS keyword value
func (d *OIData) SetDateObs(dateObs string) {
	d.SetKeyword(KeywordDateObs, dateObs)
}

// ArrName returns the ARRNAME keyword value, or "" if unset
func (d *OIData) ArrName() string {
	return d.Keyword(KeywordArrName)
}

// SetArrName defines the ARRNAME keyword value. The cached OI_ARRAY reference is always dropped.
func (d *OIData) SetArrName(arrName string) {
	d.SetKeyword(KeywordArrName, arrName)
}

// InsName returns the INSNAME keyword value
func (d *OIData) InsName() string {
	return d.Keyword(KeywordInsName)
}

// SetInsName defines the INSNAME keyword value. The cached OI_WAVELENGTH reference is always dropped.
func (d *OIData) SetInsName(insName string) {
	d.SetKeyword(KeywordInsName, insName)
}

/*
 * --- Cross-references ---
 */

// OIArray returns the OI_ARRAY table named by ARRNAME, or nil if ARRNAME is unset or unresolved
func (d *OIData) OIArray() *OIArray {
	t, _ := d.arrayRef.get(&d.Table)
	a, _ := t.(*OIArray)
	return a
}

// ArrayRefState returns the resolution state of the OI_ARRAY reference
func (d *OIData) ArrayRefState() RefState {
	_, state := d.arrayRef.get(&d.Table)
	return state
}

// OIWavelength returns the OI_WAVELENGTH table named by INSNAME, or nil if unresolved
func (d *OIData) OIWavelength() *OIWavelength {
	t, _ := d.wavelengthRef.get(&d.Table)
	w, _ := t.(*OIWavelength)
	return w
}

// WavelengthRefState returns the resolution state of the OI_WAVELENGTH reference
func (d *OIData) WavelengthRefState() RefState {
	_, state := d.wavelengthRef.get(&d.Table)
	return state
}

// NWave returns the number of spectral channels of the associated OI_WAVELENGTH table, or 0 if unresolved
func (d *OIData) NWave() int {
	w := d.OIWavelength()
	if w == nil {
		return 0
	}
	return w.NWave()
}

// AcceptedStaIndexes returns the station indexes of the associated OI_ARRAY table, or nil if unresolved
func (d *OIData) AcceptedStaIndexes() []int16 {
	a := d.OIArray()
	if a == nil || d.container == nil {
		return nil
	}
	return d.container.AcceptedStaIndexes(a)
}

// StaNames returns the station names of every row, joined by '-', using the
// associated OI_ARRAY table. Unknown stations are rendered by their index.
func (d *OIData) StaNames() []string {
	staIndexes := d.StaIndex()
	if staIndexes == nil {
		return nil
	}
	a := d.OIArray()
	res := make([]string, len(staIndexes))
	parts := make([]string, 0, 3)
	for i, row := range staIndexes {
		parts = parts[:0]
		for _, idx := range row {
			name := ""
			if a != nil {
				name = a.StaName(idx)
			}
			if name == "" {
				name = fmt.Sprint(idx)
			}
			parts = append(parts, name)
		}
		res[i] = strings.Join(parts, "-")
	}
	return res
}

/*
 * --- Columns ---
 */

// TargetID returns the TARGET_ID column
func (d *OIData) TargetID() []int16 {
	return d.ColumnInt16(ColumnTargetID)
}

// Time returns the TIME column
func (d *OIData) Time() []float64 {
	return d.ColumnFloat64(ColumnTime)
}

// MJD returns the MJD column
func (d *OIData) MJD() []float64 {
	return d.ColumnFloat64(ColumnMJD)
}

// IntTime returns the INT_TIME column
func (d *OIData) IntTime() []float64 {
	return d.ColumnFloat64(ColumnIntTime)
}

// StaIndex returns the STA_INDEX column
func (d *OIData) StaIndex() [][]int16 {
	return d.ColumnInt16s(ColumnStaIndex)
}

// Flag returns the FLAG column
func (d *OIData) Flag() [][]bool {
	return d.ColumnBools(ColumnFlag)
}

// NbMeasurements returns the number of data points, i.e. rows x NWAVE
func (d *OIData) NbMeasurements() int {
	return d.NbRows() * d.NWave()
}

// NbFlagged returns the number of flagged data points
func (d *OIData) NbFlagged() int {
	n := 0
	for _, row := range d.Flag() {
		for _, f := range row {
			if f {
				n++
			}
		}
	}
	return n
}

// Summary returns a one line description of the table and its references
func (d *OIData) Summary() string {
	return fmt.Sprintf("%s[%s][%s] NbRows=%d NWave=%d NbMeasurements=%d NbFlagged=%d",
		d.String(), d.ArrName(), d.InsName(), d.NbRows(), d.NWave(), d.NbMeasurements(), d.NbFlagged())
}

/*
 * --- Derived columns ---
 */

// EffWave returns the effective wavelength of every data point, as [row][channel], or nil if OI_WAVELENGTH is unresolved
func (d *OIData) EffWave() [][]float64 {
	v, _ := d.DerivedValue(ColumnEffWave).([][]float64)
	return v
}

// deriveCommon computes the derived columns every data table declares
func (d *OIData) deriveCommon(name string) interface{} {
	if name != ColumnEffWave {
		return nil
	}
	w := d.OIWavelength()
	if w == nil {
		return nil
	}
	effWave := w.EffWave()
	if effWave == nil {
		return nil
	}
	rows := d.NbRows()
	res := make([][]float64, rows)
	for i := range res {
		row := make([]float64, len(effWave))
		for j, v := range effWave {
			row[j] = float64(v)
		}
		res[i] = row
	}
	return res
}

// deriveBaseline computes RADIUS, POS_ANGLE and SPATIAL_FREQ from UCOORD and VCOORD
func (d *OIData) deriveBaseline(name string) interface{} {
	u, v := d.ColumnFloat64(ColumnUCoord), d.ColumnFloat64(ColumnVCoord)
	if u == nil || v == nil || len(u) != len(v) {
		return nil
	}
	switch name {
	case ColumnRadius:
		res := make([]float64, len(u))
		for i := range u {
			res[i] = math.Hypot(u[i], v[i])
		}
		return res
	case ColumnPosAngle:
		res := make([]float64, len(u))
		for i := range u {
			res[i] = math.Atan2(u[i], v[i]) * 180 / math.Pi
		}
		return res
	case ColumnSpatialFreq:
		radius, _ := d.DerivedValue(ColumnRadius).([]float64)
		if freq := d.spatialCoord(radius); freq != nil {
			return freq
		}
		return nil
	}
	return d.deriveCommon(name)
}

// spatialCoord divides each row coordinate (m) by the effective wavelength of each channel (m)
func (d *OIData) spatialCoord(coord []float64) [][]float64 {
	effWave := d.EffWave()
	if coord == nil || effWave == nil || len(coord) != len(effWave) {
		return nil
	}
	res := make([][]float64, len(coord))
	for i, c := range coord {
		row := make([]float64, len(effWave[i]))
		for j, w := range effWave[i] {
			row[j] = c / w
		}
		res[i] = row
	}
	return res
}

/*
 * --- Checker ---
 */

// CheckSyntax validates keywords, columns and the cross-references of the table
func (d *OIData) CheckSyntax(checker *Checker) {
	d.Table.CheckSyntax(checker)
	d.checkReferences(checker)
}

func (d *OIData) checkReferences(checker *Checker) {
	if d.ArrayRefState() == RefUnresolved {
		checker.RuleFailed(RuleDataArrayRef, d.owner(), KeywordArrName,
			fmt.Sprintf("Missing OI_ARRAY table that describes the '%s' array", d.ArrName()))
	}
	if d.WavelengthRefState() == RefUnresolved {
		checker.RuleFailed(RuleDataWavelengthRef, d.owner(), KeywordInsName,
			fmt.Sprintf("Missing OI_WAVELENGTH table that describes the '%s' instrument", d.InsName()))
	}
}
