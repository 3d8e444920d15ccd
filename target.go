package oifits

import (
	"fmt"
	"strings"
)

// OITarget is the OI_TARGET table describing the observed targets
type OITarget struct {
	Table
}

// NewOITarget creates a detached OI_TARGET table
func NewOITarget() *OITarget {
	t := &OITarget{}
	t.init(KindTarget, t)
	t.addKeyword(keywordOIRevn)

	t.addColumn(NewColumn(ColumnTargetID, "index number", TypeShort))
	t.addColumn(NewColumn(ColumnTarget, "target name", TypeChar, CharWidth(16)))
	t.addColumn(NewColumn(ColumnRaEp0, "RA at mean equinox", TypeDouble, WithUnit(UnitDegree), RequireFinite()))
	t.addColumn(NewColumn(ColumnDecEp0, "DEC at mean equinox", TypeDouble, WithUnit(UnitDegree), RequireFinite()))
	t.addColumn(NewColumn(ColumnEquinox, "equinox", TypeReal, WithUnit(UnitYear)))
	t.addColumn(NewColumn(ColumnRaErr, "error in RA at mean equinox", TypeDouble, WithUnit(UnitDegree)))
	t.addColumn(NewColumn(ColumnDecErr, "error in DEC at mean equinox", TypeDouble, WithUnit(UnitDegree)))
	t.addColumn(NewColumn(ColumnSysVel, "systemic radial velocity", TypeDouble, WithUnit(UnitMeterPerSecond)))
	t.addColumn(NewColumn(ColumnVelTyp, "reference for radial velocity", TypeChar, CharWidth(8),
		WithAccepted(FixedAccepted(AcceptStrings("LSR", "HELIOCEN", "BARYCENT", "GEOCENTR", "TOPOCENT", "UNKNOWN")))))
	t.addColumn(NewColumn(ColumnVelDef, "definition of radial velocity", TypeChar, CharWidth(8),
		WithAccepted(FixedAccepted(AcceptStrings("RADIO", "OPTICAL")))))
	t.addColumn(NewColumn(ColumnPmRa, "proper motion in RA", TypeDouble, WithUnit(UnitDegreePerYear)))
	t.addColumn(NewColumn(ColumnPmDec, "proper motion in DEC", TypeDouble, WithUnit(UnitDegreePerYear)))
	t.addColumn(NewColumn(ColumnPmRaErr, "error of proper motion in RA", TypeDouble, WithUnit(UnitDegreePerYear)))
	t.addColumn(NewColumn(ColumnPmDecErr, "error of proper motion in DEC", TypeDouble, WithUnit(UnitDegreePerYear)))
	t.addColumn(NewColumn(ColumnParallax, "parallax", TypeReal, WithUnit(UnitDegree)))
	t.addColumn(NewColumn(ColumnParaErr, "error in parallax", TypeReal, WithUnit(UnitDegree)))
	t.addColumn(NewColumn(ColumnSpecTyp, "spectral type", TypeChar, CharWidth(16)))
	return t
}

// NbTargets returns the number of targets, i.e. the number of rows
func (t *OITarget) NbTargets() int {
	return t.NbRows()
}

// TargetID returns the TARGET_ID column
func (t *OITarget) TargetID() []int16 {
	return t.ColumnInt16(ColumnTargetID)
}

// Target returns the TARGET column
func (t *OITarget) Target() []string {
	return t.ColumnString(ColumnTarget)
}

// RaEp0 returns the RAEP0 column
func (t *OITarget) RaEp0() []float64 {
	return t.ColumnFloat64(ColumnRaEp0)
}

// DecEp0 returns the DECEP0 column
func (t *OITarget) DecEp0() []float64 {
	return t.ColumnFloat64(ColumnDecEp0)
}

// Equinox returns the EQUINOX column
func (t *OITarget) Equinox() []float32 {
	return t.ColumnFloat32(ColumnEquinox)
}

// TargetIDByName returns the TARGET_ID of the first target with that name, ignoring trailing blanks
func (t *OITarget) TargetIDByName(name string) (int16, bool) {
	ids := t.TargetID()
	name = strings.TrimRight(name, " ")
	for i, n := range t.Target() {
		if strings.TrimRight(n, " ") == name && i < len(ids) {
			return ids[i], true
		}
	}
	return 0, false
}

// CheckSyntax validates keywords and columns, and checks that TARGET_ID values are unique
func (t *OITarget) CheckSyntax(checker *Checker) {
	t.Table.CheckSyntax(checker)
	seen := make(map[int16]int, t.NbRows())
	for i, id := range t.TargetID() {
		if first, ok := seen[id]; ok {
			checker.RuleFailed(RuleTargetIDUnique, t, ColumnTargetID,
				fmt.Sprintf("TARGET_ID %d at row %d is already used at row %d", id, i, first))
			continue
		}
		seen[id] = i
	}
}
