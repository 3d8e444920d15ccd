package oifits

import (
	"math"
)

// OIT3 is the OI_T3 table holding triple products (closure phases)
type OIT3 struct {
	OIData
}

// NewOIT3 creates a detached OI_T3 table
func NewOIT3() *OIT3 {
	t := &OIT3{}
	t.initData(KindT3, t)
	t.addColumn(NewColumn(ColumnT3Amp, "triple product amplitude", TypeDouble, RepeatFrom(RefNWave)))
	t.addColumn(NewColumn(ColumnT3AmpErr, "error in triple product amplitude", TypeDouble, RepeatFrom(RefNWave)))
	t.addColumn(NewColumn(ColumnT3Phi, "triple product phase", TypeDouble, WithUnit(UnitDegree), RepeatFrom(RefNWave)))
	t.addColumn(NewColumn(ColumnT3PhiErr, "error in triple product phase", TypeDouble, WithUnit(UnitDegree), RepeatFrom(RefNWave)))
	t.addColumn(NewColumn(ColumnU1Coord, "U coordinate of baseline AB of the triangle", TypeDouble, WithUnit(UnitMeter)))
	t.addColumn(NewColumn(ColumnV1Coord, "V coordinate of baseline AB of the triangle", TypeDouble, WithUnit(UnitMeter)))
	t.addColumn(NewColumn(ColumnU2Coord, "U coordinate of baseline BC of the triangle", TypeDouble, WithUnit(UnitMeter)))
	t.addColumn(NewColumn(ColumnV2Coord, "V coordinate of baseline BC of the triangle", TypeDouble, WithUnit(UnitMeter)))
	t.addColumn(staIndexColumn(3))
	t.addColumn(columnFlag)

	t.addDerivedColumn(NewColumn(ColumnRadius, "radius i.e. length of the longest baseline of the triangle", TypeDouble, WithUnit(UnitMeter)))
	t.addDerivedColumn(derivedSpatialFreq)
	t.hooks.derive = t.derive
	return t
}

// T3Amp returns the T3AMP column
func (t *OIT3) T3Amp() [][]float64 {
	return t.ColumnFloat64s(ColumnT3Amp)
}

// T3AmpErr returns the T3AMPERR column
func (t *OIT3) T3AmpErr() [][]float64 {
	return t.ColumnFloat64s(ColumnT3AmpErr)
}

// T3Phi returns the T3PHI column
func (t *OIT3) T3Phi() [][]float64 {
	return t.ColumnFloat64s(ColumnT3Phi)
}

// T3PhiErr returns the T3PHIERR column
func (t *OIT3) T3PhiErr() [][]float64 {
	return t.ColumnFloat64s(ColumnT3PhiErr)
}

// Radius returns the length of the longest baseline of every triangle
func (t *OIT3) Radius() []float64 {
	return t.ColumnAsFloat64(ColumnRadius)
}

// SpatialFreq returns the spatial frequencies of every data point, or nil if OI_WAVELENGTH is unresolved
func (t *OIT3) SpatialFreq() [][]float64 {
	return t.ColumnAsFloat64s(ColumnSpatialFreq)
}

func (t *OIT3) derive(name string) interface{} {
	switch name {
	case ColumnRadius:
		u1, v1 := t.ColumnFloat64(ColumnU1Coord), t.ColumnFloat64(ColumnV1Coord)
		u2, v2 := t.ColumnFloat64(ColumnU2Coord), t.ColumnFloat64(ColumnV2Coord)
		rows := t.NbRows()
		if len(u1) != rows || len(v1) != rows || len(u2) != rows || len(v2) != rows {
			return nil
		}
		res := make([]float64, rows)
		for i := range res {
			// AC = AB + BC
			r1 := math.Hypot(u1[i], v1[i])
			r2 := math.Hypot(u2[i], v2[i])
			r3 := math.Hypot(u1[i]+u2[i], v1[i]+v2[i])
			res[i] = math.Max(r1, math.Max(r2, r3))
		}
		return res
	case ColumnSpatialFreq:
		if freq := t.spatialCoord(t.Radius()); freq != nil {
			return freq
		}
		return nil
	}
	return t.deriveCommon(name)
}
