package oifits

// OIVis is the OI_VIS table holding complex visibilities
type OIVis struct {
	OIData
}

// NewOIVis creates a detached OI_VIS table
func NewOIVis() *OIVis {
	v := &OIVis{}
	v.initData(KindVis, v)
	v.addColumn(NewColumn(ColumnVisAmp, "visibility amplitude", TypeDouble, RepeatFrom(RefNWave)))
	v.addColumn(NewColumn(ColumnVisAmpErr, "error in visibility amplitude", TypeDouble, RepeatFrom(RefNWave)))
	v.addColumn(NewColumn(ColumnVisPhi, "visibility phase", TypeDouble, WithUnit(UnitDegree), RepeatFrom(RefNWave)))
	v.addColumn(NewColumn(ColumnVisPhiErr, "error in visibility phase", TypeDouble, WithUnit(UnitDegree), RepeatFrom(RefNWave)))
	v.addBaselineColumns()
	v.addColumn(NewColumn(ColumnVisData, "complex coherent flux", TypeComplex, RepeatFrom(RefNWave), Optional()))
	v.addColumn(NewColumn(ColumnVisErr, "complex error of the coherent flux", TypeComplex, RepeatFrom(RefNWave), Optional()))
	v.addColumn(NewColumn(ColumnVisRefMap, "matrix of the reference channels of each channel", TypeLogical, RepeatFrom(RefNWave), Matrix(), Optional()))
	v.hooks.derive = v.deriveBaseline
	return v
}

// VisAmp returns the VISAMP column
func (v *OIVis) VisAmp() [][]float64 {
	return v.ColumnFloat64s(ColumnVisAmp)
}

// VisAmpErr returns the VISAMPERR column
func (v *OIVis) VisAmpErr() [][]float64 {
	return v.ColumnFloat64s(ColumnVisAmpErr)
}

// VisPhi returns the VISPHI column
func (v *OIVis) VisPhi() [][]float64 {
	return v.ColumnFloat64s(ColumnVisPhi)
}

// VisPhiErr returns the VISPHIERR column
func (v *OIVis) VisPhiErr() [][]float64 {
	return v.ColumnFloat64s(ColumnVisPhiErr)
}

// VisData returns the optional VISDATA column as [row][channel][re, im], or nil if absent
func (v *OIVis) VisData() [][][]float32 {
	return v.ColumnComplexes(ColumnVisData)
}

// VisErr returns the optional VISERR column as [row][channel][re, im], or nil if absent
func (v *OIVis) VisErr() [][][]float32 {
	return v.ColumnComplexes(ColumnVisErr)
}

// VisRefMap returns the optional VISREFMAP column, or nil if absent
func (v *OIVis) VisRefMap() [][][]bool {
	return v.ColumnBools3D(ColumnVisRefMap)
}

// UCoord returns the UCOORD column
func (v *OIVis) UCoord() []float64 {
	return v.ColumnFloat64(ColumnUCoord)
}

// VCoord returns the VCOORD column
func (v *OIVis) VCoord() []float64 {
	return v.ColumnFloat64(ColumnVCoord)
}

// SpatialFreq returns the spatial frequencies of every data point, or nil if OI_WAVELENGTH is unresolved
func (v *OIVis) SpatialFreq() [][]float64 {
	return v.ColumnAsFloat64s(ColumnSpatialFreq)
}
