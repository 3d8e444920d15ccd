package oifits

// OIVis2 is the OI_VIS2 table holding squared visibilities
type OIVis2 struct {
	OIData
}

// NewOIVis2 creates a detached OI_VIS2 table
func NewOIVis2() *OIVis2 {
	v := &OIVis2{}
	v.initData(KindVis2, v)
	v.addColumn(NewColumn(ColumnVis2Data, "squared visibility", TypeDouble, RepeatFrom(RefNWave)))
	v.addColumn(NewColumn(ColumnVis2Err, "error in squared visibility", TypeDouble, RepeatFrom(RefNWave)))
	v.addBaselineColumns()
	v.hooks.derive = v.deriveBaseline
	return v
}

// Vis2Data returns the VIS2DATA column
func (v *OIVis2) Vis2Data() [][]float64 {
	return v.ColumnFloat64s(ColumnVis2Data)
}

// Vis2Err returns the VIS2ERR column
func (v *OIVis2) Vis2Err() [][]float64 {
	return v.ColumnFloat64s(ColumnVis2Err)
}

// UCoord returns the UCOORD column
func (v *OIVis2) UCoord() []float64 {
	return v.ColumnFloat64(ColumnUCoord)
}

// VCoord returns the VCOORD column
func (v *OIVis2) VCoord() []float64 {
	return v.ColumnFloat64(ColumnVCoord)
}

// Radius returns the projected baseline length of every row
func (v *OIVis2) Radius() []float64 {
	return v.ColumnAsFloat64(ColumnRadius)
}

// SpatialFreq returns the spatial frequencies of every data point, or nil if OI_WAVELENGTH is unresolved
func (v *OIVis2) SpatialFreq() [][]float64 {
	return v.ColumnAsFloat64s(ColumnSpatialFreq)
}
