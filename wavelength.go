package oifits

// OIWavelength is the OI_WAVELENGTH table describing the spectral channels of an instrument
type OIWavelength struct {
	Table
}

// NewOIWavelength creates a detached OI_WAVELENGTH table
func NewOIWavelength() *OIWavelength {
	w := &OIWavelength{}
	w.init(KindWavelength, w)
	w.hooks.keywordSet = w.keywordSet

	w.addKeyword(keywordOIRevn)
	w.addKeyword(NewKeyword(KeywordInsName, "name of detector for cross-referencing", TypeChar))

	w.addColumn(NewColumn(ColumnEffWave, "effective wavelength of channel", TypeReal, WithUnit(UnitMeter), RequireFinite()))
	w.addColumn(NewColumn(ColumnEffBand, "effective bandpass of channel", TypeReal, WithUnit(UnitMeter), RequireFinite()))
	return w
}

// renaming an instrument changes what data tables resolve to
func (w *OIWavelength) keywordSet(name string) {
	if name == KeywordInsName && w.container != nil {
		w.container.touch()
	}
}

// InsName returns the INSNAME keyword value
func (w *OIWavelength) InsName() string {
	return w.Keyword(KeywordInsName)
}

// SetInsName defines the INSNAME keyword value
func (w *OIWavelength) SetInsName(insName string) {
	w.SetKeyword(KeywordInsName, insName)
}

// NWave returns the number of spectral channels, i.e. the number of rows
func (w *OIWavelength) NWave() int {
	return w.NbRows()
}

// EffWave returns the EFF_WAVE column
func (w *OIWavelength) EffWave() []float32 {
	return w.ColumnFloat32(ColumnEffWave)
}

// EffBand returns the EFF_BAND column
func (w *OIWavelength) EffBand() []float32 {
	return w.ColumnFloat32(ColumnEffBand)
}
