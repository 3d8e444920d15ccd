package oifits

import (
	"strings"
)

// OIArray is the OI_ARRAY table describing the stations of an interferometer
type OIArray struct {
	Table
}

// NewOIArray creates a detached OI_ARRAY table
func NewOIArray() *OIArray {
	a := &OIArray{}
	a.init(KindArray, a)
	a.hooks.keywordSet = a.keywordSet

	a.addKeyword(keywordOIRevn)
	a.addKeyword(NewKeyword(KeywordArrName, "array name for cross-referencing", TypeChar))
	a.addKeyword(NewKeyword(KeywordFrame, "coordinate frame", TypeChar,
		WithKeywordAccepted(FixedAccepted(AcceptStrings("GEOCENTRIC")))))
	a.addKeyword(NewKeyword(KeywordArrayX, "array center X-coordinate", TypeDouble, WithKeywordUnit(UnitMeter)))
	a.addKeyword(NewKeyword(KeywordArrayY, "array center Y-coordinate", TypeDouble, WithKeywordUnit(UnitMeter)))
	a.addKeyword(NewKeyword(KeywordArrayZ, "array center Z-coordinate", TypeDouble, WithKeywordUnit(UnitMeter)))

	a.addColumn(NewColumn(ColumnTelName, "telescope name", TypeChar, CharWidth(16)))
	a.addColumn(NewColumn(ColumnStaName, "station name", TypeChar, CharWidth(16)))
	a.addColumn(NewColumn(ColumnStaIndex, "station number", TypeShort))
	a.addColumn(NewColumn(ColumnDiameter, "element diameter", TypeReal, WithUnit(UnitMeter)))
	a.addColumn(NewColumn(ColumnStaXYZ, "station coordinates relative to array center", TypeDouble,
		WithUnit(UnitMeter), WithRepeat(3)))
	return a
}

// renaming an array changes what data tables resolve to
func (a *OIArray) keywordSet(name string) {
	if name == KeywordArrName && a.container != nil {
		a.container.touch()
	}
}

// ArrName returns the ARRNAME keyword value
func (a *OIArray) ArrName() string {
	return a.Keyword(KeywordArrName)
}

// SetArrName defines the ARRNAME keyword value
func (a *OIArray) SetArrName(arrName string) {
	a.SetKeyword(KeywordArrName, arrName)
}

// Frame returns the FRAME keyword value
func (a *OIArray) Frame() string {
	return a.Keyword(KeywordFrame)
}

// TelName returns the TEL_NAME column
func (a *OIArray) TelName() []string {
	return a.ColumnString(ColumnTelName)
}

// StaNames returns the STA_NAME column
func (a *OIArray) StaNames() []string {
	return a.ColumnString(ColumnStaName)
}

// StaIndex returns the STA_INDEX column
func (a *OIArray) StaIndex() []int16 {
	return a.ColumnInt16(ColumnStaIndex)
}

// StaXYZ returns the STAXYZ column
func (a *OIArray) StaXYZ() [][]float64 {
	return a.ColumnFloat64s(ColumnStaXYZ)
}

// StaName returns the station name of a station index, or "" if unknown
func (a *OIArray) StaName(staIndex int16) string {
	names := a.StaNames()
	for i, idx := range a.StaIndex() {
		if idx == staIndex && i < len(names) {
			return strings.TrimRight(names[i], " ")
		}
	}
	return ""
}
