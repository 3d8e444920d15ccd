package oifits

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-sif/oifits/logging"
	"github.com/stretchr/testify/require"
)

func newTestTarget(t *testing.T) *OITarget {
	target := NewOITarget()
	target.SetKeywordInt(KeywordOIRevn, 1)
	require.Nil(t, target.Initialize(1))
	target.TargetID()[0] = 1
	target.Target()[0] = "HD 1234"
	target.RaEp0()[0] = 10.5
	target.DecEp0()[0] = -20.25
	target.Equinox()[0] = 2000
	target.ColumnString(ColumnVelTyp)[0] = "LSR"
	target.ColumnString(ColumnVelDef)[0] = "OPTICAL"
	return target
}

func newTestArray(t *testing.T, arrName string) *OIArray {
	a := NewOIArray()
	a.SetKeywordInt(KeywordOIRevn, 1)
	a.SetArrName(arrName)
	a.SetKeyword(KeywordFrame, "GEOCENTRIC")
	a.SetKeywordDouble(KeywordArrayX, 1942014.1)
	a.SetKeywordDouble(KeywordArrayY, -5455311.2)
	a.SetKeywordDouble(KeywordArrayZ, -2654530.6)
	require.Nil(t, a.Initialize(3))
	copy(a.TelName(), []string{"UT1", "UT2", "UT3"})
	copy(a.StaNames(), []string{"U1", "U2", "U3"})
	copy(a.StaIndex(), []int16{1, 2, 3})
	return a
}

func newTestWavelength(t *testing.T, insName string, effWave ...float32) *OIWavelength {
	w := NewOIWavelength()
	w.SetKeywordInt(KeywordOIRevn, 1)
	w.SetInsName(insName)
	require.Nil(t, w.Initialize(len(effWave)))
	copy(w.EffWave(), effWave)
	for i := range w.EffBand() {
		w.EffBand()[i] = 1e-7
	}
	return w
}

// fillVis2 initializes a data table already attached to its container
func fillVis2(t *testing.T, v *OIVis2) {
	require.Nil(t, v.Initialize(2))
	copy(v.TargetID(), []int16{1, 1})
	copy(v.Time(), []float64{0, 60})
	copy(v.MJD(), []float64{58849.0, 58849.1})
	copy(v.IntTime(), []float64{1, 1})
	copy(v.UCoord(), []float64{3, 30})
	copy(v.VCoord(), []float64{4, 40})
	copy(v.StaIndex()[0], []int16{1, 2})
	copy(v.StaIndex()[1], []int16{2, 3})
	for i := range v.Vis2Data() {
		for j := range v.Vis2Data()[i] {
			v.Vis2Data()[i][j] = 0.5
			v.Vis2Err()[i][j] = 0.01
		}
	}
	v.SetChanged()
}

func newTestVis2(arrName string, insName string) *OIVis2 {
	v := NewOIVis2()
	v.SetKeywordInt(KeywordOIRevn, 1)
	v.SetDateObs("2020-01-01")
	v.SetArrName(arrName)
	v.SetInsName(insName)
	return v
}

// newTestContainer builds a valid container holding OI_TARGET, OI_ARRAY "VLTI",
// OI_WAVELENGTH "AMBER" with 2 channels and one OI_VIS2 with 2 rows
func newTestContainer(t *testing.T, opts ...Option) (*Container, *OIVis2) {
	if len(opts) == 0 {
		opts = []Option{WithLogger(logging.Discard())}
	}
	c := New(opts...)
	require.Nil(t, c.Add(newTestTarget(t)))
	require.Nil(t, c.Add(newTestArray(t, "VLTI")))
	require.Nil(t, c.Add(newTestWavelength(t, "AMBER", 2e-6, 4e-6)))
	v := newTestVis2("VLTI", "AMBER")
	require.Nil(t, c.Add(v))
	fillVis2(t, v)
	return c, v
}

// newBufferLogger returns a logger writing warnings and above to the returned buffer
func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return logging.New(buf, logging.WarnLevel), buf
}
