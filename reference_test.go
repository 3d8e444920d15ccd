package oifits

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferenceStates(t *testing.T) {
	v := NewOIVis2()
	require.Equal(t, RefNoKeyword, v.ArrayRefState())
	require.Nil(t, v.OIArray())

	log, buf := newBufferLogger()
	v.SetLogger(log)
	v.SetInsName("AMBER")
	require.Equal(t, RefUnresolved, v.WavelengthRefState())
	require.Contains(t, buf.String(), "Missing OI_WAVELENGTH table")

	c, resolved := newTestContainer(t)
	require.Equal(t, RefResolved, resolved.ArrayRefState())
	require.Equal(t, RefResolved, resolved.WavelengthRefState())
	require.Same(t, c.Arrays()[0], resolved.OIArray())
	require.Same(t, c.Wavelengths()[0], resolved.OIWavelength())
	require.Equal(t, []int16{1, 2, 3}, resolved.AcceptedStaIndexes())
	require.Equal(t, []string{"U1-U2", "U2-U3"}, resolved.StaNames())
}

func TestUnresolvedReferenceIsRetried(t *testing.T) {
	log, buf := newBufferLogger()
	c := New(WithLogger(log))
	v := newTestVis2("VLTI", "AMBER")
	require.Nil(t, c.Add(v))

	require.Nil(t, v.OIWavelength())
	require.Nil(t, v.OIArray())
	require.Nil(t, v.AcceptedStaIndexes())
	require.Contains(t, buf.String(), "Missing OI_ARRAY table")

	w := newTestWavelength(t, "AMBER", 2e-6)
	require.Nil(t, c.Add(w))
	require.Same(t, w, v.OIWavelength())
	require.Equal(t, 1, v.NWave())
}

func TestSetterDropsCachedReference(t *testing.T) {
	c, v := newTestContainer(t)
	w := c.Wavelengths()[0]
	require.Same(t, w, v.OIWavelength())
	require.NotNil(t, v.wavelengthRef.resolved)

	// even with an unchanged value
	v.SetInsName("AMBER")
	require.Nil(t, v.wavelengthRef.resolved)
	require.Same(t, w, v.OIWavelength())

	other := newTestWavelength(t, "GRAVITY", 2e-6, 2.1e-6, 2.2e-6)
	require.Nil(t, c.Add(other))
	v.SetInsName("GRAVITY")
	require.Same(t, other, v.OIWavelength())
	require.Equal(t, 3, v.NWave())

	v.SetArrName("NOPE")
	require.Nil(t, v.OIArray())
	require.Equal(t, RefUnresolved, v.ArrayRefState())
	v.RemoveKeyword(KeywordArrName)
	require.Equal(t, RefNoKeyword, v.ArrayRefState())
}

func TestReferenceInvalidatedByContainerChanges(t *testing.T) {
	c, v := newTestContainer(t)
	a := c.Arrays()[0]
	require.Same(t, a, v.OIArray())

	// renaming the referenced table
	a.SetArrName("CHARA")
	require.Nil(t, v.OIArray())
	a.SetArrName("VLTI")
	require.Same(t, a, v.OIArray())

	// removing the referenced table
	require.True(t, c.Remove(a))
	require.Nil(t, v.OIArray())
	require.Nil(t, a.Container())
	require.Equal(t, 0, a.ExtNb())
}

func TestDerivedValuesFollowWavelength(t *testing.T) {
	c, v := newTestContainer(t)
	freq := v.SpatialFreq()
	require.Len(t, freq, 2)
	require.InEpsilon(t, 5/2e-6, freq[0][0], 1e-6)
	require.InEpsilon(t, 5/4e-6, freq[0][1], 1e-6)
	require.InEpsilon(t, 50/2e-6, freq[1][0], 1e-6)

	require.Equal(t, []float64{5, 50}, v.Radius())
	posAngle, _ := v.DerivedValue(ColumnPosAngle).([]float64)
	require.InDelta(t, 36.8699, posAngle[0], 1e-4)

	// the wavelength table changes
	w := c.Wavelengths()[0]
	w.EffWave()[0] = 1e-6
	w.SetChanged()
	require.InEpsilon(t, 5/1e-6, v.SpatialFreq()[0][0], 1e-6)
	require.InEpsilon(t, 1e-6, v.EffWave()[1][0], 1e-6)

	// the wavelength table disappears
	require.True(t, c.Remove(w))
	require.Nil(t, v.SpatialFreq())
	require.Nil(t, v.EffWave())
	require.Equal(t, []float64{5, 50}, v.Radius())
}

func TestT3Radius(t *testing.T) {
	c, _ := newTestContainer(t)
	t3 := NewOIT3()
	t3.SetInsName("AMBER")
	require.Nil(t, c.Add(t3))
	require.Nil(t, t3.Initialize(1))
	t3.ColumnFloat64(ColumnU1Coord)[0] = 3
	t3.ColumnFloat64(ColumnV1Coord)[0] = 4
	t3.ColumnFloat64(ColumnU2Coord)[0] = 6
	t3.ColumnFloat64(ColumnV2Coord)[0] = 8
	t3.SetChanged()

	require.Equal(t, []float64{15}, t3.Radius())
	require.InEpsilon(t, 15/2e-6, t3.SpatialFreq()[0][0], 1e-6)
	require.Nil(t, t3.DerivedValue(ColumnPosAngle))
}
