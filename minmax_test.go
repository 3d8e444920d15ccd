package oifits

import (
	"math"
	"testing"

	"github.com/go-sif/oifits/logging"
	"github.com/stretchr/testify/require"
)

func TestMinMax(t *testing.T) {
	v := NewOIVis2()
	require.Nil(t, v.Initialize(4))
	copy(v.UCoord(), []float64{3.0, 1.0, -2.5, 7.0})
	v.SetChanged()

	r, ok := v.MinMax(ColumnUCoord)
	require.True(t, ok)
	require.Equal(t, Range{Min: -2.5, Max: 7.0}, r)
}

func TestMinMaxNotApplicable(t *testing.T) {
	c, v := newTestContainer(t)
	_, ok := c.Target().MinMax(ColumnTarget)
	require.False(t, ok, "char columns have no range")
	_, ok = v.MinMax(ColumnFlag)
	require.False(t, ok, "logical columns have no range")
	_, ok = v.MinMax("NOPE")
	require.False(t, ok)

	vis := NewOIVis()
	require.Nil(t, vis.Initialize(1))
	_, err := vis.AllocateColumn(ColumnVisData)
	require.Nil(t, err)
	_, ok = vis.MinMax(ColumnVisData)
	require.False(t, ok, "complex columns have no range")

	// every value is undefined
	_, ok = v.MinMax(ColumnTime)
	require.True(t, ok)
	v.Time()[0], v.Time()[1] = math.NaN(), math.NaN()
	v.SetChanged()
	_, ok = v.MinMax(ColumnTime)
	require.False(t, ok)
}

func TestMinMaxSkipsNaN(t *testing.T) {
	_, v := newTestContainer(t)
	v.Vis2Data()[0] = []float64{math.NaN(), 0.25}
	v.Vis2Data()[1] = []float64{0.75, math.NaN()}
	v.SetChanged()
	r, ok := v.MinMax(ColumnVis2Data)
	require.True(t, ok)
	require.Equal(t, Range{Min: 0.25, Max: 0.75}, r)
}

func TestMinMaxIsCachedUntilChanged(t *testing.T) {
	_, v := newTestContainer(t)
	r, ok := v.MinMax(ColumnUCoord)
	require.True(t, ok)
	require.Equal(t, Range{Min: 3, Max: 30}, r)

	// in place edits are not seen until SetChanged
	v.UCoord()[0] = -100
	r, _ = v.MinMax(ColumnUCoord)
	require.Equal(t, Range{Min: 3, Max: 30}, r)

	v.SetChanged()
	r, _ = v.MinMax(ColumnUCoord)
	require.Equal(t, Range{Min: -100, Max: 30}, r)

	require.Nil(t, v.SetColumnValue(ColumnUCoord, []float64{1, 2}))
	r, _ = v.MinMax(ColumnUCoord)
	require.Equal(t, Range{Min: 1, Max: 2}, r)
}

func TestMinMaxOtherStorages(t *testing.T) {
	c, v := newTestContainer(t)
	r, ok := v.MinMax(ColumnStaIndex)
	require.True(t, ok)
	require.Equal(t, Range{Min: 1, Max: 3}, r)

	w := c.Wavelengths()[0]
	r, ok = w.MinMax(ColumnEffWave)
	require.True(t, ok)
	require.InEpsilon(t, 2e-6, r.Min, 1e-6)
	require.InEpsilon(t, 4e-6, r.Max, 1e-6)

	// undefined integers are plain values
	target := NewOITarget()
	target.SetLogger(logging.Discard())
	require.Nil(t, target.Initialize(2))
	target.TargetID()[0] = 4
	target.SetChanged()
	r, ok = target.MinMax(ColumnTargetID)
	require.True(t, ok)
	require.Equal(t, Range{Min: math.MinInt16, Max: 4}, r)
}

func TestMinMaxOfDerivedColumns(t *testing.T) {
	_, v := newTestContainer(t)
	r, ok := v.MinMax(ColumnRadius)
	require.True(t, ok)
	require.Equal(t, Range{Min: 5, Max: 50}, r)

	r, ok = v.MinMax(ColumnSpatialFreq)
	require.True(t, ok)
	require.InEpsilon(t, 5/4e-6, r.Min, 1e-6)
	require.InEpsilon(t, 50/2e-6, r.Max, 1e-6)
}

func TestMinMaxOfDerivedColumnsFollowsWavelength(t *testing.T) {
	c, v := newTestContainer(t)
	r, ok := v.MinMax(ColumnSpatialFreq)
	require.True(t, ok)
	require.InEpsilon(t, 50/2e-6, r.Max, 1e-6)

	w := c.Wavelengths()[0]
	w.EffWave()[0] = 1e-6
	w.SetChanged()
	r, ok = v.MinMax(ColumnSpatialFreq)
	require.True(t, ok)
	require.InEpsilon(t, 50/1e-6, r.Max, 1e-6)
	r, ok = v.MinMax(ColumnEffWave)
	require.True(t, ok)
	require.InEpsilon(t, 1e-6, r.Min, 1e-6)

	require.True(t, c.Remove(w))
	_, ok = v.MinMax(ColumnSpatialFreq)
	require.False(t, ok)
	_, ok = v.MinMax(ColumnEffWave)
	require.False(t, ok)
	r, ok = v.MinMax(ColumnRadius)
	require.True(t, ok)
	require.Equal(t, Range{Min: 5, Max: 50}, r)
}
