package oifits

import (
	"testing"

	"github.com/go-sif/oifits/errors"
	"github.com/go-sif/oifits/logging"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	for _, kind := range []Kind{KindTarget, KindArray, KindWavelength, KindVis, KindVis2, KindT3} {
		table, err := NewTable(kind.ExtName())
		require.Nil(t, err)
		require.Equal(t, kind, table.Kind())
		require.Equal(t, kind.IsData(), isDataTable(table))
	}
	_, err := NewTable("OI_FLUX")
	require.Equal(t, errors.UnknownTableError{ExtName: "OI_FLUX"}, err)
}

func isDataTable(t OITable) bool {
	_, ok := t.(DataTable)
	return ok
}

func TestAddAndRemove(t *testing.T) {
	c := New(WithLogger(logging.Discard()))
	target := NewOITarget()
	w := NewOIWavelength()
	v := NewOIVis2()
	require.Nil(t, c.Add(target))
	require.Nil(t, c.Add(w))
	require.Nil(t, c.Add(v))
	require.Equal(t, 3, c.NbTables())
	require.Equal(t, 3, v.ExtNb())
	require.Equal(t, "OI_VIS2#3", v.String())
	require.Same(t, c, v.Container())

	require.IsType(t, errors.DuplicateTableError{}, c.Add(w))
	require.IsType(t, errors.DuplicateTableError{}, New().Add(w))

	generation := c.Generation()
	require.True(t, c.Remove(w))
	require.Greater(t, c.Generation(), generation)
	require.False(t, c.Remove(w))
	require.Equal(t, 2, v.ExtNb())
	require.Equal(t, []OITable{target, v}, c.Tables())

	// a removed table can join another container
	other := New(WithLogger(logging.Discard()))
	require.Nil(t, other.Add(w))
	require.Equal(t, 1, w.ExtNb())
}

func TestContainerAccessors(t *testing.T) {
	c, v := newTestContainer(t)
	require.NotNil(t, c.Target())
	require.Len(t, c.Targets(), 1)
	require.Len(t, c.Arrays(), 1)
	require.Len(t, c.Wavelengths(), 1)
	require.Len(t, c.Data(), 1)
	require.Same(t, &v.OIData, c.Data()[0].Data())

	require.Same(t, c.Arrays()[0], c.OIArray("VLTI"))
	require.Same(t, c.Arrays()[0], c.OIArray("VLTI   "))
	require.Nil(t, c.OIArray("CHARA"))
	require.Same(t, c.Wavelengths()[0], c.OIWavelength("AMBER"))

	require.Equal(t, []string{"VLTI"}, c.AcceptedArrNames())
	require.Equal(t, []string{"AMBER"}, c.AcceptedInsNames())
	require.Equal(t, []int16{1}, c.AcceptedTargetIDs())
	require.Equal(t, []int16{1, 2, 3}, c.AcceptedStaIndexes(c.Arrays()[0]))
	require.Nil(t, c.AcceptedStaIndexes(nil))

	require.Equal(t, "OI_VIS2#4[VLTI][AMBER] NbRows=2 NWave=2 NbMeasurements=4 NbFlagged=0", v.Summary())
}

type countingVisitor struct {
	counts map[Kind]int
}

func (c *countingVisitor) VisitTarget(t *OITarget)         { c.counts[t.Kind()]++ }
func (c *countingVisitor) VisitArray(a *OIArray)           { c.counts[a.Kind()]++ }
func (c *countingVisitor) VisitWavelength(w *OIWavelength) { c.counts[w.Kind()]++ }
func (c *countingVisitor) VisitVis(v *OIVis)               { c.counts[v.Kind()]++ }
func (c *countingVisitor) VisitVis2(v *OIVis2)             { c.counts[v.Kind()]++ }
func (c *countingVisitor) VisitT3(t *OIT3)                 { c.counts[t.Kind()]++ }

func TestVisitor(t *testing.T) {
	c, _ := newTestContainer(t)
	require.Nil(t, c.Add(NewOIT3()))
	require.Nil(t, c.Add(NewOIVis()))
	visitor := &countingVisitor{counts: make(map[Kind]int)}
	c.Walk(visitor)
	require.Equal(t, map[Kind]int{
		KindTarget: 1, KindArray: 1, KindWavelength: 1, KindVis: 1, KindVis2: 1, KindT3: 1,
	}, visitor.counts)
}
