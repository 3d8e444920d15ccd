package snapshot

import (
	"bytes"
	"math"
	"testing"

	"github.com/go-sif/oifits"
	"github.com/go-sif/oifits/logging"
	oitesting "github.com/go-sif/oifits/testing"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	c, err := oitesting.SampleContainer()
	require.Nil(t, err)

	var buf bytes.Buffer
	s := NewSerializer()
	require.Nil(t, s.Write(&buf, c))
	require.NotZero(t, buf.Len())

	restored, err := s.Read(&buf, oifits.WithLogger(logging.Discard()))
	require.Nil(t, err)
	require.Equal(t, c.NbTables(), restored.NbTables())
	require.Equal(t, c.Fingerprint(), restored.Fingerprint())
	require.NotEqual(t, c.ID(), restored.ID())
	for i, table := range restored.Tables() {
		require.Equal(t, c.Tables()[i].Kind(), table.Kind())
		require.Equal(t, i+1, table.Base().ExtNb())
		require.NotEqual(t, c.Tables()[i].Base().ID(), table.Base().ID())
	}

	checker := oifits.NewChecker()
	restored.Check(checker)
	require.Empty(t, checker.Violations())

	// undefined values survive
	vis, ok := restored.Tables()[5].(*oifits.OIVis)
	require.True(t, ok)
	require.True(t, math.IsNaN(float64(vis.VisData()[0][1][1])))

	// the serializer can be reused
	buf.Reset()
	require.Nil(t, s.Write(&buf, restored))
	again, err := s.Read(&buf)
	require.Nil(t, err)
	require.Equal(t, c.Fingerprint(), again.Fingerprint())
}

func TestCloneIsIndependent(t *testing.T) {
	c, err := oitesting.SampleContainer()
	require.Nil(t, err)
	clone, err := Clone(c)
	require.Nil(t, err)
	require.Same(t, c.Logger(), clone.Logger())

	original := c.Tables()[3].(*oifits.OIVis2)
	copied := clone.Tables()[3].(*oifits.OIVis2)
	require.Same(t, clone.Wavelengths()[0], copied.OIWavelength())
	require.Same(t, clone.Arrays()[0], copied.OIArray())
	require.Equal(t, original.SpatialFreq(), copied.SpatialFreq())

	copied.Vis2Data()[0][0] = 0.9
	copied.SetChanged()
	require.Equal(t, 0.5, original.Vis2Data()[0][0])
	require.NotEqual(t, c.Fingerprint(), clone.Fingerprint())

	clone.Wavelengths()[0].SetInsName("GRAVITY")
	require.NotNil(t, original.OIWavelength())
	require.Nil(t, copied.OIWavelength())
}

func TestReadCorruptedStream(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not a snapshot")))
	require.NotNil(t, err)

	var buf bytes.Buffer
	require.Nil(t, Write(&buf, oifits.New(oifits.WithLogger(logging.Discard()))))
	empty, err := Read(&buf, oifits.WithLogger(logging.Discard()))
	require.Nil(t, err)
	require.Equal(t, 0, empty.NbTables())
}
