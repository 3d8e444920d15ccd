package jsonfile_test

import (
	goerrors "errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/go-sif/oifits"
	"github.com/go-sif/oifits/datasource/jsonfile"
	"github.com/go-sif/oifits/errors"
	"github.com/go-sif/oifits/logging"
	oitesting "github.com/go-sif/oifits/testing"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestParseSample(t *testing.T) {
	c, err := oitesting.SampleContainer()
	require.Nil(t, err)
	require.Equal(t, 6, c.NbTables())
	require.Len(t, c.Data(), 3)

	checker := oifits.NewChecker()
	c.Check(checker)
	require.Empty(t, checker.Violations())

	vis2, ok := c.Tables()[3].(*oifits.OIVis2)
	require.True(t, ok)
	require.Equal(t, 2, vis2.NWave())
	require.Equal(t, 1, vis2.NbFlagged())
	require.Equal(t, []float64{0.7, 0.8}, vis2.Vis2Data()[1])
	require.InEpsilon(t, 5/2e-6, vis2.SpatialFreq()[0][0], 1e-6)

	vis, ok := c.Tables()[5].(*oifits.OIVis)
	require.True(t, ok)
	require.Equal(t, 2, vis.OIRevn())
	visData := vis.VisData()
	require.Len(t, visData, 1)
	require.Equal(t, []float32{0.5, 0.1}, visData[0][0])
	require.True(t, math.IsNaN(float64(visData[0][1][0])))
	// optional columns absent from the document stay undefined
	require.Nil(t, vis.VisErr())
}

func TestParseKeepsLoadableTables(t *testing.T) {
	doc := `{"tables": [
	  {"extname": "OI_FOO"},
	  {"extname": "OI_TARGET", "keywords": {"OI_REVN": 1, "NOPE": 1, "EXTVER": null}, "rows": 2,
	   "columns": {"TARGET_ID": [1, null], "TARGET": [1, 2]}}
	]}`
	c, err := jsonfile.Parse([]byte(doc), oifits.WithLogger(logging.Discard()))
	require.NotNil(t, err)
	require.NotNil(t, c)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 3)
	var unknownTable errors.UnknownTableError
	require.True(t, goerrors.As(merr.Errors[0], &unknownTable))
	require.Equal(t, "OI_FOO", unknownTable.ExtName)
	require.Equal(t, errors.UnknownMemberError{Table: "OI_TARGET#1", Name: "NOPE"}, merr.Errors[1])
	var mismatch errors.TypeMismatchError
	require.True(t, goerrors.As(merr.Errors[2], &mismatch))
	require.Equal(t, oifits.ColumnTarget, mismatch.Name)

	require.Equal(t, 1, c.NbTables())
	target := c.Target()
	require.NotNil(t, target)
	require.Equal(t, 1, target.KeywordInt(oifits.KeywordOIRevn))
	require.False(t, target.HasKeyword(oifits.KeywordExtVer))
	require.Equal(t, []int16{1, oifits.UndefinedShort}, target.TargetID())
	// the column in error keeps its freshly allocated value
	require.Equal(t, []string{"", ""}, target.Target())
}

func TestParseShapeIsKept(t *testing.T) {
	doc := `{"tables": [
	  {"extname": "OI_WAVELENGTH", "keywords": {"INSNAME": "AMBER"}, "rows": 2,
	   "columns": {"EFF_WAVE": [2e-6], "EFF_BAND": [1e-7, 1e-7]}}
	]}`
	c, err := jsonfile.Parse([]byte(doc), oifits.WithLogger(logging.Discard()))
	require.Nil(t, err)
	w := c.Wavelengths()[0]
	require.Equal(t, []float32{2e-6}, w.EffWave())

	checker := oifits.NewChecker()
	w.CheckSyntax(checker)
	require.Len(t, checker.ViolationsOf(oifits.RuleColumnRows), 1)
}

func TestParseInvalidDocuments(t *testing.T) {
	for name, doc := range map[string]string{
		"invalid JSON": `{"tables": [`,
		"no tables":    `{"extname": "OI_TARGET"}`,
	} {
		c, err := jsonfile.Parse([]byte(doc))
		require.NotNil(t, err, name)
		require.Nil(t, c, name)
	}

	c, err := jsonfile.Parse([]byte(`{"tables": [{"extname": "OI_TARGET", "rows": 0}]}`), oifits.WithLogger(logging.Discard()))
	require.NotNil(t, err)
	require.Equal(t, 1, c.NbTables())
	var shape errors.InvalidShapeError
	require.True(t, goerrors.As(err, &shape))
}

func TestLoadFileAndGlob(t *testing.T) {
	dir := t.TempDir()
	path, err := oitesting.WriteSample(dir, "sample.json")
	require.Nil(t, err)
	_, err = oitesting.WriteSample(dir, "other.json")
	require.Nil(t, err)

	c, err := jsonfile.LoadFile(path, oifits.WithLogger(logging.Discard()))
	require.Nil(t, err)
	require.Equal(t, 6, c.NbTables())

	_, err = jsonfile.LoadFile(filepath.Join(dir, "missing.json"))
	require.NotNil(t, err)

	paths, err := jsonfile.Glob(filepath.Join(dir, "*.json"))
	require.Nil(t, err)
	require.Equal(t, []string{filepath.Join(dir, "other.json"), path}, paths)

	_, err = jsonfile.Glob(filepath.Join(dir, "*.fits"))
	require.NotNil(t, err)
}

func TestParseRejectsIntegersOutOfRange(t *testing.T) {
	doc := `{"tables": [
	  {"extname": "OI_TARGET", "keywords": {"OI_REVN": 65537, "EXTVER": 2.5}, "rows": 3,
	   "columns": {"TARGET_ID": [70000], "EQUINOX": [2000]}},
	  {"extname": "OI_ARRAY", "keywords": {"OI_REVN": 1}, "rows": 2,
	   "columns": {"STA_INDEX": [1, 1.5]}},
	  {"extname": "OI_WAVELENGTH", "keywords": {"OI_REVN": -32768, "NAXIS2": 2147483648}, "rows": 1,
	   "columns": {"EFF_WAVE": [2e-6]}}
	]}`
	c, err := jsonfile.Parse([]byte(doc), oifits.WithLogger(logging.Discard()))
	require.NotNil(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 5)
	require.Equal(t, errors.TypeMismatchError{Name: oifits.KeywordOIRevn, Want: "int16", Got: "Number 65537"}, merr.Errors[0])
	require.Equal(t, errors.TypeMismatchError{Name: oifits.KeywordExtVer, Want: "int32", Got: "Number 2.5"}, merr.Errors[1])
	require.Equal(t, errors.TypeMismatchError{Name: oifits.KeywordNaxis2, Want: "int32", Got: "Number 2147483648"}, merr.Errors[2])
	var mismatch errors.TypeMismatchError
	require.True(t, goerrors.As(merr.Errors[3], &mismatch))
	require.Equal(t, oifits.ColumnTargetID, mismatch.Name)
	require.Equal(t, "Number 70000", mismatch.Got)
	require.True(t, goerrors.As(merr.Errors[4], &mismatch))
	require.Equal(t, "Number 1.5", mismatch.Got)

	target := c.Target()
	require.False(t, target.HasKeyword(oifits.KeywordOIRevn))
	require.False(t, target.HasKeyword(oifits.KeywordExtVer))
	require.Equal(t, []int16{oifits.UndefinedShort, oifits.UndefinedShort, oifits.UndefinedShort}, target.TargetID())
	require.Equal(t, []int16{oifits.UndefinedShort, oifits.UndefinedShort}, c.Arrays()[0].StaIndex())
	// bounds are inclusive
	require.Equal(t, -32768, c.Wavelengths()[0].KeywordInt(oifits.KeywordOIRevn))
	require.Equal(t, 1, c.Wavelengths()[0].NbRows())
}
