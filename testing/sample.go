// Package testing provides sample OIFits documents and containers for tests of this module and of its users.
package testing

import (
	"os"
	"path/filepath"

	"github.com/go-sif/oifits"
	"github.com/go-sif/oifits/datasource/jsonfile"
	"github.com/go-sif/oifits/logging"
)

// SampleJSON describes a valid container: one target, the VLTI array, the AMBER instrument
// with two channels, and OI_VIS, OI_VIS2 and OI_T3 tables referring to them
const SampleJSON = `{"tables": [
  {"extname": "OI_TARGET", "keywords": {"OI_REVN": 1}, "rows": 1,
   "columns": {"TARGET_ID": [1], "TARGET": ["HD 1234"], "RAEP0": [10.5], "DECEP0": [-20.25],
     "EQUINOX": [2000], "RA_ERR": [0], "DEC_ERR": [0], "SYSVEL": [0], "VELTYP": ["LSR"],
     "VELDEF": ["OPTICAL"], "PMRA": [0], "PMDEC": [0], "PMRA_ERR": [0], "PMDEC_ERR": [0],
     "PARALLAX": [0], "PARA_ERR": [0], "SPECTYP": ["K0III"]}},
  {"extname": "OI_ARRAY", "keywords": {"OI_REVN": 1, "ARRNAME": "VLTI", "FRAME": "GEOCENTRIC",
     "ARRAYX": 1942014.1, "ARRAYY": -5455311.2, "ARRAYZ": -2654530.6}, "rows": 3,
   "columns": {"TEL_NAME": ["UT1", "UT2", "UT3"], "STA_NAME": ["U1", "U2", "U3"], "STA_INDEX": [1, 2, 3],
     "DIAMETER": [8.2, 8.2, 8.2], "STAXYZ": [[0, 0, 0], [24.8, 50.8, 0], [54.8, 86.5, 0]]}},
  {"extname": "OI_WAVELENGTH", "keywords": {"OI_REVN": 1, "INSNAME": "AMBER"}, "rows": 2,
   "columns": {"EFF_WAVE": [2e-6, 4e-6], "EFF_BAND": [1e-7, 1e-7]}},
  {"extname": "OI_VIS2", "keywords": {"OI_REVN": 1, "DATE-OBS": "2020-01-01", "ARRNAME": "VLTI", "INSNAME": "AMBER"}, "rows": 2,
   "columns": {"TARGET_ID": [1, 1], "TIME": [0, 60], "MJD": [58849.0, 58849.1], "INT_TIME": [1, 1],
     "VIS2DATA": [[0.5, 0.6], [0.7, 0.8]], "VIS2ERR": [[0.01, 0.01], [0.02, 0.02]],
     "UCOORD": [3, 30], "VCOORD": [4, 40], "STA_INDEX": [[1, 2], [2, 3]], "FLAG": [[false, false], [false, true]]}},
  {"extname": "OI_T3", "keywords": {"OI_REVN": 1, "DATE-OBS": "2020-01-01", "ARRNAME": "VLTI", "INSNAME": "AMBER"}, "rows": 1,
   "columns": {"TARGET_ID": [1], "TIME": [0], "MJD": [58849.0], "INT_TIME": [1],
     "T3AMP": [[0.1, 0.2]], "T3AMPERR": [[0.01, 0.01]], "T3PHI": [[10, 20]], "T3PHIERR": [[1, 1]],
     "U1COORD": [3], "V1COORD": [4], "U2COORD": [6], "V2COORD": [8], "STA_INDEX": [[1, 2, 3]], "FLAG": [[false, false]]}},
  {"extname": "OI_VIS", "keywords": {"OI_REVN": 2, "DATE-OBS": "2020-01-01", "ARRNAME": "VLTI", "INSNAME": "AMBER"}, "rows": 1,
   "columns": {"TARGET_ID": [1], "TIME": [0], "MJD": [58849.0], "INT_TIME": [1],
     "VISAMP": [[0.7, 0.75]], "VISAMPERR": [[0.01, 0.01]], "VISPHI": [[1, 2]], "VISPHIERR": [[0.1, 0.1]],
     "UCOORD": [3], "VCOORD": [4], "STA_INDEX": [[1, 2]], "FLAG": [[false, false]],
     "VISDATA": [[[0.5, 0.1], [null, null]]]}}
]}`

// SampleContainer parses SampleJSON into a new Container which logs nothing
func SampleContainer() (*oifits.Container, error) {
	return jsonfile.Parse([]byte(SampleJSON), oifits.WithLogger(logging.Discard()))
}

// WriteSample writes SampleJSON to a file of dir and returns its path
func WriteSample(dir string, name string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(SampleJSON), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
