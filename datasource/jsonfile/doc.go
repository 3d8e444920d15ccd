// Package jsonfile loads OIFits containers from JSON documents. This loader uses https://github.com/tidwall/gjson
// to walk the document, and builds column arrays with the shape found in the document so that malformed
// tables can still be loaded and reported by a Checker.
//
// A document lists tables in extension order:
//
//	{"tables": [{"extname": "OI_WAVELENGTH", "keywords": {"INSNAME": "X", "OI_REVN": 1}, "rows": 2,
//	  "columns": {"EFF_WAVE": [1.6e-6, 1.7e-6], "EFF_BAND": [1e-7, 1e-7]}}]}
//
// A null leaf keeps the undefined value of its column, and complex leaves are [re, im] pairs.
package jsonfile
