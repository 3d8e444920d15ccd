package jsonfile

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"

	"github.com/go-sif/oifits"
	"github.com/go-sif/oifits/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/gjson"
)

// Glob returns the files matched by a glob pattern, failing when nothing matches
func Glob(glob string) ([]string, error) {
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", glob)
	}
	return matches, nil
}

// LoadFile reads and parses a JSON document from disk
func LoadFile(path string, opts ...oifits.Option) (*oifits.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data, opts...)
	if err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse builds a Container from a JSON document. Every table which could be
// created is returned in the Container, even when others failed: the returned
// error lists each problem met while loading.
func Parse(data []byte, opts ...oifits.Option) (*oifits.Container, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	tables := gjson.GetBytes(data, "tables")
	if !tables.IsArray() {
		return nil, fmt.Errorf("JSON document has no \"tables\" array")
	}

	c := oifits.New(opts...)
	var multierr *multierror.Error
	type pending struct {
		table oifits.OITable
		rows  int
		doc   gjson.Result
	}
	var loaded []pending

	// tables are all added before any column is allocated, so that data tables
	// can resolve NWAVE whatever the order of the document
	for i, doc := range tables.Array() {
		extName := doc.Get("extname").String()
		t, err := oifits.NewTable(extName)
		if err != nil {
			multierr = multierror.Append(multierr, fmt.Errorf("table %d: %w", i, err))
			continue
		}
		if err := c.Add(t); err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		if err := parseKeywords(t.Base(), doc.Get("keywords")); err != nil {
			multierr = multierror.Append(multierr, err)
		}
		rows := int(doc.Get("rows").Int())
		if rows > 0 {
			t.Base().SetKeywordInt(oifits.KeywordNaxis2, rows)
		}
		loaded = append(loaded, pending{table: t, rows: rows, doc: doc})
	}

	for _, p := range loaded {
		base := p.table.Base()
		if err := base.Initialize(p.rows); err != nil {
			multierr = multierror.Append(multierr, fmt.Errorf("%s: %w", base, err))
			continue
		}
		if err := parseColumns(base, p.doc.Get("columns")); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return c, multierr.ErrorOrNil()
}

func parseKeywords(t *oifits.Table, keywords gjson.Result) error {
	var multierr *multierror.Error
	keywords.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		desc := t.KeywordDesc(name)
		if desc == nil {
			multierr = multierror.Append(multierr, errors.UnknownMemberError{Table: t.String(), Name: name})
			return true
		}
		if value.Type == gjson.Null {
			return true
		}
		v, err := parseLeaf(name, desc.Type().Storage(), value)
		if err != nil {
			multierr = multierror.Append(multierr, err)
			return true
		}
		if err := t.SetKeywordValue(name, v); err != nil {
			multierr = multierror.Append(multierr, err)
		}
		return true
	})
	return multierr.ErrorOrNil()
}

func parseColumns(t *oifits.Table, columns gjson.Result) error {
	var multierr *multierror.Error
	columns.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		desc := t.ColumnDesc(name)
		if desc == nil {
			multierr = multierror.Append(multierr, errors.UnknownMemberError{Table: t.String(), Name: name})
			return true
		}
		array, err := buildArray(name, desc.ArrayType(), desc.Type().Storage(), value)
		if err != nil {
			multierr = multierror.Append(multierr, fmt.Errorf("%s: %w", t, err))
			return true
		}
		if err := t.SetColumnValue(name, array.Interface()); err != nil {
			multierr = multierror.Append(multierr, err)
		}
		return true
	})
	return multierr.ErrorOrNil()
}

// buildArray converts a JSON array into a nested slice of type typ, keeping the shape of the document
func buildArray(name string, typ reflect.Type, s oifits.Storage, value gjson.Result) (reflect.Value, error) {
	if !value.IsArray() {
		return reflect.Value{}, errors.TypeMismatchError{Name: name, Want: typ.String(), Got: value.Type.String()}
	}
	elems := value.Array()
	array := reflect.MakeSlice(typ, len(elems), len(elems))
	for i, elem := range elems {
		var v reflect.Value
		var err error
		if typ.Elem().Kind() == reflect.Slice {
			v, err = buildArray(name, typ.Elem(), s, elem)
		} else {
			var leaf interface{}
			leaf, err = parseLeaf(name, s, elem)
			v = reflect.ValueOf(leaf)
		}
		if err != nil {
			return reflect.Value{}, err
		}
		array.Index(i).Set(v)
	}
	return array, nil
}

// parseLeaf converts a JSON scalar into the element type of s. null gives the undefined value.
func parseLeaf(name string, s oifits.Storage, value gjson.Result) (interface{}, error) {
	if value.Type == gjson.Null {
		return s.Undefined(), nil
	}
	switch s {
	case oifits.StorageString:
		if value.Type == gjson.String {
			return value.String(), nil
		}
	case oifits.StorageBool:
		if value.Type == gjson.True || value.Type == gjson.False {
			return value.Bool(), nil
		}
	case oifits.StorageInt16:
		if n, ok := integer(value, math.MinInt16, math.MaxInt16); ok {
			return int16(n), nil
		}
	case oifits.StorageInt32:
		if n, ok := integer(value, math.MinInt32, math.MaxInt32); ok {
			return int32(n), nil
		}
	case oifits.StorageFloat32:
		if value.Type == gjson.Number {
			return float32(value.Float()), nil
		}
	case oifits.StorageFloat64:
		if value.Type == gjson.Number {
			return value.Float(), nil
		}
	}
	got := value.Type.String()
	if value.Type == gjson.Number {
		got += " " + value.Raw
	}
	return nil, errors.TypeMismatchError{Name: name, Want: s.String(), Got: got}
}

// integer returns the value of an integral JSON number within [lo, hi]
func integer(value gjson.Result, lo int64, hi int64) (int64, bool) {
	if value.Type != gjson.Number || value.Num != math.Trunc(value.Num) {
		return 0, false
	}
	n := value.Int()
	return n, n >= lo && n <= hi
}
