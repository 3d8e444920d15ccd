package oifits

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the kind, keyword values and column arrays of the table.
// Two tables holding the same data have the same fingerprint; derived values
// and caches are not hashed.
func (t *Table) Fingerprint() uint64 {
	hasher := xxhash.New()
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(t.kind))
	hasher.Write(buf)

	names := make([]string, 0, len(t.keywords))
	for name := range t.keywords {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(hasher, "%s=%T:%v;", name, t.keywords[name], t.keywords[name])
	}

	for _, desc := range t.columnOrder {
		value := t.columns[desc.Name()]
		if value == nil {
			continue
		}
		hasher.WriteString(desc.Name())
		hasher.WriteString(ArrayDescription(value))
		forEachLeaf(reflect.ValueOf(value), func(leaf reflect.Value) bool {
			switch leaf.Kind() {
			case reflect.String:
				hasher.WriteString(leaf.String())
				buf[0] = 0
				hasher.Write(buf[:1])
			case reflect.Bool:
				buf[0] = 0
				if leaf.Bool() {
					buf[0] = 1
				}
				hasher.Write(buf[:1])
			case reflect.Int16, reflect.Int32:
				binary.LittleEndian.PutUint64(buf, uint64(leaf.Int()))
				hasher.Write(buf)
			case reflect.Float32, reflect.Float64:
				binary.LittleEndian.PutUint64(buf, math.Float64bits(leaf.Float()))
				hasher.Write(buf)
			}
			return true
		})
	}
	return hasher.Sum64()
}
