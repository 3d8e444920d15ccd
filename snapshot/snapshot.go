// Package snapshot serializes OIFits containers into lz4-compressed gob streams. Snapshots persist
// checkpoints, and Clone uses them to hand an independent copy of a container to another goroutine.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"reflect"

	"github.com/go-sif/oifits"
	"github.com/pierrec/lz4"
)

// tableState is the serialized form of a table: derived values and caches are recomputed after loading
type tableState struct {
	ID       string
	ExtName  string
	Keywords map[string]interface{}
	Columns  map[string]interface{}
}

// containerState is the serialized form of a container
type containerState struct {
	ID     string
	Tables []tableState
}

func init() {
	storages := []oifits.Storage{
		oifits.StorageString, oifits.StorageInt16, oifits.StorageInt32,
		oifits.StorageFloat32, oifits.StorageFloat64, oifits.StorageBool,
	}
	// register scalars and every nested slice a column may hold
	for _, s := range storages {
		for ndims := 0; ndims <= 4; ndims++ {
			gob.Register(newZero(oifits.ArrayType(s, ndims)))
		}
	}
}

func newZero(t reflect.Type) interface{} {
	return reflect.Zero(t).Interface()
}

// Serializer writes and reads compressed snapshots, reusing its lz4 codecs. A Serializer is not safe for concurrent use.
type Serializer struct {
	compressor   *lz4.Writer
	decompressor *lz4.Reader
}

// NewSerializer instantiates a new Serializer
func NewSerializer() *Serializer {
	return &Serializer{
		compressor:   lz4.NewWriter(new(bytes.Buffer)),
		decompressor: lz4.NewReader(new(bytes.Buffer)),
	}
}

// Write serializes and compresses a container to a write stream
func (s *Serializer) Write(w io.Writer, c *oifits.Container) error {
	state := containerState{ID: c.ID().String()}
	for _, t := range c.Tables() {
		base := t.Base()
		ts := tableState{
			ID:       base.ID().String(),
			ExtName:  base.ExtName(),
			Keywords: make(map[string]interface{}),
			Columns:  make(map[string]interface{}),
		}
		for _, desc := range base.KeywordDescs() {
			if v := base.KeywordValue(desc.Name()); v != nil {
				ts.Keywords[desc.Name()] = v
			}
		}
		for _, desc := range base.ColumnDescs() {
			if v := base.ColumnValue(desc.Name()); v != nil {
				ts.Columns[desc.Name()] = v
			}
		}
		state.Tables = append(state.Tables, ts)
	}

	s.compressor.Reset(w)
	if err := gob.NewEncoder(s.compressor).Encode(&state); err != nil {
		return fmt.Errorf("cannot encode snapshot of container %s: %w", state.ID, err)
	}
	return s.compressor.Close()
}

// Read decompresses and deserializes a container from a read stream. Tables get new identifiers.
func (s *Serializer) Read(r io.Reader, opts ...oifits.Option) (*oifits.Container, error) {
	s.decompressor.Reset(r)
	var state containerState
	if err := gob.NewDecoder(s.decompressor).Decode(&state); err != nil {
		return nil, fmt.Errorf("cannot decode snapshot: %w", err)
	}

	c := oifits.New(opts...)
	c.Logger().Debug("reading snapshot", "source", state.ID, "tables", len(state.Tables))
	tables := make([]oifits.OITable, len(state.Tables))
	for i, ts := range state.Tables {
		t, err := oifits.NewTable(ts.ExtName)
		if err != nil {
			return nil, err
		}
		if err := c.Add(t); err != nil {
			return nil, err
		}
		tables[i] = t
	}
	for i, ts := range state.Tables {
		base := tables[i].Base()
		for name, v := range ts.Keywords {
			if err := base.SetKeywordValue(name, v); err != nil {
				return nil, err
			}
		}
		for name, v := range ts.Columns {
			if err := base.SetColumnValue(name, v); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// Write serializes and compresses a container to a write stream
func Write(w io.Writer, c *oifits.Container) error {
	return NewSerializer().Write(w, c)
}

// Read decompresses and deserializes a container from a read stream
func Read(r io.Reader, opts ...oifits.Option) (*oifits.Container, error) {
	return NewSerializer().Read(r, opts...)
}

// Clone returns a deep copy of a container, sharing no table or array with it
func Clone(c *oifits.Container) (*oifits.Container, error) {
	var buf bytes.Buffer
	s := NewSerializer()
	if err := s.Write(&buf, c); err != nil {
		return nil, err
	}
	return s.Read(&buf, oifits.WithLogger(c.Logger()))
}
