package oifits

import (
	"fmt"
	"reflect"
	"strings"
)

var elemTypes = map[Storage]reflect.Type{
	StorageString:  reflect.TypeOf(""),
	StorageInt16:   reflect.TypeOf(int16(0)),
	StorageInt32:   reflect.TypeOf(int32(0)),
	StorageFloat32: reflect.TypeOf(float32(0)),
	StorageFloat64: reflect.TypeOf(float64(0)),
	StorageBool:    reflect.TypeOf(false),
}

// ArrayType returns the nested slice type holding ndims dimensions of the given storage
func ArrayType(s Storage, ndims int) reflect.Type {
	t := elemTypes[s]
	for i := 0; i < ndims; i++ {
		t = reflect.SliceOf(t)
	}
	return t
}

// NewArray allocates a dense nested slice of the given dimensions, every leaf
// set to the undefined value of the storage kind
func NewArray(s Storage, dims []int) interface{} {
	v := makeArray(ArrayType(s, len(dims)), dims)
	fillUndefined(v.Interface(), dims, 0)
	return v.Interface()
}

func makeArray(t reflect.Type, dims []int) reflect.Value {
	v := reflect.MakeSlice(t, dims[0], dims[0])
	if len(dims) > 1 {
		for i := 0; i < dims[0]; i++ {
			v.Index(i).Set(makeArray(t.Elem(), dims[1:]))
		}
	}
	return v
}

// fillUndefined sets every leaf of output to the undefined value of its element type
func fillUndefined(output interface{}, dims []int, index int) {
	if index+1 == len(dims) {
		switch leaves := output.(type) {
		case []float64:
			for i := range leaves {
				leaves[i] = UndefinedDouble
			}
		case []float32:
			for i := range leaves {
				leaves[i] = UndefinedFloat
			}
		case []int16:
			for i := range leaves {
				leaves[i] = UndefinedShort
			}
		case []int32:
			for i := range leaves {
				leaves[i] = UndefinedInt
			}
		case []bool:
			for i := range leaves {
				leaves[i] = false
			}
		case []string:
			for i := range leaves {
				leaves[i] = UndefinedString
			}
		}
		return
	}
	v := reflect.ValueOf(output)
	for i := 0; i < dims[index]; i++ {
		fillUndefined(v.Index(i).Interface(), dims, index+1)
	}
}

// ArrayDims returns the dimension vector of a dense nested slice, following the first element of each level
func ArrayDims(value interface{}) []int {
	var dims []int
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Slice {
		dims = append(dims, v.Len())
		if v.Len() == 0 {
			break
		}
		v = v.Index(0)
	}
	return dims
}

// ArrayDescription returns a short description of a nested slice such as "float64[12][3]"
func ArrayDescription(value interface{}) string {
	if value == nil {
		return "nil"
	}
	t := reflect.TypeOf(value)
	for t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	var sb strings.Builder
	sb.WriteString(t.String())
	for _, d := range ArrayDims(value) {
		fmt.Fprintf(&sb, "[%d]", d)
	}
	return sb.String()
}
