package oifits

import (
	"math"
)

// Range holds the minimum and maximum values of a numeric column
type Range struct {
	Min float64
	Max float64
}

type number interface {
	~int16 | ~int32 | ~float32 | ~float64
}

// MinMax returns the range of a standard or derived numeric column. The result is
// computed once and cached until the table changes. ok is false for Char, Complex
// and Logical columns, for undefined columns, and when no value could be compared
// (e.g. every value is NaN).
func (t *Table) MinMax(name string) (r Range, ok bool) {
	t.expireDerived()
	if t.ranges == nil {
		t.ranges = make(map[string]*Range)
	}
	cached, done := t.ranges[name]
	if !done {
		cached = t.computeMinMax(name)
		t.ranges[name] = cached
	}
	if cached == nil {
		return Range{}, false
	}
	return *cached, true
}

func (t *Table) computeMinMax(name string) *Range {
	desc := t.LookupColumn(name)
	if desc == nil || !desc.Type().IsNumeric() {
		// Not Applicable
		return nil
	}
	switch values := t.Values(name).(type) {
	case []int16:
		return scanRange([][]int16{values}, math.MaxInt16, math.MinInt16)
	case [][]int16:
		return scanRange(values, math.MaxInt16, math.MinInt16)
	case [][][]int16:
		return scanRange(flatten(values), math.MaxInt16, math.MinInt16)
	case []int32:
		return scanRange([][]int32{values}, math.MaxInt32, math.MinInt32)
	case [][]int32:
		return scanRange(values, math.MaxInt32, math.MinInt32)
	case [][][]int32:
		return scanRange(flatten(values), math.MaxInt32, math.MinInt32)
	case []float32:
		return scanRange([][]float32{values}, float32(math.Inf(1)), float32(math.Inf(-1)))
	case [][]float32:
		return scanRange(values, float32(math.Inf(1)), float32(math.Inf(-1)))
	case [][][]float32:
		return scanRange(flatten(values), float32(math.Inf(1)), float32(math.Inf(-1)))
	case []float64:
		return scanRange([][]float64{values}, math.Inf(1), math.Inf(-1))
	case [][]float64:
		return scanRange(values, math.Inf(1), math.Inf(-1))
	case [][][]float64:
		return scanRange(flatten(values), math.Inf(1), math.Inf(-1))
	}
	return nil
}

// scanRange tracks the running min and max of rows, seeded with the extreme
// values of the element type. NaN values never compare and are skipped.
func scanRange[T number](rows [][]T, seedMin T, seedMax T) *Range {
	lo, hi := seedMin, seedMax
	seen := false
	for _, row := range rows {
		for _, v := range row {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
			// false for NaN only
			if v == v {
				seen = true
			}
		}
	}
	if !seen {
		return nil
	}
	return &Range{Min: float64(lo), Max: float64(hi)}
}

func flatten[T number](matrices [][][]T) [][]T {
	rows := make([][]T, 0, len(matrices))
	for _, m := range matrices {
		rows = append(rows, m...)
	}
	return rows
}
