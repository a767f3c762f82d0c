package series

import (
	"iter"
	"slices"
)

// Row is a read-only view of the values recorded at one timestamp.
//
// A Row borrows the series storage; it stays valid for the lifetime of the
// series and never exposes the backing slice.
type Row struct {
	values []float64
}

// Len returns the number of columns in the row.
func (r Row) Len() int {
	return len(r.values)
}

// At returns the value of column j. It panics if j is out of range.
func (r Row) At(j int) float64 {
	return r.values[j]
}

// All yields each column index and value in order.
func (r Row) All() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for j, v := range r.values {
			if !yield(j, v) {
				return
			}
		}
	}
}

// Values returns a copy of the row.
func (r Row) Values() []float64 {
	return slices.Clone(r.values)
}

// AppendTo appends the row to dst and returns the extended slice.
func (r Row) AppendTo(dst []float64) []float64 {
	return append(dst, r.values...)
}
