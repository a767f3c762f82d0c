package series

import (
	"cmp"
	"slices"
)

// Search returns the position of target in the non-decreasing slice sorted.
//
// An exact match returns the index of the first equal element. A target below
// every element returns 0. Otherwise the index of the greatest element strictly
// less than target is returned, which is the last index when target exceeds all
// elements. An empty slice returns 0.
//
// Example:
//
//	times := []float64{10, 20, 30}
//	series.Search(20.0, times) // 1
//	series.Search(25.0, times) // 1
//	series.Search(5.0, times)  // 0
//	series.Search(99.0, times) // 2
func Search[T cmp.Ordered](target T, sorted []T) int {
	i, found := slices.BinarySearch(sorted, target)
	if found || i == 0 {
		return i
	}

	return i - 1
}
