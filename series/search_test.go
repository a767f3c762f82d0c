package series

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func stepTimes(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}

	return out
}

func TestSearch_Boundaries(t *testing.T) {
	seq := stepTimes(10, 10, 99) // 10, 20, ..., 990
	require.Len(t, seq, 99)

	tests := []struct {
		name   string
		target float64
		want   int
	}{
		{"below all", 5, 0},
		{"above all", 995, 98},
		{"exact match", 500, 49},
		{"predecessor", 505, 49},
		{"first element", 10, 0},
		{"last element", 990, 98},
		{"just above first", 10.5, 0},
		{"just below last", 989.9, 97},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Search(tt.target, seq))
		})
	}
}

func TestSearch_SmallSlices(t *testing.T) {
	require.Equal(t, 0, Search(1.0, nil))
	require.Equal(t, 0, Search(1.0, []float64{}))

	one := []float64{5}
	require.Equal(t, 0, Search(3.0, one))
	require.Equal(t, 0, Search(5.0, one))
	require.Equal(t, 0, Search(7.0, one))

	two := []float64{5, 10}
	require.Equal(t, 0, Search(4.0, two))
	require.Equal(t, 0, Search(7.0, two))
	require.Equal(t, 1, Search(10.0, two))
	require.Equal(t, 1, Search(11.0, two))
}

func TestSearch_Duplicates(t *testing.T) {
	seq := []float64{1, 2, 2, 2, 3}

	require.Equal(t, 1, Search(2.0, seq), "exact match returns first of the run")
	require.Equal(t, 3, Search(2.5, seq), "predecessor is the last of the run")
	require.Equal(t, 4, Search(3.0, seq))
	require.Equal(t, 0, Search(0.0, seq))
}

func TestSearch_Generic(t *testing.T) {
	ints := []uint32{0, 20, 40, 60}
	require.Equal(t, 2, Search(uint32(40), ints))
	require.Equal(t, 2, Search(uint32(59), ints))

	names := []string{"a", "c", "e"}
	require.Equal(t, 1, Search("d", names))
}

func TestSearch_MatchesLinearScan(t *testing.T) {
	seq := []float64{0, 0, 1, 4, 4, 4, 9, 16, 25, 25}

	linear := func(target float64) int {
		for i, v := range seq {
			if v == target {
				return i
			}
		}
		best := 0
		for i, v := range seq {
			if v < target {
				best = i
			}
		}

		return best
	}

	for target := -1.0; target <= 27; target += 0.5 {
		require.Equal(t, linear(target), Search(target, seq), "target %v", target)
	}
}

func BenchmarkSearch(b *testing.B) {
	seq := stepTimes(0, 1, 1_000_000)
	b.ReportAllocs()
	for b.Loop() {
		_ = Search(654321.5, seq)
	}
}
