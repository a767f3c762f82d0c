package hash

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	require.Equal(t, xxhash.Sum64(data), Checksum(data))
	require.Equal(t, Checksum(data), Checksum([]byte{0x01, 0x02, 0x03, 0x04}))
	require.NotEqual(t, Checksum(data), Checksum([]byte{0x04, 0x03, 0x02, 0x01}))
}

func TestFingerprint(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := Fingerprint([]float64{0, 10, 20}, []float64{1, 2, 3})
		b := Fingerprint([]float64{0, 10, 20}, []float64{1, 2, 3})
		require.Equal(t, a, b)
	})

	t.Run("value sensitive", func(t *testing.T) {
		a := Fingerprint([]float64{0, 10, 20}, []float64{1, 2, 3})
		b := Fingerprint([]float64{0, 10, 20}, []float64{1, 2, 4})
		require.NotEqual(t, a, b)
	})

	t.Run("column boundary sensitive", func(t *testing.T) {
		a := Fingerprint([]float64{1, 2}, []float64{3})
		b := Fingerprint([]float64{1}, []float64{2, 3})
		require.NotEqual(t, a, b)
	})

	t.Run("empty columns", func(t *testing.T) {
		require.Equal(t, Fingerprint(nil, nil), Fingerprint([]float64{}, []float64{}))
		require.NotEqual(t, Fingerprint(nil), Fingerprint(nil, nil))
	})
}
