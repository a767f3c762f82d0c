// Package hash computes xxHash64 checksums and series fingerprints.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Checksum computes the xxHash64 of the given bytes.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Fingerprint hashes the bit patterns of every column in order.
//
// Column lengths are mixed in so that moving a value from the end of one
// column to the start of the next changes the result.
func Fingerprint(columns ...[]float64) uint64 {
	d := xxhash.New()

	var buf [8]byte
	for _, col := range columns {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(col)))
		_, _ = d.Write(buf[:])

		for _, v := range col {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}

	return d.Sum64()
}
