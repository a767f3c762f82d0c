package compress

import (
	"fmt"

	"github.com/golang/snappy"

	"github.com/arloliu/tswindow/errs"
)

// SnappyCompressor uses the snappy block format.
//
// The block header stores the decoded length, so Decompress validates it and
// allocates the output exactly once.
type SnappyCompressor struct{}

var _ Codec = (*SnappyCompressor)(nil)

// NewSnappyCompressor creates a new Snappy compressor.
func NewSnappyCompressor() SnappyCompressor {
	return SnappyCompressor{}
}

// Compress encodes data as a single snappy block.
func (c SnappyCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return snappy.Encode(nil, data), nil
}

// Decompress decodes a snappy block, rejecting blocks that declare more than
// MaxDecodedSize bytes.
func (c SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompression failed: %w", err)
	}
	if n > MaxDecodedSize {
		return nil, fmt.Errorf("%w: snappy block declares %d bytes", errs.ErrPayloadTooLarge, n)
	}

	out, err := snappy.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompression failed: %w", err)
	}

	return out, nil
}
