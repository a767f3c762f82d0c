package compress

// NoOpCompressor is the codec for uncompressed payloads.
//
// It never copies: both directions return the input slice itself, so a
// decoded uncompressed payload aliases the bytes it was read from.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor returns the pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged. There is no size limit to enforce since
// nothing is allocated.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
