// Package encoding converts between packed fixed-width scalar buffers and
// float64 values.
//
// A buffer is a plain run of elements of one format.ScalarType in one byte
// order, with no header. ScalarDecoder reads such a buffer and ScalarEncoder
// writes one. Both implement the generic ColumnarDecoder and ColumnarEncoder
// interfaces.
//
// # Decoding Rules
//
//   - The element count is floor(len(buf) / typ.Size()); a trailing partial
//     element is dropped without error.
//   - Integers decode as two's-complement or unsigned values of their width.
//   - float32 and float64 decode per IEEE-754; float32 widens losslessly.
//
// Every supported type is represented exactly by float64, so Decode(Encode(x))
// returns x bit for bit.
//
// # Usage
//
//	values, err := encoding.Decode(buf, format.TypeInt16, endian.GetBigEndianEngine())
//
// Most callers should go through the payload package, which adds
// decompression and checksum verification on top of Decode.
package encoding
