package encoding

import "iter"

// ColumnarEncoder appends values of type T to an internal byte buffer.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded byte slice.
	// The returned slice is valid until the next call to Write, WriteSlice, Reset or Finish.
	// The caller should not modify the returned slice.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the number of encoded bytes.
	Size() int

	// Reset discards the encoded values but keeps the buffer for reuse.
	Reset()

	// Finish returns buffer resources to the pool.
	//
	// After calling Finish, the encoder is no longer usable and any further call
	// to Write, WriteSlice, Bytes or Size panics. Use defer to ensure it is called:
	//
	//	encoder := NewScalarEncoder(format.TypeUint32, engine)
	//	defer encoder.Finish()
	Finish()

	// Write encodes a single value.
	Write(data T)

	// WriteSlice encodes a slice of values.
	WriteSlice(values []T)
}

// ColumnarDecoder reads values of type T from a packed byte slice.
type ColumnarDecoder[T comparable] interface {
	// Count returns the number of complete values contained in data.
	Count(data []byte) int

	// All returns an iterator that yields every complete value in data.
	All(data []byte) iter.Seq[T]

	// At returns the value at index, or false if index is out of range.
	At(data []byte, index int) (T, bool)
}
