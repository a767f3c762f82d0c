package encoding

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/tswindow/endian"
	"github.com/arloliu/tswindow/errs"
	"github.com/arloliu/tswindow/format"
)

// ScalarDecoder decodes a packed array of fixed-width scalars into float64 values.
//
// Every supported scalar type is exactly representable as float64: integers up to
// 32 bits convert without rounding and float32 widens losslessly, so the decoded
// values compare equal to the originals.
//
// The element count of a buffer is floor(len(data) / width). A trailing partial
// element is ignored without error.
type ScalarDecoder struct {
	engine endian.EndianEngine
	typ    format.ScalarType
	width  int
}

var _ ColumnarDecoder[float64] = ScalarDecoder{}

// NewScalarDecoder creates a decoder for the given scalar type and byte order.
//
// Parameters:
//   - typ: Scalar type of every element in the buffer
//   - engine: Byte order the buffer was written with
//
// Returns:
//   - ScalarDecoder: Stateless decoder, safe to reuse and share
//   - error: errs.ErrUnsupportedType if typ is not a known scalar type
func NewScalarDecoder(typ format.ScalarType, engine endian.EndianEngine) (ScalarDecoder, error) {
	width := typ.Size()
	if width == 0 {
		return ScalarDecoder{}, fmt.Errorf("%w: tag 0x%x", errs.ErrUnsupportedType, uint8(typ))
	}
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	return ScalarDecoder{engine: engine, typ: typ, width: width}, nil
}

// Type returns the scalar type this decoder reads.
func (d ScalarDecoder) Type() format.ScalarType {
	return d.typ
}

// Count returns the number of complete elements in data.
func (d ScalarDecoder) Count(data []byte) int {
	if d.width == 0 {
		return 0
	}

	return len(data) / d.width
}

// All returns an iterator over every complete element in data.
func (d ScalarDecoder) All(data []byte) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		n := d.Count(data)
		for i := range n {
			if !yield(d.decodeAt(data, i*d.width)) {
				return
			}
		}
	}
}

// At returns the element at index, or false if it lies outside the buffer.
func (d ScalarDecoder) At(data []byte, index int) (float64, bool) {
	if index < 0 || index >= d.Count(data) {
		return 0, false
	}

	return d.decodeAt(data, index*d.width), true
}

// DecodeInto appends every complete element of data to dst and returns the
// extended slice.
func (d ScalarDecoder) DecodeInto(dst []float64, data []byte) []float64 {
	n := d.Count(data)
	if cap(dst)-len(dst) < n {
		grown := make([]float64, len(dst), len(dst)+n)
		copy(grown, dst)
		dst = grown
	}

	for i := range n {
		dst = append(dst, d.decodeAt(data, i*d.width))
	}

	return dst
}

func (d ScalarDecoder) decodeAt(data []byte, offset int) float64 {
	switch d.typ {
	case format.TypeInt8:
		return float64(int8(data[offset]))
	case format.TypeUint8:
		return float64(data[offset])
	case format.TypeInt16:
		return float64(int16(d.engine.Uint16(data[offset:])))
	case format.TypeUint16:
		return float64(d.engine.Uint16(data[offset:]))
	case format.TypeInt32:
		return float64(int32(d.engine.Uint32(data[offset:])))
	case format.TypeUint32:
		return float64(d.engine.Uint32(data[offset:]))
	case format.TypeFloat32:
		return float64(math.Float32frombits(d.engine.Uint32(data[offset:])))
	case format.TypeFloat64:
		return math.Float64frombits(d.engine.Uint64(data[offset:]))
	default:
		// unreachable: NewScalarDecoder rejects unknown tags
		panic(fmt.Sprintf("decode of unsupported scalar type 0x%x", uint8(d.typ)))
	}
}

// Decode interprets buf as a packed array of typ in the given byte order.
//
// A nil engine means little-endian. Trailing bytes that do not form a whole
// element are dropped.
//
// Returns errs.ErrUnsupportedType if typ is not a known scalar type.
func Decode(buf []byte, typ format.ScalarType, engine endian.EndianEngine) ([]float64, error) {
	dec, err := NewScalarDecoder(typ, engine)
	if err != nil {
		return nil, err
	}

	return dec.DecodeInto(make([]float64, 0, dec.Count(buf)), buf), nil
}
