package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/tswindow/endian"
	"github.com/arloliu/tswindow/errs"
	"github.com/arloliu/tswindow/format"
	"github.com/arloliu/tswindow/internal/pool"
)

// ScalarEncoder packs float64 values into a fixed-width scalar buffer.
//
// It is the inverse of ScalarDecoder: bytes written with a given type and byte
// order decode back to the same values with a decoder of that type and order.
//
// Values must be representable by the target type (see Representable). Writing
// a fractional, NaN or out-of-range value to an integer type produces an
// unspecified element; use Encode to validate before writing.
//
// Note: The ScalarEncoder is NOT thread-safe.
type ScalarEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	typ    format.ScalarType
	width  int
	count  int
}

var _ ColumnarEncoder[float64] = (*ScalarEncoder)(nil)

// NewScalarEncoder creates an encoder for the given scalar type and byte order.
//
// Returns errs.ErrUnsupportedType if typ is not a known scalar type.
func NewScalarEncoder(typ format.ScalarType, engine endian.EndianEngine) (*ScalarEncoder, error) {
	width := typ.Size()
	if width == 0 {
		return nil, fmt.Errorf("%w: tag 0x%x", errs.ErrUnsupportedType, uint8(typ))
	}
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	return &ScalarEncoder{
		buf:    pool.GetEncodeBuffer(),
		engine: engine,
		typ:    typ,
		width:  width,
	}, nil
}

// Write encodes a single value.
//
// Panics if Finish() has been called.
func (e *ScalarEncoder) Write(val float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	offset := e.buf.Len()
	e.buf.ExtendOrGrow(e.width)
	e.put(e.buf.Slice(offset, offset+e.width), val)
	e.count++
}

// WriteSlice encodes values with a single buffer growth.
//
// Panics if Finish() has been called.
func (e *ScalarEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if len(values) == 0 {
		return
	}

	start := e.buf.Len()
	e.buf.ExtendOrGrow(len(values) * e.width)
	for i, v := range values {
		offset := start + i*e.width
		e.put(e.buf.Slice(offset, offset+e.width), v)
	}
	e.count += len(values)
}

// Bytes returns the encoded bytes. The slice references the internal buffer.
//
// Panics if Finish() has been called.
func (e *ScalarEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded values.
func (e *ScalarEncoder) Len() int {
	return e.count
}

// Size returns the number of encoded bytes.
//
// Panics if Finish() has been called.
func (e *ScalarEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Reset discards all encoded values.
func (e *ScalarEncoder) Reset() {
	if e.buf != nil {
		e.buf.Reset()
	}
	e.count = 0
}

// Finish returns the buffer to the pool. The encoder must not be used afterwards.
func (e *ScalarEncoder) Finish() {
	if e.buf != nil {
		pool.PutEncodeBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

func (e *ScalarEncoder) put(dst []byte, val float64) {
	switch e.typ {
	case format.TypeInt8:
		dst[0] = byte(int8(val))
	case format.TypeUint8:
		dst[0] = uint8(val)
	case format.TypeInt16:
		e.engine.PutUint16(dst, uint16(int16(val)))
	case format.TypeUint16:
		e.engine.PutUint16(dst, uint16(val))
	case format.TypeInt32:
		e.engine.PutUint32(dst, uint32(int32(val)))
	case format.TypeUint32:
		e.engine.PutUint32(dst, uint32(val))
	case format.TypeFloat32:
		e.engine.PutUint32(dst, math.Float32bits(float32(val)))
	case format.TypeFloat64:
		e.engine.PutUint64(dst, math.Float64bits(val))
	default:
		panic(fmt.Sprintf("encode of unsupported scalar type 0x%x", uint8(e.typ)))
	}
}

// Representable reports whether v survives a round trip through typ unchanged.
//
// Integer types accept integral values within their range. Float32 accepts
// values that convert to float32 without rounding, plus NaN and infinities.
// Float64 accepts everything.
func Representable(typ format.ScalarType, v float64) bool {
	switch typ {
	case format.TypeInt8:
		return isIntegral(v) && v >= math.MinInt8 && v <= math.MaxInt8
	case format.TypeUint8:
		return isIntegral(v) && v >= 0 && v <= math.MaxUint8
	case format.TypeInt16:
		return isIntegral(v) && v >= math.MinInt16 && v <= math.MaxInt16
	case format.TypeUint16:
		return isIntegral(v) && v >= 0 && v <= math.MaxUint16
	case format.TypeInt32:
		return isIntegral(v) && v >= math.MinInt32 && v <= math.MaxInt32
	case format.TypeUint32:
		return isIntegral(v) && v >= 0 && v <= math.MaxUint32
	case format.TypeFloat32:
		return math.IsNaN(v) || float64(float32(v)) == v
	case format.TypeFloat64:
		return true
	default:
		return false
	}
}

func isIntegral(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v == math.Trunc(v)
}

// Encode packs values as typ in the given byte order. A nil engine means
// little-endian.
//
// Returns errs.ErrUnsupportedType for an unknown type and errs.ErrValueOutOfRange
// if any value is not representable by typ.
func Encode(values []float64, typ format.ScalarType, engine endian.EndianEngine) ([]byte, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: tag 0x%x", errs.ErrUnsupportedType, uint8(typ))
	}
	for i, v := range values {
		if !Representable(typ, v) {
			return nil, fmt.Errorf("%w: value %v at index %d for %s", errs.ErrValueOutOfRange, v, i, typ)
		}
	}

	enc, err := NewScalarEncoder(typ, engine)
	if err != nil {
		return nil, err
	}
	defer enc.Finish()

	enc.WriteSlice(values)
	out := make([]byte, enc.Size())
	copy(out, enc.Bytes())

	return out, nil
}
