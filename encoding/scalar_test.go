package encoding

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/arloliu/tswindow/endian"
	"github.com/arloliu/tswindow/errs"
	"github.com/arloliu/tswindow/format"
	"github.com/stretchr/testify/require"
)

// representative values per type: zero, small positive/negative, extremes
var roundTripValues = map[format.ScalarType][]float64{
	format.TypeInt8:    {0, 1, -1, 42, math.MinInt8, math.MaxInt8},
	format.TypeUint8:   {0, 1, 128, math.MaxUint8},
	format.TypeInt16:   {0, 1, -1, -12345, math.MinInt16, math.MaxInt16},
	format.TypeUint16:  {0, 1, 40000, math.MaxUint16},
	format.TypeInt32:   {0, 1, -1, -123456789, math.MinInt32, math.MaxInt32},
	format.TypeUint32:  {0, 1, 3000000000, math.MaxUint32},
	format.TypeFloat32: {0, 1.5, -1.5, 1.5e9, math.MaxFloat32, -math.MaxFloat32, math.SmallestNonzeroFloat32, math.Inf(1), math.Inf(-1)},
	format.TypeFloat64: {0, math.Pi, -math.E, math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1), math.Inf(-1)},
}

var engines = map[string]endian.EndianEngine{
	"little": endian.GetLittleEndianEngine(),
	"big":    endian.GetBigEndianEngine(),
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, typ := range format.ScalarTypes {
		for name, engine := range engines {
			t.Run(typ.String()+"/"+name, func(t *testing.T) {
				values := roundTripValues[typ]

				buf, err := Encode(values, typ, engine)
				require.NoError(t, err)
				require.Len(t, buf, len(values)*typ.Size())

				decoded, err := Decode(buf, typ, engine)
				require.NoError(t, err)
				require.Len(t, decoded, len(values))
				for i := range values {
					require.Equal(t, math.Float64bits(values[i]), math.Float64bits(decoded[i]), "index %d", i)
				}
			})
		}
	}
}

// referenceEncode writes values with encoding/binary so the decoder is checked
// against an independent encoder.
func referenceEncode(t *testing.T, typ format.ScalarType, order binary.ByteOrder, values []float64) []byte {
	t.Helper()

	var data any
	switch typ {
	case format.TypeInt8:
		s := make([]int8, len(values))
		for i, v := range values {
			s[i] = int8(v)
		}
		data = s
	case format.TypeUint8:
		s := make([]uint8, len(values))
		for i, v := range values {
			s[i] = uint8(v)
		}
		data = s
	case format.TypeInt16:
		s := make([]int16, len(values))
		for i, v := range values {
			s[i] = int16(v)
		}
		data = s
	case format.TypeUint16:
		s := make([]uint16, len(values))
		for i, v := range values {
			s[i] = uint16(v)
		}
		data = s
	case format.TypeInt32:
		s := make([]int32, len(values))
		for i, v := range values {
			s[i] = int32(v)
		}
		data = s
	case format.TypeUint32:
		s := make([]uint32, len(values))
		for i, v := range values {
			s[i] = uint32(v)
		}
		data = s
	case format.TypeFloat32:
		s := make([]float32, len(values))
		for i, v := range values {
			s[i] = float32(v)
		}
		data = s
	case format.TypeFloat64:
		data = values
	}

	var out bytes.Buffer
	require.NoError(t, binary.Write(&out, order, data))

	return out.Bytes()
}

func TestDecode_MatchesEncodingBinary(t *testing.T) {
	for _, typ := range format.ScalarTypes {
		for name, engine := range engines {
			t.Run(typ.String()+"/"+name, func(t *testing.T) {
				values := roundTripValues[typ]
				buf := referenceEncode(t, typ, engine, values)

				decoded, err := Decode(buf, typ, engine)
				require.NoError(t, err)
				require.Equal(t, values, decoded)

				ours, err := Encode(values, typ, engine)
				require.NoError(t, err)
				require.Equal(t, buf, ours)
			})
		}
	}
}

func TestDecode_KnownBytes(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04}

	tests := []struct {
		typ    format.ScalarType
		engine endian.EndianEngine
		want   []float64
	}{
		{format.TypeUint8, endian.GetLittleEndianEngine(), []float64{1, 2, 3, 4}},
		{format.TypeUint16, endian.GetLittleEndianEngine(), []float64{0x0201, 0x0403}},
		{format.TypeUint16, endian.GetBigEndianEngine(), []float64{0x0102, 0x0304}},
		{format.TypeUint32, endian.GetLittleEndianEngine(), []float64{0x04030201}},
		{format.TypeUint32, endian.GetBigEndianEngine(), []float64{0x01020304}},
	}

	for _, tt := range tests {
		got, err := Decode(buf, tt.typ, tt.engine)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}

	signed, err := Decode([]byte{0xFF, 0xFE, 0x80}, format.TypeInt8, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{-1, -2, -128}, signed)

	neg16, err := Decode([]byte{0xFF, 0xFF}, format.TypeInt16, endian.GetBigEndianEngine())
	require.NoError(t, err)
	require.Equal(t, []float64{-1}, neg16)
}

func TestDecode_TruncatesPartialElement(t *testing.T) {
	buf := []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0xAA, 0xBB, 0xCC}

	got, err := Decode(buf, format.TypeUint32, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, got)

	got, err = Decode([]byte{0x01, 0x02, 0x03}, format.TypeFloat64, nil)
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = Decode(nil, format.TypeInt16, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDecode_UnsupportedType(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3, 4}, format.ScalarType(0), nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedType)

	_, err = NewScalarDecoder(format.ScalarType(0x99), nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedType)

	_, err = NewScalarEncoder(format.ScalarType(0x99), nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedType)

	_, err = Encode([]float64{1}, format.ScalarType(0x99), nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedType)
}

func TestDecode_WrongByteOrderSwapsElements(t *testing.T) {
	values := []float64{1, 256, 65536, 16777216}

	le, err := Encode(values, format.TypeUint32, endian.GetLittleEndianEngine())
	require.NoError(t, err)
	be, err := Encode(values, format.TypeUint32, endian.GetBigEndianEngine())
	require.NoError(t, err)
	require.NotEqual(t, le, be)

	// reading with the wrong byte order swaps every element
	swapped, err := Decode(le, format.TypeUint32, endian.GetBigEndianEngine())
	require.NoError(t, err)
	require.Equal(t, []float64{16777216, 65536, 256, 1}, swapped)
}

func TestScalarDecoder_At(t *testing.T) {
	buf, err := Encode([]float64{10, 20, 30}, format.TypeInt16, nil)
	require.NoError(t, err)

	dec, err := NewScalarDecoder(format.TypeInt16, nil)
	require.NoError(t, err)
	require.Equal(t, format.TypeInt16, dec.Type())
	require.Equal(t, 3, dec.Count(buf))

	v, ok := dec.At(buf, 1)
	require.True(t, ok)
	require.Equal(t, 20.0, v)

	_, ok = dec.At(buf, 3)
	require.False(t, ok)
	_, ok = dec.At(buf, -1)
	require.False(t, ok)
}

func TestScalarDecoder_All(t *testing.T) {
	buf, err := Encode([]float64{1.5, 2.5, 3.5, 4.5}, format.TypeFloat32, nil)
	require.NoError(t, err)

	dec, err := NewScalarDecoder(format.TypeFloat32, nil)
	require.NoError(t, err)

	var all []float64
	for v := range dec.All(buf) {
		all = append(all, v)
	}
	require.Equal(t, []float64{1.5, 2.5, 3.5, 4.5}, all)

	var firstTwo []float64
	for v := range dec.All(buf) {
		firstTwo = append(firstTwo, v)
		if len(firstTwo) == 2 {
			break
		}
	}
	require.Equal(t, []float64{1.5, 2.5}, firstTwo)
}

func TestScalarDecoder_DecodeInto(t *testing.T) {
	buf, err := Encode([]float64{7, 8}, format.TypeUint8, nil)
	require.NoError(t, err)

	dec, err := NewScalarDecoder(format.TypeUint8, nil)
	require.NoError(t, err)

	dst := []float64{1, 2}
	dst = dec.DecodeInto(dst, buf)
	require.Equal(t, []float64{1, 2, 7, 8}, dst)
}

func TestScalarEncoder_Lifecycle(t *testing.T) {
	enc, err := NewScalarEncoder(format.TypeUint16, endian.GetBigEndianEngine())
	require.NoError(t, err)

	enc.Write(0x0102)
	enc.WriteSlice([]float64{0x0304, 0x0506})
	enc.WriteSlice(nil)
	require.Equal(t, 3, enc.Len())
	require.Equal(t, 6, enc.Size())
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}, enc.Bytes())

	enc.Reset()
	require.Equal(t, 0, enc.Len())
	require.Equal(t, 0, enc.Size())

	enc.Finish()
	require.Panics(t, func() { enc.Write(1) })
	require.Panics(t, func() { enc.WriteSlice([]float64{1}) })
	require.Panics(t, func() { enc.Bytes() })
	require.Panics(t, func() { enc.Size() })
	require.NotPanics(t, func() { enc.Finish() })
}

func TestEncode_RejectsUnrepresentable(t *testing.T) {
	tests := []struct {
		typ   format.ScalarType
		value float64
	}{
		{format.TypeInt8, 128},
		{format.TypeInt8, -129},
		{format.TypeUint8, -1},
		{format.TypeUint8, 256},
		{format.TypeInt16, 1.5},
		{format.TypeUint16, math.NaN()},
		{format.TypeInt32, math.Inf(1)},
		{format.TypeUint32, math.MaxUint32 + 1},
		{format.TypeFloat32, 0.1},
	}

	for _, tt := range tests {
		_, err := Encode([]float64{0, tt.value}, tt.typ, nil)
		require.ErrorIs(t, err, errs.ErrValueOutOfRange, "%s %v", tt.typ, tt.value)
	}
}

func TestRepresentable(t *testing.T) {
	require.True(t, Representable(format.TypeFloat32, math.NaN()))
	require.True(t, Representable(format.TypeFloat32, 0.5))
	require.True(t, Representable(format.TypeFloat64, 0.1))
	require.True(t, Representable(format.TypeUint32, math.MaxUint32))
	require.False(t, Representable(format.ScalarType(0), 0))
}

func TestEncode_Empty(t *testing.T) {
	buf, err := Encode(nil, format.TypeFloat64, nil)
	require.NoError(t, err)
	require.Empty(t, buf)
}
