// Package tswindow decodes packed binary time-value buffers and serves
// zoom-level windows over them.
//
// A chart that can show an hour or a year of data needs a bounded number of
// points at every zoom level. tswindow takes a time index buffer and a data
// buffer, decodes them into a series, and reduces any requested window to
// about maxPoints time-width buckets (mean, std, min, max, count).
//
// # Core Features
//
//   - Decoding of int8/uint8/int16/uint16/int32/uint32/float32/float64 buffers
//     in either byte order, with C and NumPy type names
//   - Optional payload compression (Zstd, S2, LZ4, Snappy) and xxHash64 checksums
//   - Predecessor binary search and "as of" point lookup
//   - Variable-width bucket aggregation with optional t-digest quantiles
//
// # Basic Usage
//
//	s, err := tswindow.NewSeriesFromBuffers(timeBuf, dataBuf, format.TypeFloat32)
//	if err != nil {
//	    return err
//	}
//
//	row, _ := s.Asof(80)
//	buckets, _ := s.GetValues(series.WithRange(0, 1000), series.WithMaxPoints(500))
//
// # Package Structure
//
// This package provides top-level wrappers around the encoding, payload and
// series packages for the common cases. Use those packages directly for
// finer control.
package tswindow

import (
	"fmt"

	"github.com/arloliu/tswindow/encoding"
	"github.com/arloliu/tswindow/endian"
	"github.com/arloliu/tswindow/format"
	"github.com/arloliu/tswindow/payload"
	"github.com/arloliu/tswindow/series"
)

// Decode interprets buf as packed scalars of type typ.
//
// Trailing bytes that do not form a whole element are dropped.
//
// Parameters:
//   - buf: Raw bytes
//   - typ: Scalar type of each element
//   - littleEndian: Byte order of each element
//
// Returns:
//   - []float64: Decoded values, exact for every supported type
//   - error: errs.ErrUnsupportedType for an unknown type
func Decode(buf []byte, typ format.ScalarType, littleEndian bool) ([]float64, error) {
	return encoding.Decode(buf, typ, endian.Engine(littleEndian))
}

// DecodeNamed is like Decode but takes a type name such as "uint32_t",
// "float32" or "double". An empty name means uint32.
func DecodeNamed(buf []byte, typeName string, littleEndian bool) ([]float64, error) {
	typ, err := format.ParseScalarType(typeName)
	if err != nil {
		return nil, err
	}

	return Decode(buf, typ, littleEndian)
}

// NewSeries builds a series from decoded time and data values.
//
// This is a shortcut for series.New.
func NewSeries(time, data []float64, opts ...series.Option) (*series.Series, error) {
	return series.New(time, data, opts...)
}

// NewSeriesFromBuffers decodes a little-endian uint32 time buffer and a
// little-endian data buffer of type dataType, then builds a series.
//
// Use NewSeriesFromPayloads for other time types, byte orders or compressed
// buffers.
func NewSeriesFromBuffers(timeBuf, dataBuf []byte, dataType format.ScalarType, opts ...series.Option) (*series.Series, error) {
	time, err := Decode(timeBuf, format.DefaultScalarType, true)
	if err != nil {
		return nil, fmt.Errorf("decode time buffer: %w", err)
	}

	data, err := Decode(dataBuf, dataType, true)
	if err != nil {
		return nil, fmt.Errorf("decode data buffer: %w", err)
	}

	return series.New(time, data, opts...)
}

// NewSeriesFromPayloads decodes both payloads and builds a series.
//
// This is a shortcut for series.FromPayloads.
func NewSeriesFromPayloads(timePayload, dataPayload payload.Payload, opts ...series.Option) (*series.Series, error) {
	return series.FromPayloads(timePayload, dataPayload, opts...)
}
