package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/tswindow/errs"
)

type (
	ScalarType      uint8
	CompressionType uint8
)

const (
	TypeInt8    ScalarType = 0x1 // TypeInt8 represents a signed 8-bit integer.
	TypeUint8   ScalarType = 0x2 // TypeUint8 represents an unsigned 8-bit integer.
	TypeInt16   ScalarType = 0x3 // TypeInt16 represents a signed 16-bit integer.
	TypeUint16  ScalarType = 0x4 // TypeUint16 represents an unsigned 16-bit integer.
	TypeInt32   ScalarType = 0x5 // TypeInt32 represents a signed 32-bit integer.
	TypeUint32  ScalarType = 0x6 // TypeUint32 represents an unsigned 32-bit integer.
	TypeFloat32 ScalarType = 0x7 // TypeFloat32 represents an IEEE-754 single precision float.
	TypeFloat64 ScalarType = 0x8 // TypeFloat64 represents an IEEE-754 double precision float.

	CompressionNone   CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd   CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2     CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4    CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionSnappy CompressionType = 0x5 // CompressionSnappy represents Snappy block compression.
)

// DefaultScalarType is used when a buffer carries no explicit type.
const DefaultScalarType = TypeUint32

// ScalarTypes lists every supported scalar type in tag order.
var ScalarTypes = []ScalarType{
	TypeInt8, TypeUint8, TypeInt16, TypeUint16,
	TypeInt32, TypeUint32, TypeFloat32, TypeFloat64,
}

// Size returns the encoded width in bytes, or 0 for an unknown tag.
func (s ScalarType) Size() int {
	switch s {
	case TypeInt8, TypeUint8:
		return 1
	case TypeInt16, TypeUint16:
		return 2
	case TypeInt32, TypeUint32, TypeFloat32:
		return 4
	case TypeFloat64:
		return 8
	default:
		return 0
	}
}

// Valid reports whether s is one of the supported scalar types.
func (s ScalarType) Valid() bool {
	return s.Size() != 0
}

// IsFloat reports whether s is an IEEE-754 type.
func (s ScalarType) IsFloat() bool {
	return s == TypeFloat32 || s == TypeFloat64
}

// IsSigned reports whether s can represent negative values.
func (s ScalarType) IsSigned() bool {
	switch s {
	case TypeInt8, TypeInt16, TypeInt32, TypeFloat32, TypeFloat64:
		return true
	default:
		return false
	}
}

// String returns the NumPy style name of the type.
func (s ScalarType) String() string {
	switch s {
	case TypeInt8:
		return "int8"
	case TypeUint8:
		return "uint8"
	case TypeInt16:
		return "int16"
	case TypeUint16:
		return "uint16"
	case TypeInt32:
		return "int32"
	case TypeUint32:
		return "uint32"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	default:
		return "Unknown"
	}
}

// ParseScalarType resolves a type name to its ScalarType.
//
// Both C names (int8_t, uint32_t, float, double) and NumPy names
// (int8, uint32, float32, float64) are accepted, case-insensitively.
// An empty name yields DefaultScalarType.
//
// Returns errs.ErrUnsupportedType for any other name.
func ParseScalarType(name string) (ScalarType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultScalarType, nil
	case "int8", "int8_t":
		return TypeInt8, nil
	case "uint8", "uint8_t":
		return TypeUint8, nil
	case "int16", "int16_t":
		return TypeInt16, nil
	case "uint16", "uint16_t":
		return TypeUint16, nil
	case "int32", "int32_t":
		return TypeInt32, nil
	case "uint32", "uint32_t":
		return TypeUint32, nil
	case "float32", "float":
		return TypeFloat32, nil
	case "float64", "double":
		return TypeFloat64, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedType, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s ScalarType) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: tag 0x%x", errs.ErrUnsupportedType, uint8(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ScalarType) UnmarshalText(text []byte) error {
	parsed, err := ParseScalarType(string(text))
	if err != nil {
		return err
	}
	*s = parsed

	return nil
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionSnappy:
		return "Snappy"
	default:
		return "Unknown"
	}
}

// ParseCompressionType resolves a compression name. An empty name means none.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedCompression, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c CompressionType) MarshalText() ([]byte, error) {
	if c.String() == "Unknown" {
		return nil, fmt.Errorf("%w: tag 0x%x", errs.ErrUnsupportedCompression, uint8(c))
	}

	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CompressionType) UnmarshalText(text []byte) error {
	parsed, err := ParseCompressionType(string(text))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}
