// Package endian provides byte order selection for decoding packed sample buffers.
//
// Buffers handed to tswindow carry a byte order flag next to their scalar type.
// This package turns that flag (or its textual form in configuration files) into
// an EndianEngine, which combines encoding/binary's ByteOrder and AppendByteOrder
// so the same value serves both the decoders and the encoders.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine() // default for all buffers
//	values, err := encoding.Decode(buf, format.TypeFloat32, engine)
//
// Selecting from a flag:
//
//	engine := endian.Engine(littleEndian)
//
// # Thread Safety
//
// All functions are safe for concurrent use. The returned engines are
// immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Engine returns the little-endian engine when littleEndian is true and the
// big-endian engine otherwise.
func Engine(littleEndian bool) EndianEngine {
	if littleEndian {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// IsLittleEndian reports whether engine encodes least significant byte first.
func IsLittleEndian(engine EndianEngine) bool {
	return engine == binary.LittleEndian
}

// ParseByteOrder resolves a configuration value to an engine.
//
// Accepted values are "little", "le", "big", "be" (case-insensitive);
// an empty value means little-endian.
func ParseByteOrder(name string) (EndianEngine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "little", "le", "little_endian":
		return binary.LittleEndian, nil
	case "big", "be", "big_endian":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("invalid byte order: %q", name)
	}
}

// Name returns "little" or "big" for the given engine.
func Name(engine EndianEngine) string {
	if IsLittleEndian(engine) {
		return "little"
	}

	return "big"
}
