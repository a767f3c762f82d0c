// Package payload pairs a raw sample buffer with the metadata needed to decode it.
//
// A Payload is what a loader (file reader, HTTP fetch) hands to tswindow: the
// bytes, the scalar type of each element, the byte order, an optional
// compression codec and an optional xxHash64 checksum of the uncompressed bytes.
//
// Decoding a payload runs three steps:
//
//  1. Decompress with the codec named by Compression
//  2. Verify Checksum when it is non-zero
//  3. Decode the packed scalars with encoding.ScalarDecoder
//
// # Example
//
//	p := payload.Payload{
//	    Data:        body,
//	    Type:        format.TypeFloat32,
//	    Compression: format.CompressionZstd,
//	}
//	values, err := p.Decode()
package payload

import (
	"fmt"

	"github.com/arloliu/tswindow/compress"
	"github.com/arloliu/tswindow/encoding"
	"github.com/arloliu/tswindow/endian"
	"github.com/arloliu/tswindow/errs"
	"github.com/arloliu/tswindow/format"
	"github.com/arloliu/tswindow/internal/hash"
	"github.com/arloliu/tswindow/internal/options"
)

// Payload is a packed scalar buffer and its decoding metadata.
type Payload struct {
	// Data holds the (possibly compressed) bytes.
	Data []byte
	// Type is the scalar type of every element. Zero means format.DefaultScalarType.
	Type format.ScalarType
	// Engine is the byte order of the elements. Nil means little-endian.
	Engine endian.EndianEngine
	// Compression names the codec Data was compressed with. Zero means none.
	Compression format.CompressionType
	// Checksum is the xxHash64 of the uncompressed bytes. Zero disables verification.
	Checksum uint64
}

func (p Payload) scalarType() format.ScalarType {
	if p.Type == 0 {
		return format.DefaultScalarType
	}

	return p.Type
}

func (p Payload) compression() format.CompressionType {
	if p.Compression == 0 {
		return format.CompressionNone
	}

	return p.Compression
}

// Raw returns the uncompressed, verified bytes of the payload.
//
// Returns:
//   - []byte: Packed scalars; shares memory with Data when uncompressed
//   - error: errs.ErrUnsupportedCompression, a decompression error, or
//     errs.ErrChecksumMismatch
func (p Payload) Raw() ([]byte, error) {
	codec, err := compress.GetCodec(p.compression())
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(p.Data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s payload: %w", p.compression(), err)
	}

	if p.Checksum != 0 {
		if got := hash.Checksum(raw); got != p.Checksum {
			return nil, fmt.Errorf("%w: want 0x%016x, got 0x%016x", errs.ErrChecksumMismatch, p.Checksum, got)
		}
	}

	return raw, nil
}

// Decode decompresses, verifies and decodes the payload.
//
// Trailing bytes that do not form a whole element are dropped.
func (p Payload) Decode() ([]float64, error) {
	raw, err := p.Raw()
	if err != nil {
		return nil, err
	}

	return encoding.Decode(raw, p.scalarType(), p.Engine)
}

// Config controls how Encode builds a payload.
type Config struct {
	engine      endian.EndianEngine
	compression format.CompressionType
	checksum    bool
}

// Option configures Encode.
type Option = options.Option[*Config]

// WithLittleEndian writes elements least significant byte first (the default).
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian writes elements most significant byte first.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithEngine sets the byte order explicitly.
func WithEngine(engine endian.EndianEngine) Option {
	return options.New(func(c *Config) error {
		if engine == nil {
			return fmt.Errorf("nil endian engine")
		}
		c.engine = engine

		return nil
	})
}

// WithCompression compresses the packed bytes with the given codec.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if _, err := compress.GetCodec(comp); err != nil {
			return err
		}
		c.compression = comp

		return nil
	})
}

// WithChecksum records the xxHash64 of the uncompressed bytes.
func WithChecksum(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.checksum = enabled
	})
}

// Encode packs values into a Payload of the given scalar type.
//
// Returns errs.ErrUnsupportedType, errs.ErrValueOutOfRange,
// errs.ErrUnsupportedCompression or an option error.
func Encode(values []float64, typ format.ScalarType, opts ...Option) (Payload, error) {
	cfg := &Config{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionNone,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return Payload{}, err
	}

	raw, err := encoding.Encode(values, typ, cfg.engine)
	if err != nil {
		return Payload{}, err
	}

	p := Payload{
		Type:        typ,
		Engine:      cfg.engine,
		Compression: cfg.compression,
	}
	if cfg.checksum {
		p.Checksum = hash.Checksum(raw)
	}

	data, _, err := compress.Compress(cfg.compression, raw)
	if err != nil {
		return Payload{}, err
	}
	p.Data = data

	return p, nil
}
