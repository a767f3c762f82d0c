// Package compress provides the codecs that unwrap compressed sample payloads.
//
// Time and data buffers often travel compressed (files on disk, HTTP bodies).
// A payload records which codec produced it, and the payload package picks the
// matching Decompressor from this package before the bytes are decoded.
//
// # Supported Algorithms
//
//   - format.CompressionNone: bytes pass through unchanged
//   - format.CompressionZstd: klauspost/compress zstd, best ratio
//   - format.CompressionS2: klauspost/compress s2, fast with a good ratio
//   - format.CompressionLZ4: pierrec/lz4 block format, fastest decompression
//   - format.CompressionSnappy: golang/snappy block format, for producers that only speak snappy
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Decompress(payload)
//
// # Size Limit
//
// No codec decodes more than MaxDecodedSize bytes. Snappy and S2 check the
// length declared in the block header, zstd caps decoder memory, and LZ4 stops
// growing its output buffer at the limit. Exceeding it returns
// errs.ErrPayloadTooLarge.
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use. The zstd and
// lz4 codecs keep their encoder/decoder state in sync.Pools.
package compress
