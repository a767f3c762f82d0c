// Package errs defines the sentinel errors returned by tswindow packages.
//
// Callers should match them with errors.Is, since most call sites wrap
// them with additional context.
package errs

import "errors"

var (
	// ErrUnsupportedType is returned when a scalar type tag or name is not recognized.
	ErrUnsupportedType = errors.New("unsupported scalar type")
	// ErrUnsupportedCompression is returned when a compression tag or name is not recognized.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
	// ErrValueOutOfRange is returned when a value cannot be represented exactly by the target scalar type.
	ErrValueOutOfRange = errors.New("value out of range for scalar type")
	// ErrChecksumMismatch is returned when a payload does not match its recorded checksum.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")
	// ErrPayloadTooLarge is returned when a compressed payload decodes past compress.MaxDecodedSize.
	ErrPayloadTooLarge = errors.New("decoded payload exceeds size limit")

	// ErrEmptySeries is returned by point lookups on a series with no samples.
	ErrEmptySeries = errors.New("series has no samples")
	// ErrInvalidMaxPoints is returned when a window query asks for zero or fewer buckets.
	ErrInvalidMaxPoints = errors.New("max points must be positive")
	// ErrInvalidWindow is returned when the low bound of a window is after the high bound.
	ErrInvalidWindow = errors.New("low time is after high time")
	// ErrInvalidQuantile is returned when a requested quantile is outside [0, 1].
	ErrInvalidQuantile = errors.New("quantile must be within [0, 1]")
)
