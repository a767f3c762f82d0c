package payload

import (
	"encoding/binary"
	"testing"

	"github.com/arloliu/tswindow/endian"
	"github.com/arloliu/tswindow/errs"
	"github.com/arloliu/tswindow/format"
	"github.com/arloliu/tswindow/internal/hash"
	"github.com/stretchr/testify/require"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
	format.CompressionSnappy,
}

func TestEncodeDecode_AllCompressions(t *testing.T) {
	values := make([]float64, 2000)
	for i := range values {
		values[i] = float64(i * 10)
	}

	for _, comp := range allCompressions {
		for _, big := range []bool{false, true} {
			name := comp.String() + "/little"
			order := WithLittleEndian()
			if big {
				name = comp.String() + "/big"
				order = WithBigEndian()
			}

			t.Run(name, func(t *testing.T) {
				p, err := Encode(values, format.TypeUint32, WithCompression(comp), order, WithChecksum(true))
				require.NoError(t, err)
				require.Equal(t, comp, p.Compression)
				require.Equal(t, format.TypeUint32, p.Type)
				require.NotZero(t, p.Checksum)
				require.Equal(t, !big, endian.IsLittleEndian(p.Engine))

				got, err := p.Decode()
				require.NoError(t, err)
				require.Equal(t, values, got)
			})
		}
	}
}

func TestPayload_Defaults(t *testing.T) {
	// zero Type and Compression mean uint32 and none; nil Engine means little-endian
	raw := binary.LittleEndian.AppendUint32(nil, 7)
	raw = binary.LittleEndian.AppendUint32(raw, 9)

	got, err := Payload{Data: raw}.Decode()
	require.NoError(t, err)
	require.Equal(t, []float64{7, 9}, got)
}

func TestPayload_ChecksumMismatch(t *testing.T) {
	p, err := Encode([]float64{1, 2, 3}, format.TypeFloat64, WithChecksum(true))
	require.NoError(t, err)

	p.Data[0] ^= 0xFF
	_, err = p.Decode()
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestPayload_ChecksumCoversUncompressedBytes(t *testing.T) {
	p, err := Encode([]float64{1, 2, 3}, format.TypeInt16, WithCompression(format.CompressionS2), WithChecksum(true))
	require.NoError(t, err)

	raw, err := p.Raw()
	require.NoError(t, err)
	require.Len(t, raw, 6)
	require.Equal(t, hash.Checksum(raw), p.Checksum)
}

func TestPayload_NoChecksumByDefault(t *testing.T) {
	p, err := Encode([]float64{1}, format.TypeUint8)
	require.NoError(t, err)
	require.Zero(t, p.Checksum)
	require.Equal(t, format.CompressionNone, p.Compression)
}

func TestPayload_Errors(t *testing.T) {
	t.Run("unsupported compression", func(t *testing.T) {
		_, err := Payload{Data: []byte{1, 2, 3, 4}, Compression: format.CompressionType(0x55)}.Decode()
		require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

		_, err = Encode([]float64{1}, format.TypeUint8, WithCompression(format.CompressionType(0x55)))
		require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := Payload{Data: []byte{1, 2, 3, 4}, Type: format.ScalarType(0x55)}.Decode()
		require.ErrorIs(t, err, errs.ErrUnsupportedType)

		_, err = Encode([]float64{1}, format.ScalarType(0x55))
		require.ErrorIs(t, err, errs.ErrUnsupportedType)
	})

	t.Run("corrupt compressed data", func(t *testing.T) {
		_, err := Payload{Data: []byte("not zstd"), Compression: format.CompressionZstd}.Decode()
		require.Error(t, err)
	})

	t.Run("value out of range", func(t *testing.T) {
		_, err := Encode([]float64{300}, format.TypeUint8)
		require.ErrorIs(t, err, errs.ErrValueOutOfRange)
	})

	t.Run("nil engine option", func(t *testing.T) {
		_, err := Encode([]float64{1}, format.TypeUint8, WithEngine(nil))
		require.Error(t, err)
	})
}

func TestPayload_TruncatesPartialElement(t *testing.T) {
	p, err := Encode([]float64{1, 2}, format.TypeFloat32)
	require.NoError(t, err)
	p.Data = append(p.Data, 0xAB, 0xCD)

	got, err := p.Decode()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, got)
}
