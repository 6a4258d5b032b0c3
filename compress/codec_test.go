package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/intlist/format"
)

func testPayload(t *testing.T) []byte {
	t.Helper()

	// Repetitive word-aligned payload resembling a packed low-bit array.
	rng := rand.New(rand.NewSource(99))
	payload := make([]byte, 0, 8192)
	word := make([]byte, 8)
	for i := 0; i < 1024; i++ {
		if i%4 == 0 {
			rng.Read(word)
		}
		payload = append(payload, word...)
	}

	return payload
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := testPayload(t)

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, restored))
		})
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestCodecs_DecompressCorrupted(t *testing.T) {
	payload := testPayload(t)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			corrupted := append([]byte(nil), compressed...)
			for i := range corrupted {
				corrupted[i] ^= 0xA5
			}
			_, err = codec.Decompress(corrupted)
			require.Error(t, err)
		})
	}
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0xF))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported compression type")
}
