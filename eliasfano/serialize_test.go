package eliasfano

import (
	"bytes"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/intlist/errs"
	"github.com/arloliu/intlist/format"
	"github.com/arloliu/intlist/section"
)

func TestSerialize_RoundTrip(t *testing.T) {
	tests := [][]uint64{
		{0},
		{0, 0, 0},
		{1, 2, 3},
		{5, 5, 7, 7, 7, 9},
		{2, 50, 1000, 1001, 1_000_000},
		{0, 1 << 20, 1 << 40, 1 << 60},
	}

	for _, values := range tests {
		list, err := Encode(values)
		require.NoError(t, err)

		data, err := list.Serialize(format.CompressionNone)
		require.NoError(t, err)

		restored, err := Deserialize(data)
		require.NoError(t, err)
		require.True(t, list.Equal(restored))
		require.Equal(t, values, slices.Collect(restored.Values(0)))
	}
}

func TestSerialize_Deterministic(t *testing.T) {
	values := []uint64{2, 50, 1000, 1001}

	a, err := Encode(values)
	require.NoError(t, err)
	b, err := Encode(values)
	require.NoError(t, err)

	dataA, err := a.Serialize(format.CompressionNone)
	require.NoError(t, err)
	dataB, err := b.Serialize(format.CompressionNone)
	require.NoError(t, err)
	require.Equal(t, dataA, dataB)

	// Serializing the same list twice is also byte-identical.
	again, err := a.Serialize(format.CompressionNone)
	require.NoError(t, err)
	require.Equal(t, dataA, again)
}

func TestSerialize_Compressed(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	values := ascendingValues(rng, 2000, 64)
	list, err := Encode(values)
	require.NoError(t, err)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			data, err := list.Serialize(ct)
			require.NoError(t, err)

			restored, err := Deserialize(data)
			require.NoError(t, err)
			require.True(t, list.Equal(restored))
		})
	}
}

func TestSerializeInto_MatchesSerialize(t *testing.T) {
	list, err := Encode([]uint64{1, 2, 3, 100})
	require.NoError(t, err)

	data, err := list.Serialize(format.CompressionNone)
	require.NoError(t, err)

	var sink bytes.Buffer
	n, err := list.SerializeInto(&sink, format.CompressionNone)
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), n)
	require.Equal(t, data, sink.Bytes())
}

func TestDeserialize_Truncated(t *testing.T) {
	list, err := Encode([]uint64{2, 50, 1000, 1001})
	require.NoError(t, err)
	data, err := list.Serialize(format.CompressionNone)
	require.NoError(t, err)

	_, err = Deserialize(nil)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	_, err = Deserialize(data[:section.HeaderSize-1])
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	for _, cut := range []int{section.HeaderSize, section.HeaderSize + 1, len(data) - 1} {
		_, err = Deserialize(data[:cut])
		require.ErrorIs(t, err, errs.ErrTruncatedPayload, "cut at %d", cut)
	}
}

func TestDeserialize_ChecksumMismatch(t *testing.T) {
	list, err := Encode([]uint64{2, 50, 1000, 1001})
	require.NoError(t, err)
	data, err := list.Serialize(format.CompressionNone)
	require.NoError(t, err)

	corrupted := append([]byte(nil), data...)
	corrupted[len(corrupted)-1] ^= 0x01
	_, err = Deserialize(corrupted)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestDeserialize_MalformedHeader(t *testing.T) {
	list, err := Encode([]uint64{2, 50, 1000, 1001})
	require.NoError(t, err)
	data, err := list.Serialize(format.CompressionNone)
	require.NoError(t, err)

	var header section.Header
	require.NoError(t, header.Parse(data))

	rewrite := func(mutate func(h *section.Header)) []byte {
		h := header
		mutate(&h)
		out := append([]byte(nil), data...)
		copy(out, h.Bytes())

		return out
	}

	// Count inconsistent with the high stream geometry.
	_, err = Deserialize(rewrite(func(h *section.Header) { h.Count++ }))
	require.ErrorIs(t, err, errs.ErrMalformedHeader)

	// Declared bit length disagrees with the stored payload size.
	_, err = Deserialize(rewrite(func(h *section.Header) { h.HighBitLen += 64 }))
	require.ErrorIs(t, err, errs.ErrMalformedHeader)

	// Low width not the canonical derivation from (count, max).
	_, err = Deserialize(rewrite(func(h *section.Header) { h.LowWidth++ }))
	require.ErrorIs(t, err, errs.ErrMalformedHeader)

	// Bad magic is rejected before any payload inspection.
	_, err = Deserialize(rewrite(func(h *section.Header) { h.Flag.Options ^= 0xFF00 }))
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
}

func TestDeserialize_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 25; trial++ {
		values := ascendingValues(rng, 1+rng.Intn(300), uint64(1)<<uint(rng.Intn(24)))
		list, err := Encode(values)
		require.NoError(t, err)

		data, err := list.Serialize(format.CompressionNone)
		require.NoError(t, err)

		restored, err := Deserialize(data)
		require.NoError(t, err)
		require.Equal(t, values, slices.Collect(restored.Values(0)))
	}
}
