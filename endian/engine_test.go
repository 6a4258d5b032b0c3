package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

func TestEngineRoundTrip(t *testing.T) {
	engines := []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()}

	for _, engine := range engines {
		buf := make([]byte, 8)
		engine.PutUint64(buf, 0x0123456789ABCDEF)
		require.Equal(t, uint64(0x0123456789ABCDEF), engine.Uint64(buf))

		appended := engine.AppendUint64(nil, 0xFEDCBA9876543210)
		require.Len(t, appended, 8)
		require.Equal(t, uint64(0xFEDCBA9876543210), engine.Uint64(appended))
	}
}

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	require.Contains(t, []binary.ByteOrder{binary.LittleEndian, binary.BigEndian}, order)
	require.Equal(t, order == binary.LittleEndian, IsNativeLittleEndian())
}
