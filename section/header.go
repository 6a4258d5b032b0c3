// Package section defines the fixed-size binary header of the serialized
// integer list.
//
// The header fully determines the byte layout that follows it: the packed
// low-bit payload and then the high-bit payload, each stored with the
// compression declared in the header. The rank/select index is never
// persisted; decoders rebuild it from the raw high-bit words.
package section

import (
	"github.com/arloliu/intlist/errs"
	"github.com/arloliu/intlist/format"
)

// Header represents the fixed-size header section at the start of a serialized
// integer list.
//
// Byte layout (HeaderSize = 48 bytes):
//
//	offset 0-1   Flag options (always little-endian)
//	offset 2     low-bit width (0-63)
//	offset 3     payload compression type
//	offset 4-11  element count, >= 1
//	offset 12-19 maximum (last) element value
//	offset 20-27 bit length of the high unary stream
//	offset 28-31 stored byte length of the low payload
//	offset 32-35 stored byte length of the high payload
//	offset 36-43 xxHash64 checksum over the stored payload bytes
//	offset 44-47 reserved, written as zero
type Header struct {
	// Count is the number of encoded elements.
	Count uint64
	// MaxValue is the largest (last) encoded element.
	MaxValue uint64
	// HighBitLen is the bit length of the high unary stream.
	HighBitLen uint64
	// Checksum is the xxHash64 of the stored low+high payload bytes, in
	// storage order.
	Checksum uint64
	// LowPayloadLen is the stored (possibly compressed) low payload byte length.
	LowPayloadLen uint32
	// HighPayloadLen is the stored (possibly compressed) high payload byte length.
	HighPayloadLen uint32
	// LowWidth is the fixed low-bit width per element.
	LowWidth uint8
	// Compression is the compression applied to both payload sections.
	Compression format.CompressionType

	// Flag is the packed options word with magic number and endianness.
	Flag Flag
}

// NewHeader creates a Header for the current format version. Payload lengths
// and checksum are filled in by the serializer.
func NewHeader(count, maxValue uint64, lowWidth uint8, compression format.CompressionType) *Header {
	return &Header{
		Flag:        NewFlag(),
		Count:       count,
		MaxValue:    maxValue,
		LowWidth:    lowWidth,
		Compression: compression,
	}
}

// Parse parses and validates the header from a byte slice of at least
// HeaderSize bytes.
//
// Returns errs.ErrInvalidHeaderSize when data is too short, flag validation
// errors for a bad magic number or reserved bits, and errs.ErrMalformedHeader
// for internally inconsistent fields.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The Options field itself is always little-endian; it carries the
	// endianness of everything after it.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	h.LowWidth = data[2]
	h.Compression = format.CompressionType(data[3])

	engine := h.Flag.GetEndianEngine()
	h.Count = engine.Uint64(data[4:12])
	h.MaxValue = engine.Uint64(data[12:20])
	h.HighBitLen = engine.Uint64(data[20:28])
	h.LowPayloadLen = engine.Uint32(data[28:32])
	h.HighPayloadLen = engine.Uint32(data[32:36])
	h.Checksum = engine.Uint64(data[36:44])

	return h.validate()
}

func (h *Header) validate() error {
	if !h.Compression.Valid() {
		return errs.ErrInvalidCompressionType
	}
	if h.Count == 0 {
		return errs.ErrMalformedHeader
	}
	if h.LowWidth > MaxLowWidth {
		return errs.ErrMalformedHeader
	}

	return nil
}

// Bytes serializes the Header into a fresh byte slice of HeaderSize bytes.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.LowWidth
	b[3] = byte(h.Compression)
	engine.PutUint64(b[4:12], h.Count)
	engine.PutUint64(b[12:20], h.MaxValue)
	engine.PutUint64(b[20:28], h.HighBitLen)
	engine.PutUint32(b[28:32], h.LowPayloadLen)
	engine.PutUint32(b[32:36], h.HighPayloadLen)
	engine.PutUint64(b[36:44], h.Checksum)
	// bytes 44-47 reserved, left zero

	return b
}
