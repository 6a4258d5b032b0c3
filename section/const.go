package section

const (
	// Bit masks for the Options field.
	ReservedMask    = 0x0001 // Mask for reserved bit (bit 0), must be zero
	EndiannessMask  = 0x0002 // Mask for endianness bit (bit 1), 0=little 1=big
	ReservedMask2   = 0x000C // Mask for reserved bits (bits 2-3), must be zero
	MagicNumberMask = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicListV1Opt is the version 1 magic number for the integer list format.
	MagicListV1Opt = 0xEF10

	// HeaderSize is the fixed header size in bytes.
	HeaderSize = 48

	// MaxLowWidth is the largest representable low-bit width. A 64-bit element
	// always leaves at least one bit for the high part.
	MaxLowWidth = 63
)
