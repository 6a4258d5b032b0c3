package section

import (
	"github.com/arloliu/intlist/endian"
	"github.com/arloliu/intlist/errs"
)

// Flag is the packed options word at the start of the header.
//
// Bit 0 is reserved and must be zero.
// Bit 1 is the endianness flag, 0 means little-endian, 1 means big-endian.
// Bits 2-3 are reserved and must be zero.
// Bits 4-15 are the magic number identifying the list format:
//   - 0xEF10 (0b1110_1111_0001_0000): integer list format v1
type Flag struct {
	Options uint16
}

// NewFlag creates a Flag for the current format version with little-endian
// byte order.
func NewFlag() Flag {
	flag := Flag{Options: MagicListV1Opt}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the payload byte order is little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the payload byte order is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// GetEndianEngine returns the endian engine matching the endianness flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Validate checks the magic number and reserved bits.
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicListV1Opt {
		return errs.ErrInvalidMagicNumber
	}
	if f.Options&(ReservedMask|ReservedMask2) != 0 {
		return errs.ErrMalformedHeader
	}

	return nil
}
