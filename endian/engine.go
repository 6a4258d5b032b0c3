// Package endian provides byte order utilities for the intlist binary format.
//
// It combines encoding/binary's ByteOrder and AppendByteOrder interfaces into a
// single EndianEngine interface so the serializer can both read fixed-width
// fields and append them to a growing buffer without extra copies.
//
// The canonical intlist serialization is little-endian; big-endian output is
// supported through the endianness bit in the header flag for interoperability
// with big-endian producers.
//
// All functions are safe for concurrent use. The returned engines are the
// immutable, stateless binary.LittleEndian and binary.BigEndian values.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order operations.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian from the standard
// library, making it fully compatible with existing Go code while providing
// access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host byte order is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
