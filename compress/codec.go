// Package compress provides the payload compression codecs used by the
// intlist serialization envelope.
//
// The canonical serialized form stores the packed low-bit array and the
// high-bit stream uncompressed. For cold storage or network transfer the
// payloads can additionally be compressed; the compression type is recorded in
// the header so the decoder picks the matching codec automatically.
//
// Elias-Fano payloads are already near the information-theoretic minimum, so
// general-purpose compression mostly pays off for lists with long runs of
// regular gaps (timestamps, block offsets) where the low-bit array becomes
// highly repetitive.
package compress

import (
	"fmt"

	"github.com/arloliu/intlist/format"
)

// Compressor compresses a complete payload section.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is newly allocated and owned by the caller; the input
	// slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload section compressed by the matching
// Compressor.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original bytes.
	//
	// Returns an error if the data is corrupted or was produced by an
	// incompatible algorithm. The returned slice is newly allocated and owned
	// by the caller; the input slice is not modified.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
//
// All built-in codecs are stateless or internally pooled and safe for
// concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
