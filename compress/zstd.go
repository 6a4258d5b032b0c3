package compress

// ZstdCompressor provides Zstandard compression, the best ratio among the
// built-in codecs. Suited for archival of large lists where decompression is
// infrequent.
//
// Two implementations exist behind build tags: a cgo-backed one using
// valyala/gozstd, and a pure-Go fallback using klauspost/compress/zstd when
// cgo is unavailable. Both produce standard zstd frames and interoperate.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
