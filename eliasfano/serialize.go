package eliasfano

import (
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/intlist/compress"
	"github.com/arloliu/intlist/endian"
	"github.com/arloliu/intlist/errs"
	"github.com/arloliu/intlist/format"
	"github.com/arloliu/intlist/internal/bitvec"
	"github.com/arloliu/intlist/internal/pool"
	"github.com/arloliu/intlist/section"
)

// Serialize encodes the list into a self-describing byte slice: the fixed
// header, the packed low-bit payload, then the high-bit payload. Payloads are
// stored with the given compression; CompressionNone produces the canonical
// form, which is byte-identical for equal lists.
func (l *List) Serialize(compression format.CompressionType) ([]byte, error) {
	buf := pool.GetListBuffer()
	defer pool.PutListBuffer(buf)

	if err := l.serializeInto(buf, compression); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// SerializeInto writes the serialized form to w, returning the number of
// bytes written.
func (l *List) SerializeInto(w io.Writer, compression format.CompressionType) (int64, error) {
	buf := pool.GetListBuffer()
	defer pool.PutListBuffer(buf)

	if err := l.serializeInto(buf, compression); err != nil {
		return 0, err
	}

	return buf.WriteTo(w)
}

func (l *List) serializeInto(buf *pool.ByteBuffer, compression format.CompressionType) error {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return err
	}

	engine := endian.GetLittleEndianEngine()

	lowStored, err := codec.Compress(wordsToBytes(engine, l.lowWords))
	if err != nil {
		return fmt.Errorf("compress low payload: %w", err)
	}
	highStored, err := codec.Compress(wordsToBytes(engine, l.high.Words()))
	if err != nil {
		return fmt.Errorf("compress high payload: %w", err)
	}
	if len(lowStored) > math.MaxUint32 || len(highStored) > math.MaxUint32 {
		return fmt.Errorf("payload exceeds maximum section size")
	}

	header := section.NewHeader(l.count, l.maxValue, l.lowWidth, compression)
	header.HighBitLen = l.high.Len()
	header.LowPayloadLen = uint32(len(lowStored))
	header.HighPayloadLen = uint32(len(highStored))

	digest := xxhash.New()
	_, _ = digest.Write(lowStored)
	_, _ = digest.Write(highStored)
	header.Checksum = digest.Sum64()

	buf.Grow(section.HeaderSize + len(lowStored) + len(highStored))
	buf.MustWrite(header.Bytes())
	buf.MustWrite(lowStored)
	buf.MustWrite(highStored)

	return nil
}

// Deserialize reconstructs a List from bytes produced by Serialize.
//
// The header is validated before any payload work: errs.ErrInvalidHeaderSize
// or errs.ErrTruncatedPayload when fewer bytes are present than declared, and
// errs.ErrMalformedHeader (or the more specific magic/checksum/compression
// sentinels) when fields are internally inconsistent. The rank/select index
// is rebuilt from the raw high-bit words; it is never part of the format.
func Deserialize(data []byte) (*List, error) {
	header := &section.Header{}
	if err := header.Parse(data); err != nil {
		return nil, err
	}

	total := uint64(section.HeaderSize) + uint64(header.LowPayloadLen) + uint64(header.HighPayloadLen)
	if uint64(len(data)) < total {
		return nil, errs.ErrTruncatedPayload
	}

	lowStored := data[section.HeaderSize : section.HeaderSize+uint64(header.LowPayloadLen)]
	highStored := data[section.HeaderSize+uint64(header.LowPayloadLen) : total]

	digest := xxhash.New()
	_, _ = digest.Write(lowStored)
	_, _ = digest.Write(highStored)
	if digest.Sum64() != header.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, errs.ErrInvalidCompressionType
	}
	lowRaw, err := codec.Decompress(lowStored)
	if err != nil {
		return nil, fmt.Errorf("decompress low payload: %w", err)
	}
	highRaw, err := codec.Decompress(highStored)
	if err != nil {
		return nil, fmt.Errorf("decompress high payload: %w", err)
	}

	if err := validateGeometry(header, uint64(len(lowRaw)), uint64(len(highRaw))); err != nil {
		return nil, err
	}

	engine := header.Flag.GetEndianEngine()
	l := &List{
		count:    header.Count,
		maxValue: header.MaxValue,
		lowWidth: header.LowWidth,
		lowMask:  lowMask(header.LowWidth),
		lowWords: bytesToWords(engine, lowRaw),
	}
	l.high = bitvec.NewVector(bytesToWords(engine, highRaw), header.HighBitLen)

	// The stream must hold one set bit per element, or positional access
	// would run past the end of it.
	if l.high.Ones() != header.Count {
		return nil, errs.ErrMalformedHeader
	}

	// The decoded last element must agree with the header; a mismatch means
	// the payload does not belong to this header.
	if l.Get(l.Len()-1) != header.MaxValue {
		return nil, errs.ErrMalformedHeader
	}

	return l, nil
}

// validateGeometry cross-checks the header fields against the decompressed
// payload sizes and the deterministic encoding geometry. Every arithmetic
// step guards against overflow from hostile headers.
func validateGeometry(header *section.Header, lowLen, highLen uint64) error {
	if header.HighBitLen > math.MaxUint64-63 {
		return errs.ErrMalformedHeader
	}
	highWords := (header.HighBitLen + 63) / 64
	if highLen != highWords*8 {
		return errs.ErrMalformedHeader
	}

	// The stream holds exactly Count set bits plus MaxValue>>LowWidth zero
	// gaps plus one trailing zero; anything else cannot decode Count elements.
	maxHigh := header.MaxValue >> header.LowWidth
	if header.Count > math.MaxUint64-maxHigh-1 {
		return errs.ErrMalformedHeader
	}
	if header.HighBitLen != header.Count+maxHigh+1 {
		return errs.ErrMalformedHeader
	}

	if header.LowWidth != deriveLowWidth(header.Count, header.MaxValue) {
		return errs.ErrMalformedHeader
	}
	if header.LowWidth > 0 && header.Count > math.MaxUint64/uint64(header.LowWidth) {
		return errs.ErrMalformedHeader
	}
	if lowLen != lowWordCount(header.Count, header.LowWidth)*8 {
		return errs.ErrMalformedHeader
	}

	return nil
}

func wordsToBytes(engine endian.EndianEngine, words []uint64) []byte {
	if len(words) == 0 {
		return nil
	}
	out := make([]byte, 0, len(words)*8)
	for _, w := range words {
		out = engine.AppendUint64(out, w)
	}

	return out
}

func bytesToWords(engine endian.EndianEngine, data []byte) []uint64 {
	if len(data) == 0 {
		return nil
	}
	words := make([]uint64, len(data)/8)
	for i := range words {
		words[i] = engine.Uint64(data[i*8 : i*8+8])
	}

	return words
}
