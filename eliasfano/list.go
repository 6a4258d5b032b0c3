// Package eliasfano implements the quotient/remainder codec for monotone
// integer sequences.
//
// Each value v is split at a fixed width l into a high part v>>l and a low
// part of the l least significant bits. The low parts are packed into
// fixed-width words; the non-decreasing high parts are unary-encoded into a
// bit vector with rank/select support, so positional access decodes one value
// without touching its neighbors.
//
// The width l is derived once from the element count n and the maximum value
// U as floor(log2(U/n)) (0 when n > U), which keeps the total footprint near
// the information-theoretic minimum of a sorted sequence.
//
// A List is immutable after Encode and safe for concurrent readers.
package eliasfano

import (
	"iter"
	"math/bits"
	"slices"

	"github.com/arloliu/intlist/errs"
	"github.com/arloliu/intlist/internal/bitvec"
	"github.com/arloliu/intlist/section"
)

// List is an encoded monotone sequence of uint64 values.
//
// The zero value is not usable; construct with Encode or Deserialize.
type List struct {
	high     *bitvec.Vector
	lowWords []uint64
	count    uint64
	maxValue uint64
	lowWidth uint8
	lowMask  uint64
}

// Encode builds a List from a non-decreasing sequence of values.
//
// Returns errs.ErrEmptyOrUnsortedInput if values is empty or any element is
// smaller than its predecessor. Equal adjacent elements are allowed.
//
// The encoding is a pure function of the input: two Lists built from the same
// sequence are identical, including their serialized bytes.
func Encode(values []uint64) (*List, error) {
	if len(values) == 0 {
		return nil, errs.ErrEmptyOrUnsortedInput
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return nil, errs.ErrEmptyOrUnsortedInput
		}
	}

	n := uint64(len(values))
	maxValue := values[len(values)-1]
	lowWidth := deriveLowWidth(n, maxValue)

	l := &List{
		count:    n,
		maxValue: maxValue,
		lowWidth: lowWidth,
		lowMask:  lowMask(lowWidth),
		lowWords: make([]uint64, lowWordCount(n, lowWidth)),
	}

	builder := bitvec.NewBuilder(highBitLen(n, maxValue, lowWidth))
	prevHigh := uint64(0)
	for i, v := range values {
		high := v >> lowWidth
		builder.PushZeros(high - prevHigh)
		builder.PushOne()
		prevHigh = high

		l.setLow(uint64(i), v&l.lowMask)
	}
	// Trailing zero pads the stream to count + (maxValue>>lowWidth) + 1 bits.
	builder.PushZeros(1)
	l.high = builder.Freeze()

	return l, nil
}

// deriveLowWidth returns floor(log2(maxValue/count)), or 0 when count exceeds
// maxValue. count must be non-zero.
func deriveLowWidth(count, maxValue uint64) uint8 {
	q := maxValue / count
	if q == 0 {
		return 0
	}

	return uint8(63 - bits.LeadingZeros64(q))
}

func lowMask(lowWidth uint8) uint64 {
	return uint64(1)<<lowWidth - 1
}

// lowWordCount returns the number of 64-bit words holding count packed
// lowWidth-bit entries, with no padding word.
func lowWordCount(count uint64, lowWidth uint8) uint64 {
	return (count*uint64(lowWidth) + 63) / 64
}

// highBitLen returns the bit length of the high unary stream:
// count set bits, maxValue>>lowWidth zero gaps, one trailing zero.
func highBitLen(count, maxValue uint64, lowWidth uint8) uint64 {
	return count + (maxValue >> lowWidth) + 1
}

// setLow stores the low bits of element i. Elements are written in ascending
// index order into zeroed words, so plain ORs suffice.
func (l *List) setLow(i, v uint64) {
	if l.lowWidth == 0 {
		return
	}
	start := i * uint64(l.lowWidth)
	idx := start >> 6
	shift := start & 63
	l.lowWords[idx] |= v << shift
	if shift+uint64(l.lowWidth) > 64 {
		l.lowWords[idx+1] = v >> (64 - shift)
	}
}

// lowAt reads the low bits of element i.
func (l *List) lowAt(i uint64) uint64 {
	if l.lowWidth == 0 {
		return 0
	}
	start := i * uint64(l.lowWidth)
	idx := start >> 6
	shift := start & 63
	v := l.lowWords[idx] >> shift
	if shift+uint64(l.lowWidth) > 64 {
		v |= l.lowWords[idx+1] << (64 - shift)
	}

	return v & l.lowMask
}

// Len returns the number of encoded elements.
func (l *List) Len() int {
	return int(l.count)
}

// Count returns the number of encoded elements as uint64.
func (l *List) Count() uint64 {
	return l.count
}

// Max returns the largest (last) encoded element.
func (l *List) Max() uint64 {
	return l.maxValue
}

// Get returns the element at index i. Panics if i is out of range; bounds are
// the caller's responsibility, matching slice access semantics.
func (l *List) Get(i int) uint64 {
	if i < 0 || uint64(i) >= l.count {
		panic("eliasfano: index out of range")
	}

	pos, ok := l.high.Select1(uint64(i))
	if !ok {
		// The stream always holds count set bits; unreachable on a List built
		// by Encode or Deserialize.
		panic("eliasfano: high bit stream is shorter than the element count")
	}
	high := pos - uint64(i)

	return high<<l.lowWidth | l.lowAt(uint64(i))
}

// Values returns a lazy iterator over elements beginning at index start, in
// ascending index order. The sequence is restartable: each range over it
// decodes from start again. Panics if start is negative; a start beyond the
// last element yields an empty sequence.
func (l *List) Values(start int) iter.Seq[uint64] {
	if start < 0 {
		panic("eliasfano: negative start index")
	}

	return func(yield func(uint64) bool) {
		if uint64(start) >= l.count {
			return
		}
		pos, _ := l.high.Select1(uint64(start))
		for i := uint64(start); i < l.count; i++ {
			if !yield((pos-i)<<l.lowWidth | l.lowAt(i)) {
				return
			}
			pos, _ = l.high.NextSet(pos + 1)
		}
	}
}

// SizeInBits returns the exact encoded payload size in bits: the packed low
// array plus the high unary stream, excluding the serialization header.
func (l *List) SizeInBits() uint64 {
	return l.count*uint64(l.lowWidth) + l.high.Len()
}

// SizeInBytes returns the canonical (uncompressed) serialized size in bytes,
// including the header.
func (l *List) SizeInBytes() int {
	return section.HeaderSize + 8*(len(l.lowWords)+len(l.high.Words()))
}

// Equal reports whether two lists encode the same sequence. Because the
// encoding is deterministic, structural equality and sequence equality
// coincide.
func (l *List) Equal(other *List) bool {
	if l == nil || other == nil {
		return l == other
	}

	return l.count == other.count &&
		l.maxValue == other.maxValue &&
		l.lowWidth == other.lowWidth &&
		slices.Equal(l.lowWords, other.lowWords) &&
		l.high.Len() == other.high.Len() &&
		slices.Equal(l.high.Words(), other.high.Words())
}
