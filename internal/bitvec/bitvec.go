// Package bitvec implements an append-only bit vector with constant-time rank
// and logarithmic-time select queries over the frozen form.
//
// The vector is built in two phases: bits are appended to a Builder, then
// Freeze finalizes the contents and computes a cumulative popcount table. The
// frozen Vector is immutable and safe for concurrent readers.
//
// Rank uses the per-word cumulative table plus an in-word popcount. Select
// binary-searches the table for the containing word and then steps through the
// word by clearing low set bits, bounded by the 64-bit word size.
package bitvec

import (
	"math/bits"
	"sort"
)

const wordBits = 64

// Builder accumulates bits during the construction phase.
//
// A Builder is single-use: after Freeze it must not be appended to again, and
// doing so panics. Bits are appended most-significant-position-last, i.e. bit
// position equals the number of bits appended before it.
type Builder struct {
	words  []uint64
	length uint64
	frozen bool
}

// NewBuilder creates a Builder with capacity for capacityBits pre-allocated.
// The capacity is a hint; the builder grows as needed.
func NewBuilder(capacityBits uint64) *Builder {
	return &Builder{
		words: make([]uint64, 0, (capacityBits+wordBits-1)/wordBits),
	}
}

func (b *Builder) ensure(lengthBits uint64) {
	need := int((lengthBits + wordBits - 1) / wordBits)
	for len(b.words) < need {
		b.words = append(b.words, 0)
	}
}

// PushZeros appends n zero bits.
func (b *Builder) PushZeros(n uint64) {
	if b.frozen {
		panic("bitvec: append after freeze")
	}
	b.length += n
	b.ensure(b.length)
}

// PushOne appends a single set bit.
func (b *Builder) PushOne() {
	if b.frozen {
		panic("bitvec: append after freeze")
	}
	pos := b.length
	b.length++
	b.ensure(b.length)
	b.words[pos/wordBits] |= uint64(1) << (pos % wordBits)
}

// PushBit appends one bit.
func (b *Builder) PushBit(set bool) {
	if set {
		b.PushOne()
	} else {
		b.PushZeros(1)
	}
}

// Len returns the number of bits appended so far.
func (b *Builder) Len() uint64 {
	return b.length
}

// Freeze finalizes the bit contents and builds the rank index. The Builder
// must not be used afterwards.
func (b *Builder) Freeze() *Vector {
	if b.frozen {
		panic("bitvec: freeze called twice")
	}
	b.frozen = true

	return newVector(b.words, b.length)
}

// Vector is an immutable bit vector with rank/select support.
type Vector struct {
	words  []uint64
	ranks  []uint64 // ranks[i] = set bits in words[0:i]; len(ranks) == len(words)+1
	length uint64
}

// NewVector reconstructs a frozen Vector from raw word storage, rebuilding the
// rank index. It is used by the deserializer; words must hold exactly
// (lengthBits+63)/64 entries, which the caller is expected to have validated.
func NewVector(words []uint64, lengthBits uint64) *Vector {
	if uint64(len(words)) != (lengthBits+wordBits-1)/wordBits {
		panic("bitvec: word count does not match bit length")
	}

	return newVector(words, lengthBits)
}

func newVector(words []uint64, lengthBits uint64) *Vector {
	ranks := make([]uint64, len(words)+1)
	for i, w := range words {
		ranks[i+1] = ranks[i] + uint64(bits.OnesCount64(w))
	}

	return &Vector{
		words:  words,
		ranks:  ranks,
		length: lengthBits,
	}
}

// Len returns the bit length of the vector.
func (v *Vector) Len() uint64 {
	return v.length
}

// Ones returns the total number of set bits.
func (v *Vector) Ones() uint64 {
	return v.ranks[len(v.ranks)-1]
}

// Words returns the raw word storage. The caller must not modify it.
func (v *Vector) Words() []uint64 {
	return v.words
}

// Bit reports whether the bit at position i is set. Panics if i is out of
// range.
func (v *Vector) Bit(i uint64) bool {
	if i >= v.length {
		panic("bitvec: bit index out of range")
	}

	return v.words[i/wordBits]&(uint64(1)<<(i%wordBits)) != 0
}

// Rank1 returns the number of set bits in positions [0, i). i may equal Len().
// Panics if i exceeds the vector length.
func (v *Vector) Rank1(i uint64) uint64 {
	if i > v.length {
		panic("bitvec: rank position out of range")
	}
	word := i / wordBits
	rem := i % wordBits
	r := v.ranks[word]
	if rem != 0 {
		r += uint64(bits.OnesCount64(v.words[word] & (uint64(1)<<rem - 1)))
	}

	return r
}

// Select1 returns the position of the (k+1)-th set bit, 0-indexed. The second
// return value is false when k is not less than the number of set bits.
func (v *Vector) Select1(k uint64) (uint64, bool) {
	if k >= v.Ones() {
		return 0, false
	}

	// Locate the word holding the target bit: the first word whose cumulative
	// rank exceeds k.
	word := sort.Search(len(v.words), func(i int) bool {
		return v.ranks[i+1] > k
	})

	return uint64(word)*wordBits + select64(v.words[word], k-v.ranks[word]), true
}

// NextSet returns the position of the first set bit at or after position i.
// The second return value is false when no set bit remains.
func (v *Vector) NextSet(i uint64) (uint64, bool) {
	if i >= v.length {
		return 0, false
	}
	word := i / wordBits
	if w := v.words[word] >> (i % wordBits); w != 0 {
		return i + uint64(bits.TrailingZeros64(w)), true
	}
	for word++; word < uint64(len(v.words)); word++ {
		if w := v.words[word]; w != 0 {
			return word*wordBits + uint64(bits.TrailingZeros64(w)), true
		}
	}

	return 0, false
}

// select64 returns the position of the (k+1)-th set bit within x. The caller
// guarantees x holds more than k set bits.
func select64(x uint64, k uint64) uint64 {
	for ; k > 0; k-- {
		x &= x - 1
	}

	return uint64(bits.TrailingZeros64(x))
}
