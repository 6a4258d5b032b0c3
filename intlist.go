// Package intlist provides a compact, immutable list of sorted unsigned
// integers with random access, iteration, and set intersection — without
// decompressing the list.
//
// The list is stored with Elias-Fano encoding: each value is split into high
// and low bit groups, the high parts are unary-encoded into a bit vector with
// rank/select support and the low parts are packed at a fixed width. The
// result is close to the information-theoretic minimum for a sorted sequence
// while positional access stays O(1) amortized.
//
// # Basic Usage
//
//	list, err := intlist.New([]uint64{2, 50, 1000, 1001})
//	if err != nil {
//	    return err
//	}
//
//	v := list.At(2)          // 1000
//	for v := range list.All() {
//	    fmt.Println(v)
//	}
//
//	data := list.Bytes()                 // canonical serialization
//	same, err := intlist.FromBytes(data) // round-trips byte-for-byte
//
// # Intersection
//
// Two lists intersect in O(len(a) + len(b)) via a lockstep merge over both
// iterators. An empty result is represented as a nil list, never as an empty
// instance — an empty list cannot be constructed by design.
//
//	a, _ := intlist.New([]uint64{2, 3, 4})
//	b, _ := intlist.New([]uint64{3, 4, 5})
//	c := a.Intersection(b) // {3, 4}
//
// # Serialization
//
// Bytes produces the canonical self-describing form; EncodedBytes additionally
// compresses the payload sections with Zstd, S2, or LZ4. FromBytes detects the
// compression from the header. Deserialization of equal lists is
// deterministic: serializing the same logical list twice yields identical
// bytes.
package intlist

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/arloliu/intlist/eliasfano"
	"github.com/arloliu/intlist/errs"
	"github.com/arloliu/intlist/format"
)

// Unsigned constrains the element types accepted by NewFrom. All of them
// widen losslessly into uint64.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// IntegerList is an immutable sorted list of unsigned integers backed by an
// Elias-Fano codec. A constructed list may be shared by any number of
// concurrent readers without locking.
type IntegerList struct {
	list *eliasfano.List
}

// New creates an IntegerList from a non-decreasing sequence of integers.
//
// Returns errs.ErrEmptyOrUnsortedInput if the sequence is empty or not sorted
// in ascending order. Equal adjacent values are allowed.
func New(values []uint64) (*IntegerList, error) {
	list, err := eliasfano.Encode(values)
	if err != nil {
		return nil, err
	}

	return &IntegerList{list: list}, nil
}

// NewFrom creates an IntegerList from a sequence of any unsigned integer
// width, widening each element to uint64 before encoding.
func NewFrom[T Unsigned](values []T) (*IntegerList, error) {
	widened := make([]uint64, len(values))
	for i, v := range values {
		widened[i] = uint64(v)
	}

	return New(widened)
}

// MustNew creates an IntegerList from a pre-sorted, non-empty sequence,
// skipping validation.
//
// It is intended for call sites that already guarantee order by construction,
// such as the result of Intersection. Violating the precondition is a
// programming error and panics; it is not a recoverable condition.
func MustNew(values []uint64) *IntegerList {
	list, err := eliasfano.Encode(values)
	if err != nil {
		panic("intlist: MustNew requires a pre-sorted, non-empty sequence")
	}

	return &IntegerList{list: list}
}

// FromBytes reconstructs an IntegerList from bytes produced by Bytes,
// EncodedBytes, or WriteTo.
//
// Any decode failure — truncated data, bad magic, inconsistent header fields,
// checksum mismatch — is wrapped in errs.ErrFailedDeserialize; the specific
// cause remains matchable with errors.Is.
func FromBytes(data []byte) (*IntegerList, error) {
	list, err := eliasfano.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrFailedDeserialize, err)
	}

	return &IntegerList{list: list}, nil
}

// Len returns the number of elements.
func (l *IntegerList) Len() int {
	return l.list.Len()
}

// Max returns the largest (last) element.
func (l *IntegerList) Max() uint64 {
	return l.list.Max()
}

// At returns the element at index i in O(1) amortized time. Panics if i is
// out of range, matching slice access semantics.
func (l *IntegerList) At(i int) uint64 {
	return l.list.Get(i)
}

// All returns a lazy iterator over all elements in ascending order. The
// sequence is restartable and has no side effects.
func (l *IntegerList) All() iter.Seq[uint64] {
	return l.list.Values(0)
}

// Iter returns a lazy iterator over elements beginning at index start.
func (l *IntegerList) Iter(start int) iter.Seq[uint64] {
	return l.list.Values(start)
}

// Values decodes the whole list into a fresh slice.
func (l *IntegerList) Values() []uint64 {
	out := make([]uint64, 0, l.Len())
	for v := range l.All() {
		out = append(out, v)
	}

	return out
}

// SizeInBits returns the exact encoded payload size in bits.
func (l *IntegerList) SizeInBits() uint64 {
	return l.list.SizeInBits()
}

// SizeInBytes returns the canonical serialized size in bytes, header included.
func (l *IntegerList) SizeInBytes() int {
	return l.list.SizeInBytes()
}

// Bytes returns the canonical (uncompressed) serialization. Equal lists
// always produce identical bytes.
func (l *IntegerList) Bytes() []byte {
	data, err := l.list.Serialize(format.CompressionNone)
	if err != nil {
		// CompressionNone cannot fail on a constructed list.
		panic(fmt.Sprintf("intlist: canonical serialization failed: %v", err))
	}

	return data
}

// EncodedBytes returns the serialization with the payload sections compressed
// using the given codec. FromBytes detects the codec from the header.
func (l *IntegerList) EncodedBytes(compression format.CompressionType) ([]byte, error) {
	return l.list.Serialize(compression)
}

// WriteTo writes the canonical serialization to w, implementing io.WriterTo.
func (l *IntegerList) WriteTo(w io.Writer) (int64, error) {
	return l.list.SerializeInto(w, format.CompressionNone)
}

// Equal reports whether both lists encode the same sequence.
func (l *IntegerList) Equal(other *IntegerList) bool {
	if l == nil || other == nil {
		return l == other
	}

	return l.list.Equal(other.list)
}

// Intersection merges both sorted lists and returns the list of values
// present in each, or nil when no value is shared.
//
// The merge advances in lockstep: equal heads emit one value and consume one
// element from each side, so duplicated values produce one emission per
// matched pair. Runs in O(len(l) + len(other)).
func (l *IntegerList) Intersection(other *IntegerList) *IntegerList {
	result := make([]uint64, 0, min(l.Len(), other.Len()))

	nextA, stopA := iter.Pull(l.All())
	defer stopA()
	nextB, stopB := iter.Pull(other.All())
	defer stopB()

	a, okA := nextA()
	b, okB := nextB()
	for okA && okB {
		switch {
		case a == b:
			result = append(result, a)
			a, okA = nextA()
			b, okB = nextB()
		case a < b:
			a, okA = nextA()
		default:
			b, okB = nextB()
		}
	}

	if len(result) == 0 {
		return nil
	}

	// Sorted by construction of the merge.
	return MustNew(result)
}

// String renders the decoded sequence for debugging.
func (l *IntegerList) String() string {
	var sb strings.Builder
	sb.WriteString("IntegerList [")
	first := true
	for v := range l.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "%d", v)
	}
	sb.WriteByte(']')

	return sb.String()
}

// MarshalJSON encodes the list as a plain JSON array of integers, keeping the
// structured form human-inspectable instead of embedding compressed bytes.
func (l *IntegerList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Values())
}

// UnmarshalJSON decodes a JSON array of integers, applying the same
// validation as New.
func (l *IntegerList) UnmarshalJSON(data []byte) error {
	var values []uint64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}

	decoded, err := eliasfano.Encode(values)
	if err != nil {
		return err
	}
	l.list = decoded

	return nil
}
