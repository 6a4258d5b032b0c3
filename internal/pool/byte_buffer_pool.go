// Package pool provides pooled byte buffers for serialization paths.
//
// Serializing an integer list allocates one transient buffer scoped to the
// call; pooling keeps repeated serialize cycles allocation-free after warmup.
package pool

import (
	"io"
	"sync"
)

const (
	// ListBufferDefaultSize is the default capacity of a ByteBuffer obtained
	// from the pool. Most serialized lists fit well under 4KiB.
	ListBufferDefaultSize = 1024 * 4
	// ListBufferMaxThreshold is the largest buffer the pool retains; bigger
	// buffers are dropped to avoid pinning memory for outlier lists.
	ListBufferMaxThreshold = 1024 * 256
)

// ByteBuffer is a minimal growable byte buffer backed by a plain slice.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. If the buffer already has sufficient capacity, Grow does
// nothing.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	curLen := len(bb.B)
	if cap(bb.B)-curLen >= requiredBytes {
		return
	}

	newCap := cap(bb.B) + requiredBytes
	if newCap < ListBufferDefaultSize {
		newCap = ListBufferDefaultSize
	}
	grown := make([]byte, curLen, newCap)
	copy(grown, bb.B)
	bb.B = grown
}

// WriteTo writes the buffer contents to w, implementing io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)

	return int64(n), err
}

var listBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(ListBufferDefaultSize)
	},
}

// GetListBuffer obtains a reset ByteBuffer from the pool.
func GetListBuffer() *ByteBuffer {
	bb, _ := listBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutListBuffer returns a ByteBuffer to the pool. Oversized buffers are
// dropped so the pool does not accumulate outlier allocations.
func PutListBuffer(bb *ByteBuffer) {
	if bb == nil || bb.Cap() > ListBufferMaxThreshold {
		return
	}
	listBufferPool.Put(bb)
}
