// Package rawmem owns contiguous element storage with no element identity.
//
// A Block hands out addressable slots but never constructs, copies or
// destroys the values placed in them; that is the job of whoever builds on
// top of it. All failure reasoning for container mutations therefore lives
// above this package: a Block either exists or it does not.
package rawmem

import (
	"errors"
	"math"
	"unsafe"

	"github.com/tangledbytes/go-vec/pkg/assert"
)

// ErrOutOfMemory is returned when a storage request cannot be satisfied.
var ErrOutOfMemory = errors.New("rawmem: out of memory")

// Block is a single span of storage for exactly Cap() slots of T.
//
// A Block must not be copied; ownership moves only via Swap or MoveFrom.
// The zero Block is valid and owns nothing.
type Block[T any] struct {
	buf []T
}

// New allocates storage for exactly n slots of T. A request for zero slots
// allocates nothing. The slots hold no live values until the caller
// constructs into them.
func New[T any](n int) (Block[T], error) {
	buf, err := allocate[T](n)
	if err != nil {
		return Block[T]{}, err
	}
	return Block[T]{buf: buf}, nil
}

// Cap returns the number of slots the block owns.
func (b *Block[T]) Cap() int {
	return len(b.buf)
}

// At returns the address of slot i. The slot may or may not hold a live
// value; the caller tracks that.
func (b *Block[T]) At(i int) *T {
	assert.Assert(i >= 0 && i < len(b.buf), "slot %d out of range (cap %d)", i, len(b.buf))
	return &b.buf[i]
}

// Slice returns the slots [i, j). j may equal Cap, one past the last slot.
func (b *Block[T]) Slice(i, j int) []T {
	assert.Assert(i >= 0 && i <= j && j <= len(b.buf), "slot range [%d, %d) out of range (cap %d)", i, j, len(b.buf))
	return b.buf[i:j]
}

// Swap exchanges storage with other in O(1). It never fails and never
// touches slot contents.
func (b *Block[T]) Swap(other *Block[T]) {
	b.buf, other.buf = other.buf, b.buf
}

// MoveFrom adopts the donor's storage, leaving the donor empty. Any storage
// b previously owned is released; the caller must already have destroyed
// its values.
func (b *Block[T]) MoveFrom(donor *Block[T]) {
	b.buf = donor.buf
	donor.buf = nil
}

// Release drops the storage. The caller must already have destroyed any
// values it placed in the block.
func (b *Block[T]) Release() {
	b.buf = nil
}

func allocate[T any](n int) ([]T, error) {
	if n == 0 {
		return nil, nil
	}
	var t T
	size := int(unsafe.Sizeof(t))
	if n < 0 || (size > 0 && n > math.MaxInt/size) {
		return nil, ErrOutOfMemory
	}
	return make([]T, n), nil
}
