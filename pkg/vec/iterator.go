package vec

import "github.com/tangledbytes/go-vec/pkg/assert"

// Iterator is a plain address into a vector's storage: the slab it was
// created over plus a slot index. It supports the usual pointer arithmetic.
//
// Any operation that reallocates or shifts elements invalidates existing
// iterators: they keep addressing the slab they were created over, which
// may no longer be the vector's storage. Only iterators returned by the
// mutation itself are meaningful afterwards.
type Iterator[T any] struct {
	buf []T
	idx int
}

func (v *Vector[T]) iter(i int) Iterator[T] {
	return Iterator[T]{buf: v.data.Slice(0, v.data.Cap()), idx: i}
}

// Begin returns an iterator at the first element.
func (v *Vector[T]) Begin() Iterator[T] {
	return v.iter(0)
}

// End returns an iterator one past the last element. It must not be
// dereferenced.
func (v *Vector[T]) End() Iterator[T] {
	return v.iter(v.size)
}

// Ptr returns the address of the element the iterator is at.
func (it Iterator[T]) Ptr() *T {
	assert.Assert(it.idx >= 0 && it.idx < len(it.buf), "iterator at %d outside storage (cap %d)", it.idx, len(it.buf))
	return &it.buf[it.idx]
}

// Value returns the element by value.
func (it Iterator[T]) Value() T {
	return *it.Ptr()
}

// Set plain-assigns val into the element.
func (it Iterator[T]) Set(val T) {
	*it.Ptr() = val
}

// Add returns an iterator offset by n slots.
func (it Iterator[T]) Add(n int) Iterator[T] {
	return Iterator[T]{buf: it.buf, idx: it.idx + n}
}

// Sub returns an iterator offset backward by n slots.
func (it Iterator[T]) Sub(n int) Iterator[T] {
	return it.Add(-n)
}

// Next returns the iterator one slot forward.
func (it Iterator[T]) Next() Iterator[T] {
	return it.Add(1)
}

// Prev returns the iterator one slot backward.
func (it Iterator[T]) Prev() Iterator[T] {
	return it.Add(-1)
}

// Index returns the slot index within the storage the iterator addresses.
func (it Iterator[T]) Index() int {
	return it.idx
}

// Distance returns the number of slots from it to other, positive when
// other is further along. Both must address the same storage.
func (it Iterator[T]) Distance(other Iterator[T]) int {
	assert.Assert(sameSlab(it.buf, other.buf), "iterators into different storage")
	return other.idx - it.idx
}

// Equal reports whether both iterators address the same slot of the same
// storage.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.idx == other.idx && sameSlab(it.buf, other.buf)
}

// Less reports whether it addresses an earlier slot than other within the
// same storage.
func (it Iterator[T]) Less(other Iterator[T]) bool {
	assert.Assert(sameSlab(it.buf, other.buf), "iterators into different storage")
	return it.idx < other.idx
}

func sameSlab[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
