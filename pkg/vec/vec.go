// Package vec implements a contiguous, dynamically grown sequence container
// with explicit element lifecycle management on top of rawmem blocks.
//
// A Vector tracks how many slots of its block hold live elements. Slots
// [0, Len) are live; slots [Len, Cap) are dead storage. Mutations that can
// fail state their guarantee: "strong" operations either succeed or leave
// the vector exactly as it was, "basic" operations may leave it valid but
// partially updated. A Vector is not safe for concurrent use.
package vec

import (
	"iter"

	"github.com/tangledbytes/go-vec/pkg/assert"
	"github.com/tangledbytes/go-vec/pkg/rawmem"
)

// Vector is an ordered sequence of T with owned backing storage.
// The zero value is not ready for use; call New.
type Vector[T any] struct {
	data rawmem.Block[T]
	size int
	lc   lifecycle[T]
}

// New returns an empty vector. No storage is allocated.
func New[T any]() *Vector[T] {
	return &Vector[T]{lc: lifecycleOf[T]()}
}

// NewWithSize returns a vector of exactly n default-constructed elements,
// with capacity n. If construction of any element fails, everything built
// so far is destroyed, the storage is released and the element's error is
// returned. Strong guarantee.
func NewWithSize[T any](n int) (*Vector[T], error) {
	v := New[T]()
	data, err := rawmem.New[T](n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := v.lc.init(data.At(i)); err != nil {
			v.lc.destroyAll(data.Slice(0, i))
			data.Release()
			return nil, err
		}
	}
	v.data.MoveFrom(&data)
	v.size = n
	return v, nil
}

// Move adopts src's storage and length in O(1) and leaves src valid and
// empty. Never fails.
func Move[T any](src *Vector[T]) *Vector[T] {
	dst := New[T]()
	dst.Swap(src)
	return dst
}

// Clone returns an element-wise copy of v with capacity equal to v.Len().
// On failure every copy made so far is destroyed and the storage released.
// Strong guarantee.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	out := New[T]()
	data, err := rawmem.New[T](v.size)
	if err != nil {
		return nil, err
	}
	for i := 0; i < v.size; i++ {
		if err := v.lc.clone(v.data.At(i), data.At(i)); err != nil {
			v.lc.destroyAll(data.Slice(0, i))
			data.Release()
			return nil, err
		}
	}
	out.data.MoveFrom(&data)
	out.size = v.size
	return out, nil
}

// Assign replaces v's contents with a copy of rhs.
//
// If rhs does not fit in v's current capacity, a full copy is built first
// and swapped in (strong guarantee). Otherwise elements are assigned in
// place: the overlapping prefix is clone-assigned, then the extras are
// clone-constructed or the excess destroyed. The in-place branch gives the
// basic guarantee only: a failure mid-prefix leaves already-assigned
// elements holding rhs's values while the rest keep their old ones.
func (v *Vector[T]) Assign(rhs *Vector[T]) error {
	if v == rhs {
		return nil
	}
	if rhs.size > v.data.Cap() {
		tmp, err := rhs.Clone()
		if err != nil {
			return err
		}
		v.Swap(tmp)
		tmp.Destroy()
		return nil
	}
	for i := 0; i < min(v.size, rhs.size); i++ {
		if err := v.lc.clone(rhs.data.At(i), v.data.At(i)); err != nil {
			return err
		}
	}
	if rhs.size > v.size {
		for i := v.size; i < rhs.size; i++ {
			if err := v.lc.clone(rhs.data.At(i), v.data.At(i)); err != nil {
				v.lc.destroyAll(v.data.Slice(v.size, i))
				return err
			}
		}
	} else {
		v.lc.destroyAll(v.data.Slice(rhs.size, v.size))
	}
	v.size = rhs.size
	return nil
}

// Swap exchanges contents with other in O(1). Never fails.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.data.Swap(&other.data)
	v.size, other.size = other.size, v.size
}

// Destroy destroys all live elements and releases the storage, leaving v
// empty with zero capacity. v remains usable.
func (v *Vector[T]) Destroy() {
	v.lc.destroyAll(v.data.Slice(0, v.size))
	v.size = 0
	v.data.Release()
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int {
	return v.data.Cap()
}

// At returns the address of element i. i < Len is the caller's contract,
// checked by a debug assertion only.
func (v *Vector[T]) At(i int) *T {
	assert.Assert(i >= 0 && i < v.size, "index %d out of range (len %d)", i, v.size)
	return v.data.At(i)
}

// Get returns element i by value.
func (v *Vector[T]) Get(i int) T {
	return *v.At(i)
}

// Set plain-assigns val into element i, bypassing any Cloner the element
// type may have.
func (v *Vector[T]) Set(i int, val T) {
	*v.At(i) = val
}

// All ranges over the live elements in order.
func (v *Vector[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.data.At(i)) {
				return
			}
		}
	}
}

// Reserve grows capacity to exactly n, relocating all live elements into a
// fresh block. It is a no-op when n does not exceed the current capacity.
// Strong guarantee: a failed relocation leaves v untouched.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.data.Cap() {
		return nil
	}
	newData, err := rawmem.New[T](n)
	if err != nil {
		return err
	}
	if err := v.relocate(v.data.Slice(0, v.size), newData.Slice(0, v.size)); err != nil {
		newData.Release()
		return err
	}
	v.adopt(&newData)
	return nil
}

// Resize changes the length to n. Growing reserves storage and
// default-constructs the newly exposed slots; a construction failure
// destroys the new batch and keeps the old length (capacity may have
// grown). Shrinking destroys the excess trailing elements and cannot fail.
func (v *Vector[T]) Resize(n int) error {
	assert.Assert(n >= 0, "negative size %d", n)
	if n > v.size {
		if err := v.Reserve(n); err != nil {
			return err
		}
		for i := v.size; i < n; i++ {
			if err := v.lc.init(v.data.At(i)); err != nil {
				v.lc.destroyAll(v.data.Slice(v.size, i))
				return err
			}
		}
	} else {
		v.lc.destroyAll(v.data.Slice(n, v.size))
	}
	v.size = n
	return nil
}

// PushBack appends val. The vector takes ownership of val as passed; a
// caller holding a Cloner element must clone it first if it wants to keep
// its own copy live. Strong guarantee.
func (v *Vector[T]) PushBack(val T) error {
	_, err := v.EmplaceBack(func(dst *T) error {
		v.lc.move(&val, dst)
		return nil
	})
	return err
}

// EmplaceBack constructs one element in the slot past the current last one
// by running ctor on dead storage, growing if needed, and returns its
// address. ctor runs before any existing element is relocated, so it may
// safely read the vector's current elements. Strong guarantee: if ctor or
// the relocation fails, v is unchanged.
func (v *Vector[T]) EmplaceBack(ctor func(*T) error) (*T, error) {
	if v.size == v.data.Cap() {
		newData, err := rawmem.New[T](v.grownCap())
		if err != nil {
			return nil, err
		}
		if err := ctor(newData.At(v.size)); err != nil {
			newData.Release()
			return nil, err
		}
		if err := v.relocate(v.data.Slice(0, v.size), newData.Slice(0, v.size)); err != nil {
			v.lc.destroy(newData.At(v.size))
			newData.Release()
			return nil, err
		}
		v.adopt(&newData)
	} else {
		if err := ctor(v.data.At(v.size)); err != nil {
			v.lc.wipe(v.data.At(v.size))
			return nil, err
		}
	}
	v.size++
	return v.data.At(v.size - 1), nil
}

// PopBack destroys the last element. Len > 0 is the caller's contract.
func (v *Vector[T]) PopBack() {
	assert.Assert(v.size > 0, "PopBack on empty vector")
	v.size--
	v.lc.destroy(v.data.At(v.size))
}

// Insert places val before element i (i == Len appends), shifting the tail
// right by one, and returns an iterator at the new element. Ownership of
// val passes to the vector, as with PushBack.
func (v *Vector[T]) Insert(i int, val T) (Iterator[T], error) {
	return v.Emplace(i, func(dst *T) error {
		v.lc.move(&val, dst)
		return nil
	})
}

// Emplace constructs one element before position i by running ctor on dead
// storage and returns an iterator at it. 0 <= i <= Len is the caller's
// contract.
//
// When capacity is exhausted, the new element is constructed at its final
// slot in a fresh block before anything else is touched, then the prefix
// and suffix are relocated around it: strong guarantee. Within capacity the
// new value is materialized in a local first, so a ctor failure leaves the
// vector untouched; the shift itself transfers existing elements and cannot
// fail for the element kinds this container supports.
func (v *Vector[T]) Emplace(i int, ctor func(*T) error) (Iterator[T], error) {
	assert.Assert(i >= 0 && i <= v.size, "position %d out of range (len %d)", i, v.size)
	switch {
	case v.size == v.data.Cap():
		newData, err := rawmem.New[T](v.grownCap())
		if err != nil {
			return Iterator[T]{}, err
		}
		if err := ctor(newData.At(i)); err != nil {
			newData.Release()
			return Iterator[T]{}, err
		}
		if err := v.relocate(v.data.Slice(0, i), newData.Slice(0, i)); err != nil {
			v.lc.destroy(newData.At(i))
			newData.Release()
			return Iterator[T]{}, err
		}
		if err := v.relocate(v.data.Slice(i, v.size), newData.Slice(i+1, v.size+1)); err != nil {
			v.lc.destroyAll(newData.Slice(0, i))
			v.lc.destroy(newData.At(i))
			newData.Release()
			return Iterator[T]{}, err
		}
		v.adopt(&newData)
		v.size++

	case i < v.size:
		var tmp T
		if err := ctor(&tmp); err != nil {
			return Iterator[T]{}, err
		}
		// Extend by moving the last element into the dead tail slot, shift
		// (i, size-1) right back to front, then drop tmp into the vacated
		// slot. Only ctor could fail, and it already ran.
		v.lc.move(v.data.At(v.size-1), v.data.At(v.size))
		for j := v.size - 1; j > i; j-- {
			v.lc.move(v.data.At(j-1), v.data.At(j))
		}
		v.lc.move(&tmp, v.data.At(i))
		v.lc.destroy(&tmp)
		v.size++

	default: // i == size, room available
		if err := ctor(v.data.At(v.size)); err != nil {
			v.lc.wipe(v.data.At(v.size))
			return Iterator[T]{}, err
		}
		v.size++
	}
	return v.iter(i), nil
}

// Erase removes element i, shifting the tail left by one, and returns an
// iterator at the slot now holding the following element (End if the last
// element was erased). i < Len is the caller's contract.
//
// For element types shifted by clone the guarantee is basic only: a clone
// failure mid-shift returns the error with the prefix already reassigned
// and the length unchanged.
func (v *Vector[T]) Erase(i int) (Iterator[T], error) {
	assert.Assert(i >= 0 && i < v.size, "position %d out of range (len %d)", i, v.size)
	if v.lc.moveRelocate {
		for j := i; j < v.size-1; j++ {
			v.lc.move(v.data.At(j+1), v.data.At(j))
		}
	} else {
		for j := i; j < v.size-1; j++ {
			if err := v.lc.clone(v.data.At(j+1), v.data.At(j)); err != nil {
				return Iterator[T]{}, err
			}
		}
	}
	v.size--
	v.lc.destroy(v.data.At(v.size))
	return v.iter(i), nil
}

// grownCap is the doubling growth policy: the capacity used when one more
// slot is needed and none is free.
func (v *Vector[T]) grownCap() int {
	if c := v.data.Cap(); c > 0 {
		return 2 * c
	}
	return 1
}

// relocate transfers the live elements src into the dead slots dst, by
// move or clone per the element's capabilities. On a clone failure the
// clones already made are destroyed and the error returned; src is never
// modified on the clone path, so the caller can discard dst and keep its
// original state.
func (v *Vector[T]) relocate(src, dst []T) error {
	if v.lc.moveRelocate {
		for i := range src {
			v.lc.move(&src[i], &dst[i])
		}
		return nil
	}
	for i := range src {
		if err := v.lc.clone(&src[i], &dst[i]); err != nil {
			v.lc.destroyAll(dst[:i])
			return err
		}
	}
	return nil
}

// adopt destroys the old elements and swaps the freshly populated block in.
// The swap itself cannot fail, which is what makes the grow paths atomic.
func (v *Vector[T]) adopt(newData *rawmem.Block[T]) {
	v.lc.destroyAll(v.data.Slice(0, v.size))
	v.data.Swap(newData)
	newData.Release()
}
