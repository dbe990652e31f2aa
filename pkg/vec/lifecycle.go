package vec

// Element lifecycle capabilities. A Vector inspects the element type once,
// when it is created, and drives every construct/copy/move/destroy through
// the detected set. Types that implement none of these interfaces are
// handled by plain assignment and zeroing, which can never fail.

// Cloner is implemented by element types whose copies must be made
// explicitly and may fail. CloneTo writes a copy of the receiver into dst.
// dst is either a dead slot (copy construction) or a live element (copy
// assignment); implementations that care can tell the two apart themselves.
type Cloner[T any] interface {
	CloneTo(dst *T) error
}

// Mover is implemented by element types that can transfer their contents
// into dst without any possibility of failure. The donor must be left in a
// valid, reusable state. Implementing Mover is the signal that relocation
// may move elements instead of cloning them.
type Mover[T any] interface {
	MoveTo(dst *T)
}

// Destroyer is implemented by element types that need an end-of-life hook.
// Destroy cannot fail; the slot is zeroed afterwards regardless.
type Destroyer interface {
	Destroy()
}

// Initializer is implemented by element types whose default construction
// does real work and may fail. Absent this interface, a freshly exposed
// slot simply holds the zero value.
type Initializer interface {
	Init() error
}

// lifecycle is the capability set of one element type, resolved once per
// Vector instantiation.
type lifecycle[T any] struct {
	hasInit    bool
	hasClone   bool
	hasMove    bool
	hasDestroy bool

	// moveRelocate reports whether relocation and shifting transfer
	// elements by move rather than by clone. Moves cannot fail, so a type
	// with a Mover is always moved; a type with no Cloner has no other
	// option. A type that clones fallibly but has no Mover is cloned, so
	// that a failure mid-relocation leaves the originals untouched.
	moveRelocate bool
}

func lifecycleOf[T any]() lifecycle[T] {
	var lc lifecycle[T]
	p := (*T)(nil)
	_, lc.hasInit = any(p).(Initializer)
	_, lc.hasClone = any(p).(Cloner[T])
	_, lc.hasMove = any(p).(Mover[T])
	_, lc.hasDestroy = any(p).(Destroyer)
	lc.moveRelocate = lc.hasMove || !lc.hasClone
	return lc
}

// init default-constructs the dead slot p.
func (lc lifecycle[T]) init(p *T) error {
	if !lc.hasInit {
		return nil
	}
	return any(p).(Initializer).Init()
}

// clone copies *src into dst. dst may be dead (construction) or live
// (assignment).
func (lc lifecycle[T]) clone(src, dst *T) error {
	if lc.hasClone {
		return any(src).(Cloner[T]).CloneTo(dst)
	}
	*dst = *src
	return nil
}

// move transfers *src into dst. Never fails.
func (lc lifecycle[T]) move(src, dst *T) {
	if lc.hasMove {
		any(src).(Mover[T]).MoveTo(dst)
		return
	}
	*dst = *src
}

// destroy ends the life of the element at p and zeroes the slot so the GC
// can reclaim anything it referenced.
func (lc lifecycle[T]) destroy(p *T) {
	if lc.hasDestroy {
		any(p).(Destroyer).Destroy()
	}
	var zero T
	*p = zero
}

func (lc lifecycle[T]) destroyAll(s []T) {
	for i := range s {
		lc.destroy(&s[i])
	}
}

// wipe returns a slot to its dead zero state without running the Destroy
// hook. Used after a constructor fails partway into a slot that never
// became live.
func (lc lifecycle[T]) wipe(p *T) {
	var zero T
	*p = zero
}
