// Package vectest provides instrumented element types for exercising vec
// containers. Each probe kind records its lifecycle traffic in a
// package-level Counters value and carries a liveness cookie, so tests can
// check how many elements were constructed, copied, moved and destroyed by
// an operation and that no slot was left half-alive.
//
// The package is test support; Reset the counters between scenarios.
package vectest

import (
	"errors"

	"github.com/tangledbytes/go-vec/pkg/vec"
)

// ErrInjected is the failure raised by probes whose fault injection
// triggered.
var ErrInjected = errors.New("vectest: injected failure")

// aliveCookie marks a constructed probe. Destroy clears it.
const aliveCookie uint32 = 0xdeadbeef

// Counters records lifecycle traffic for one probe kind. Constructions
// into dead slots and assignments over live elements are counted
// separately, distinguished by the destination's cookie.
type Counters struct {
	Inits        int // default constructions
	ValueInits   int // constructions with explicit contents
	Clones       int // copy constructions
	CloneAssigns int // copy assignments
	Moves        int // move constructions
	MoveAssigns  int // move assignments
	Destroys     int

	// FailInitCountdown, while positive, is decremented by each default
	// construction; the construction that brings it to zero fails with
	// ErrInjected before being counted.
	FailInitCountdown int
}

// Alive returns the number of probes whose life started inside a container
// slot or a container-managed temporary and has not ended yet. Detached
// values made by NewTracked are not part of the count until a container
// moves or clones them in.
func (c *Counters) Alive() int {
	return c.Inits + c.ValueInits + c.Clones + c.Moves - c.Destroys
}

// Reset zeroes the counters and fault injection.
func (c *Counters) Reset() {
	*c = Counters{}
}

// TrackedOps, CopyOnlyOps and MoveOnlyOps collect the traffic of the
// respective probe kinds.
var (
	TrackedOps  Counters
	CopyOnlyOps Counters
	MoveOnlyOps Counters
)

// Item is the plain probe: no lifecycle interfaces, handled entirely by
// assignment and zeroing.
type Item struct {
	Value int
}

// Tracked is the full-lifecycle probe: fallible default construction and
// copying, infallible moves, destruction hook. Because it implements
// vec.Mover, vectors of Tracked relocate by move.
type Tracked struct {
	ID   int
	Name string

	// FailClone makes every copy taken of this element fail.
	FailClone bool

	cookie uint32
}

var (
	_ vec.Initializer     = (*Tracked)(nil)
	_ vec.Cloner[Tracked] = (*Tracked)(nil)
	_ vec.Mover[Tracked]  = (*Tracked)(nil)
	_ vec.Destroyer       = (*Tracked)(nil)
)

// NewTracked returns a detached probe value with explicit contents. It is
// deliberately uncounted: its tracked life begins when a container moves or
// clones it into a slot.
func NewTracked(id int, name string) Tracked {
	return Tracked{ID: id, Name: name, cookie: aliveCookie}
}

// MakeTracked returns an emplace constructor that builds a probe with the
// given contents directly in the target slot.
func MakeTracked(id int, name string) func(*Tracked) error {
	return func(dst *Tracked) error {
		TrackedOps.ValueInits++
		dst.ID = id
		dst.Name = name
		dst.cookie = aliveCookie
		return nil
	}
}

// IsAlive reports whether the probe has been constructed and not destroyed.
func (t *Tracked) IsAlive() bool {
	return t.cookie == aliveCookie
}

func (t *Tracked) Init() error {
	if TrackedOps.FailInitCountdown > 0 {
		TrackedOps.FailInitCountdown--
		if TrackedOps.FailInitCountdown == 0 {
			return ErrInjected
		}
	}
	TrackedOps.Inits++
	t.cookie = aliveCookie
	return nil
}

func (t *Tracked) CloneTo(dst *Tracked) error {
	if t.FailClone {
		return ErrInjected
	}
	if dst.IsAlive() {
		TrackedOps.CloneAssigns++
	} else {
		TrackedOps.Clones++
	}
	dst.ID = t.ID
	dst.Name = t.Name
	dst.FailClone = t.FailClone
	dst.cookie = aliveCookie
	return nil
}

func (t *Tracked) MoveTo(dst *Tracked) {
	if dst.IsAlive() {
		TrackedOps.MoveAssigns++
	} else {
		TrackedOps.Moves++
	}
	dst.ID = t.ID
	dst.Name = t.Name
	dst.FailClone = t.FailClone
	dst.cookie = aliveCookie
	// The donor stays alive but is emptied.
	t.ID = 0
	t.Name = ""
	t.FailClone = false
}

func (t *Tracked) Destroy() {
	TrackedOps.Destroys++
	t.cookie = 0
}

// CopyOnly clones fallibly and declares no move, so vectors of CopyOnly
// must relocate by clone, leaving originals intact when a clone fails.
type CopyOnly struct {
	ID        int
	FailClone bool

	cookie uint32
}

var (
	_ vec.Initializer      = (*CopyOnly)(nil)
	_ vec.Cloner[CopyOnly] = (*CopyOnly)(nil)
	_ vec.Destroyer        = (*CopyOnly)(nil)
)

// IsAlive reports whether the probe has been constructed and not destroyed.
func (c *CopyOnly) IsAlive() bool {
	return c.cookie == aliveCookie
}

func (c *CopyOnly) Init() error {
	CopyOnlyOps.Inits++
	c.cookie = aliveCookie
	return nil
}

func (c *CopyOnly) CloneTo(dst *CopyOnly) error {
	if c.FailClone {
		return ErrInjected
	}
	if dst.IsAlive() {
		CopyOnlyOps.CloneAssigns++
	} else {
		CopyOnlyOps.Clones++
	}
	dst.ID = c.ID
	dst.FailClone = c.FailClone
	dst.cookie = aliveCookie
	return nil
}

func (c *CopyOnly) Destroy() {
	CopyOnlyOps.Destroys++
	c.cookie = 0
}

// MoveOnly moves and cannot be cloned; operations that would need a copy
// of a MoveOnly element (Clone, Assign) are not meaningful for it.
type MoveOnly struct {
	ID int

	cookie uint32
}

var (
	_ vec.Initializer     = (*MoveOnly)(nil)
	_ vec.Mover[MoveOnly] = (*MoveOnly)(nil)
	_ vec.Destroyer       = (*MoveOnly)(nil)
)

// IsAlive reports whether the probe has been constructed and not destroyed.
func (m *MoveOnly) IsAlive() bool {
	return m.cookie == aliveCookie
}

func (m *MoveOnly) Init() error {
	MoveOnlyOps.Inits++
	m.cookie = aliveCookie
	return nil
}

func (m *MoveOnly) MoveTo(dst *MoveOnly) {
	if dst.IsAlive() {
		MoveOnlyOps.MoveAssigns++
	} else {
		MoveOnlyOps.Moves++
	}
	dst.ID = m.ID
	dst.cookie = aliveCookie
	m.ID = 0
}

func (m *MoveOnly) Destroy() {
	MoveOnlyOps.Destroys++
	m.cookie = 0
}

// MakeMoveOnly returns an emplace constructor that builds a MoveOnly probe
// directly in the target slot.
func MakeMoveOnly(id int) func(*MoveOnly) error {
	return func(dst *MoveOnly) error {
		MoveOnlyOps.ValueInits++
		dst.ID = id
		dst.cookie = aliveCookie
		return nil
	}
}

// ResetAll resets every probe kind's counters.
func ResetAll() {
	TrackedOps.Reset()
	CopyOnlyOps.Reset()
	MoveOnlyOps.Reset()
}
