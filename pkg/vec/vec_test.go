package vec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tangledbytes/go-vec/pkg/vec"
	"github.com/tangledbytes/go-vec/pkg/vec/vectest"
)

func TestNew_Empty(t *testing.T) {
	v := vec.New[int]()
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())
}

func TestNewWithSize_ValueConstructs(t *testing.T) {
	v, err := vec.NewWithSize[int](100)
	require.NoError(t, err)

	assert.Equal(t, 100, v.Len())
	assert.Equal(t, 100, v.Cap())
	for i := 0; i < v.Len(); i++ {
		assert.Zero(t, v.Get(i))
	}
}

func TestNewWithSize_CountsConstructions(t *testing.T) {
	vectest.ResetAll()

	v, err := vec.NewWithSize[vectest.Tracked](10)
	require.NoError(t, err)
	assert.Equal(t, 10, vectest.TrackedOps.Inits)
	assert.Equal(t, 10, vectest.TrackedOps.Alive())
	for i := 0; i < v.Len(); i++ {
		assert.True(t, v.At(i).IsAlive())
	}

	v.Destroy()
	assert.Equal(t, 0, vectest.TrackedOps.Alive())
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())
}

func TestNewWithSize_RollsBackOnConstructionFailure(t *testing.T) {
	vectest.ResetAll()
	vectest.TrackedOps.FailInitCountdown = 5

	_, err := vec.NewWithSize[vectest.Tracked](10)
	assert.ErrorIs(t, err, vectest.ErrInjected)
	assert.Equal(t, 4, vectest.TrackedOps.Inits, "constructions before the failing one")
	assert.Equal(t, 0, vectest.TrackedOps.Alive(), "everything built was torn down")
}

func TestReserve_NoOpWithinCapacity(t *testing.T) {
	v, err := vec.NewWithSize[int](8)
	require.NoError(t, err)
	p := v.At(0)

	require.NoError(t, v.Reserve(4))
	assert.Equal(t, 8, v.Cap())
	assert.Equal(t, 8, v.Len())
	assert.Same(t, p, v.At(0), "no relocation happened")
}

func TestReserve_GrowsEmptyVector(t *testing.T) {
	v := vec.New[int]()
	require.NoError(t, v.Reserve(100))
	assert.Equal(t, 100, v.Cap())
	assert.Equal(t, 0, v.Len())
}

func TestReserve_RelocatesByMoveWhenMoveIsDeclared(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.Tracked](8)
	require.NoError(t, err)

	before := vectest.TrackedOps
	require.NoError(t, v.Reserve(16))

	assert.Equal(t, 16, v.Cap())
	assert.Equal(t, 8, v.Len())
	assert.Equal(t, before.Moves+8, vectest.TrackedOps.Moves)
	assert.Equal(t, before.Clones, vectest.TrackedOps.Clones, "no copies during a move relocation")
	assert.Equal(t, 8, vectest.TrackedOps.Alive())
}

func TestReserve_RelocatesByCloneWithoutDeclaredMove(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.CopyOnly](8)
	require.NoError(t, err)

	require.NoError(t, v.Reserve(16))

	assert.Equal(t, 16, v.Cap())
	assert.Equal(t, 8, vectest.CopyOnlyOps.Clones)
	assert.Equal(t, 8, vectest.CopyOnlyOps.Alive())
}

func TestReserve_CloneFailureLeavesVectorUntouched(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.CopyOnly](8)
	require.NoError(t, err)
	p := v.At(0)
	v.At(4).FailClone = true

	err = v.Reserve(16)
	assert.ErrorIs(t, err, vectest.ErrInjected)
	assert.Equal(t, 8, v.Cap())
	assert.Equal(t, 8, v.Len())
	assert.Same(t, p, v.At(0))
	assert.Equal(t, 8, vectest.CopyOnlyOps.Alive(), "partial clones were destroyed")
	for i := 0; i < v.Len(); i++ {
		assert.True(t, v.At(i).IsAlive())
	}
}

func TestClone_IndependentCopy(t *testing.T) {
	v, err := vec.NewWithSize[int](10)
	require.NoError(t, err)
	v.Set(3, 42)

	c, err := v.Clone()
	require.NoError(t, err)

	assert.Equal(t, v.Len(), c.Len())
	assert.Equal(t, v.Len(), c.Cap(), "clone capacity matches element count")
	assert.Equal(t, 42, c.Get(3))
	assert.NotSame(t, v.At(3), c.At(3))

	v.Set(3, 7)
	assert.Equal(t, 42, c.Get(3), "copy unaffected by the original")
}

func TestClone_RollsBackOnElementFailure(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.Tracked](100)
	require.NoError(t, err)
	v.At(50).FailClone = true

	_, err = v.Clone()
	assert.ErrorIs(t, err, vectest.ErrInjected)
	assert.Equal(t, 50, vectest.TrackedOps.Clones, "copies made before the failing one")
	assert.Equal(t, 100, vectest.TrackedOps.Alive(), "every copy was destroyed again")
}

func TestAssign_GrowsViaFullCopyAndSwap(t *testing.T) {
	vectest.ResetAll()
	small, err := vec.NewWithSize[vectest.Tracked](10)
	require.NoError(t, err)
	large, err := vec.NewWithSize[vectest.Tracked](20)
	require.NoError(t, err)
	large.At(19).ID = 42

	require.NoError(t, small.Assign(large))

	assert.Equal(t, 20, small.Len())
	assert.Equal(t, 42, small.At(19).ID)
	assert.Equal(t, 40, vectest.TrackedOps.Alive(), "both vectors fully populated")
	assert.Equal(t, 10, vectest.TrackedOps.Destroys, "the old contents died")
}

func TestAssign_InPlaceShrinking(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.Tracked](100)
	require.NoError(t, err)
	rhs, err := vec.NewWithSize[vectest.Tracked](50)
	require.NoError(t, err)
	rhs.At(25).ID = 42

	before := vectest.TrackedOps
	require.NoError(t, v.Assign(rhs))

	assert.Equal(t, 50, v.Len())
	assert.Equal(t, 100, v.Cap(), "no reallocation in place")
	assert.Equal(t, 42, v.At(25).ID)
	assert.Equal(t, before.CloneAssigns+50, vectest.TrackedOps.CloneAssigns)
	assert.Equal(t, before.Destroys+50, vectest.TrackedOps.Destroys, "excess trailing elements destroyed")
}

func TestAssign_InPlaceGrowingWithinCapacity(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.Tracked](50)
	require.NoError(t, err)
	require.NoError(t, v.Reserve(101))
	rhs, err := vec.NewWithSize[vectest.Tracked](100)
	require.NoError(t, err)

	before := vectest.TrackedOps
	require.NoError(t, v.Assign(rhs))

	assert.Equal(t, 100, v.Len())
	assert.Equal(t, 101, v.Cap())
	assert.Equal(t, before.CloneAssigns+50, vectest.TrackedOps.CloneAssigns, "overlapping prefix assigned")
	assert.Equal(t, before.Clones+50, vectest.TrackedOps.Clones, "extras constructed")
}

func TestAssign_SelfIsNoOp(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.Tracked](5)
	require.NoError(t, err)

	before := vectest.TrackedOps
	require.NoError(t, v.Assign(v))
	assert.Equal(t, before, vectest.TrackedOps)
	assert.Equal(t, 5, v.Len())
}

func TestMove_AdoptsStorageInConstantTime(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.Tracked](100)
	require.NoError(t, err)
	v.At(50).ID = 42
	p := v.At(50)

	moved := vec.Move(v)

	assert.Equal(t, 100, moved.Len())
	assert.Equal(t, 42, moved.At(50).ID)
	assert.Same(t, p, moved.At(50), "elements kept their addresses")
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())
	assert.Equal(t, 0, vectest.TrackedOps.Moves, "no element was touched")
	assert.Equal(t, 0, vectest.TrackedOps.Clones)
}

func TestSwap_ExchangesContents(t *testing.T) {
	a, err := vec.NewWithSize[int](3)
	require.NoError(t, err)
	a.Set(0, 1)
	b, err := vec.NewWithSize[int](7)
	require.NoError(t, err)
	b.Set(0, 2)
	pa := a.At(0)

	a.Swap(b)

	assert.Equal(t, 7, a.Len())
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 2, a.Get(0))
	assert.Equal(t, 1, b.Get(0))
	assert.Same(t, pa, b.At(0), "storage exchanged, not copied")
}

func TestResize_GrowValueConstructs(t *testing.T) {
	vectest.ResetAll()
	v := vec.New[vectest.Tracked]()

	require.NoError(t, v.Resize(100))
	assert.Equal(t, 100, v.Len())
	assert.Equal(t, 100, v.Cap())
	assert.Equal(t, 100, vectest.TrackedOps.Inits)
}

func TestResize_ShrinkDestroysExcess(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.Tracked](100)
	require.NoError(t, err)

	require.NoError(t, v.Resize(10))
	assert.Equal(t, 10, v.Len())
	assert.Equal(t, 100, v.Cap(), "shrinking never releases storage")
	assert.Equal(t, 90, vectest.TrackedOps.Destroys)
	assert.Equal(t, 10, vectest.TrackedOps.Alive())
}

func TestResize_ConstructionFailureKeepsOldLength(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.Tracked](4)
	require.NoError(t, err)

	vectest.TrackedOps.FailInitCountdown = 3
	err = v.Resize(8)
	assert.ErrorIs(t, err, vectest.ErrInjected)
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, 8, v.Cap(), "capacity may have grown before the failure")
	assert.Equal(t, 4, vectest.TrackedOps.Alive())
}

func TestPushBack_GrowthSequence(t *testing.T) {
	v := vec.New[int]()
	caps := []int{1, 2, 4}
	for i, n := range []int{1, 2, 3} {
		require.NoError(t, v.PushBack(n))
		assert.Equal(t, caps[i], v.Cap())
	}

	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 4, v.Cap())
	for i, want := range []int{1, 2, 3} {
		assert.Equal(t, want, v.Get(i))
	}
}

func TestPushBack_ValuesSurviveRelocation(t *testing.T) {
	v := vec.New[int]()
	for i := 0; i < 1000; i++ {
		require.NoError(t, v.PushBack(i))
	}
	for i := 0; i < 1000; i++ {
		assert.Equal(t, i, v.Get(i))
	}
}

func TestPushBack_SelfElementWithForcedRelocation(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.Tracked](1)
	require.NoError(t, err)
	require.Equal(t, v.Len(), v.Cap(), "the push below must reallocate")
	v.At(0).ID = 42

	require.NoError(t, v.PushBack(v.Get(0)))

	assert.Equal(t, 2, v.Len())
	assert.True(t, v.At(0).IsAlive())
	assert.True(t, v.At(1).IsAlive())
	assert.Equal(t, 42, v.At(0).ID)
	assert.Equal(t, 42, v.At(1).ID)
	assert.Equal(t, 2, vectest.TrackedOps.Alive())
}

func TestPopBack_DestroysLast(t *testing.T) {
	vectest.ResetAll()
	v := vec.New[vectest.Tracked]()
	require.NoError(t, v.PushBack(vectest.NewTracked(7, "x")))

	v.PopBack()
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 1, v.Cap(), "capacity survives PopBack")
	assert.Equal(t, 0, vectest.TrackedOps.Alive())
}

func TestEmplaceBack_ReturnsAddressOfNewElement(t *testing.T) {
	vectest.ResetAll()
	v := vec.New[vectest.Tracked]()

	p, err := v.EmplaceBack(vectest.MakeTracked(42, "ivan"))
	require.NoError(t, err)

	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 1, v.Cap())
	assert.Same(t, v.At(0), p)
	assert.Equal(t, 42, p.ID)
	assert.Equal(t, "ivan", p.Name)
	assert.Equal(t, 1, vectest.TrackedOps.ValueInits)
	assert.Equal(t, 1, vectest.TrackedOps.Alive())
}

func TestEmplaceBack_CtorFailureAtFullCapacityLeavesVectorUntouched(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.Tracked](1)
	require.NoError(t, err)
	require.Equal(t, v.Len(), v.Cap())

	_, err = v.EmplaceBack(func(*vectest.Tracked) error { return vectest.ErrInjected })
	assert.ErrorIs(t, err, vectest.ErrInjected)
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 1, v.Cap(), "no block was adopted")
	assert.True(t, v.At(0).IsAlive())
	assert.Equal(t, 1, vectest.TrackedOps.Alive())
}

func TestEmplaceBack_CtorFailureWithinCapacityLeavesVectorUntouched(t *testing.T) {
	vectest.ResetAll()
	v, err := vec.NewWithSize[vectest.Tracked](1)
	require.NoError(t, err)
	require.NoError(t, v.Reserve(2))

	_, err = v.EmplaceBack(func(*vectest.Tracked) error { return vectest.ErrInjected })
	assert.ErrorIs(t, err, vectest.ErrInjected)
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 2, v.Cap())
	assert.Equal(t, 1, vectest.TrackedOps.Alive())
}

func TestPlainStructElements(t *testing.T) {
	v := vec.New[vectest.Item]()
	for i := 0; i < 100; i++ {
		require.NoError(t, v.PushBack(vectest.Item{Value: i}))
	}

	assert.Equal(t, 100, v.Len())
	assert.Equal(t, 128, v.Cap())
	for i := 0; i < v.Len(); i++ {
		assert.Equal(t, i, v.At(i).Value)
	}

	it, err := v.Erase(10)
	require.NoError(t, err)
	assert.Equal(t, 11, it.Ptr().Value)
	assert.Equal(t, 99, v.Len())
}

func TestDestroy_VectorRemainsUsable(t *testing.T) {
	v, err := vec.NewWithSize[int](5)
	require.NoError(t, err)

	v.Destroy()
	require.NoError(t, v.PushBack(9))
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 9, v.Get(0))
}
