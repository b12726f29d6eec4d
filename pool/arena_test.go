package pool

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/momentics/c2c-bench/api"
)

func TestSlotArenaAlignedAndSequenced(t *testing.T) {
	for _, n := range []int{1, 3, 20, 1000} {
		a, err := NewSlotArena(n)
		require.NoError(t, err)
		require.Equal(t, n, a.Len())
		addr := uintptr(unsafe.Pointer(a.At(0)))
		require.Zero(t, addr%uintptr(api.CacheLineSize), "arena of %d not line aligned", n)
		for i, s := range a.Slots() {
			require.Equal(t, uint64(i), s.Seq)
			require.False(t, s.HasEnd())
		}
	}
}

func TestSlotArenaRejectsEmpty(t *testing.T) {
	_, err := NewSlotArena(0)
	require.True(t, errors.Is(err, api.ErrInvalidConfig))
	_, err = NewSlotArena(MaxSlots + 1)
	require.True(t, errors.Is(err, api.ErrResourceExhausted))
}

func TestPartitionDisjoint(t *testing.T) {
	a, err := NewSlotArena(12)
	require.NoError(t, err)

	ranges, err := a.Partition(3)
	require.NoError(t, err)
	require.Equal(t, []Range{{0, 4}, {4, 8}, {8, 12}}, ranges)
	for _, r := range ranges {
		v := a.View(r)
		require.Len(t, v, 4)
		require.Equal(t, uint64(r.Lo), v[0].Seq)
	}

	_, err = a.Partition(5)
	require.Error(t, err)
}
