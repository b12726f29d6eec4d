// File: pool/arena.go
// Package pool implements the per-run slot arena.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"fmt"
	"unsafe"

	"github.com/momentics/c2c-bench/api"
)

// MaxSlots bounds a single run's arena (64 B each, 4 GiB total).
const MaxSlots = 1 << 26

// Range is a producer's half-open index range [Lo, Hi) into the arena.
type Range struct {
	Lo, Hi int
}

// Len returns the number of slots in the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// SlotArena is the run's slot array, aligned to a cache line boundary.
// Producers write Start only inside their own Range; the single consumer
// writes End. Slots are read-only once the run joins.
type SlotArena struct {
	raw   []byte
	slots []api.Slot
}

// NewSlotArena allocates n zeroed slots with Seq set to the slot index.
func NewSlotArena(n int) (*SlotArena, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: arena size %d", api.ErrInvalidConfig, n)
	}
	if n > MaxSlots {
		return nil, fmt.Errorf("%w: arena size %d exceeds %d slots", api.ErrResourceExhausted, n, MaxSlots)
	}

	// Spare bytes let the view start on a cache line boundary.
	raw := make([]byte, n*api.SlotSize+api.CacheLineSize)
	off := 0
	if rem := int(uintptr(unsafe.Pointer(&raw[0])) % uintptr(api.CacheLineSize)); rem != 0 {
		off = api.CacheLineSize - rem
	}
	slots := unsafe.Slice((*api.Slot)(unsafe.Pointer(&raw[off])), n)
	for i := range slots {
		slots[i].Seq = uint64(i)
	}
	return &SlotArena{raw: raw, slots: slots}, nil
}

// Len returns the slot count.
func (a *SlotArena) Len() int { return len(a.slots) }

// Slots returns the full slot view.
func (a *SlotArena) Slots() []api.Slot { return a.slots }

// At returns a pointer to slot i.
func (a *SlotArena) At(i int) *api.Slot { return &a.slots[i] }

// Partition splits the arena into k equal contiguous ranges, one per producer.
func (a *SlotArena) Partition(k int) ([]Range, error) {
	if k <= 0 || len(a.slots)%k != 0 {
		return nil, fmt.Errorf("%w: cannot split %d slots across %d producers",
			api.ErrInvalidConfig, len(a.slots), k)
	}
	per := len(a.slots) / k
	out := make([]Range, k)
	for i := range out {
		out[i] = Range{Lo: i * per, Hi: (i + 1) * per}
	}
	return out, nil
}

// View returns the slots of r.
func (a *SlotArena) View(r Range) []api.Slot { return a.slots[r.Lo:r.Hi:r.Hi] }
