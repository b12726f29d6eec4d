// File: pool/ring.go
// Author: momentics <momentics@gmail.com>
//
// Lock-free bounded MPSC queue for the queue transport.
// Each cell carries a sequence number; producers claim cells with a CAS on
// tail, the single consumer advances head without atomics contention.

package pool

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/c2c-bench/api"
)

type cell[T any] struct {
	seq atomic.Uint64
	val T
}

// RingBuffer is a bounded multi-producer/single-consumer queue (power-of-two size).
type RingBuffer[T any] struct {
	_     cpu.CacheLinePad
	tail  atomic.Uint64 // producers
	_     cpu.CacheLinePad
	head  atomic.Uint64 // consumer
	_     cpu.CacheLinePad
	mask  uint64
	cells []cell[T]
}

var _ api.Ring[int] = (*RingBuffer[int])(nil)

// NewRingBuffer allocates a ring buffer with size (must be power of two).
func NewRingBuffer[T any](size uint64) *RingBuffer[T] {
	if size == 0 || (size&(size-1)) != 0 {
		panic("ring buffer size must be power of two")
	}
	r := &RingBuffer[T]{
		mask:  size - 1,
		cells: make([]cell[T], size),
	}
	for i := range r.cells {
		r.cells[i].seq.Store(uint64(i))
	}
	return r
}

// Enqueue adds an item; returns false if full. Safe for concurrent producers.
func (r *RingBuffer[T]) Enqueue(val T) bool {
	for {
		pos := r.tail.Load()
		c := &r.cells[pos&r.mask]
		dif := int64(c.seq.Load()) - int64(pos)
		switch {
		case dif == 0:
			if r.tail.CompareAndSwap(pos, pos+1) {
				c.val = val
				c.seq.Store(pos + 1)
				return true
			}
		case dif < 0:
			return false
		}
	}
}

// Dequeue removes and returns (item, ok); ok==false if empty. Single consumer only.
func (r *RingBuffer[T]) Dequeue() (res T, ok bool) {
	pos := r.head.Load()
	c := &r.cells[pos&r.mask]
	if int64(c.seq.Load())-int64(pos+1) < 0 {
		return res, false
	}
	res = c.val
	var zero T
	c.val = zero
	c.seq.Store(pos + r.mask + 1)
	r.head.Store(pos + 1)
	return res, true
}

// Len returns number of items in the buffer.
func (r *RingBuffer[T]) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Cap returns logical buffer capacity.
func (r *RingBuffer[T]) Cap() int {
	return len(r.cells)
}
