// File: pool/chan_queue.go
// Author: momentics <momentics@gmail.com>
//
// Buffered channel with try-write/poll-read semantics.

package pool

import "github.com/momentics/c2c-bench/api"

// ChanQueue adapts a buffered channel to api.Ring.
type ChanQueue[T any] struct {
	ch chan T
}

var _ api.Ring[int] = (*ChanQueue[int])(nil)

// NewChanQueue creates a channel-backed queue.
func NewChanQueue[T any](capacity int) *ChanQueue[T] {
	return &ChanQueue[T]{ch: make(chan T, capacity)}
}

func (c *ChanQueue[T]) Enqueue(val T) bool {
	select {
	case c.ch <- val:
		return true
	default:
		return false
	}
}

func (c *ChanQueue[T]) Dequeue() (res T, ok bool) {
	select {
	case res = <-c.ch:
		return res, true
	default:
		return res, false
	}
}

func (c *ChanQueue[T]) Len() int { return len(c.ch) }
func (c *ChanQueue[T]) Cap() int { return cap(c.ch) }
