// File: internal/concurrency/latch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// One-shot readiness barrier between the consumer and its producers.

package concurrency

import "sync"

// Latch is opened exactly once; waiters block until then.
type Latch struct {
	once sync.Once
	ch   chan struct{}
}

// NewLatch returns a closed-for-business latch.
func NewLatch() *Latch {
	return &Latch{ch: make(chan struct{})}
}

// Open releases all current and future waiters. Extra calls are no-ops.
func (l *Latch) Open() {
	l.once.Do(func() { close(l.ch) })
}

// Wait blocks until Open.
func (l *Latch) Wait() { <-l.ch }

// Done exposes the latch for select.
func (l *Latch) Done() <-chan struct{} { return l.ch }

// IsOpen reports whether Open has been called.
func (l *Latch) IsOpen() bool {
	select {
	case <-l.ch:
		return true
	default:
		return false
	}
}
