// File: pool/mutex_queue.go
// Author: momentics <momentics@gmail.com>
//
// Mutex-guarded bounded queue over eapache/queue.

package pool

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/c2c-bench/api"
)

// MutexQueue bounds an eapache/queue with a fixed capacity.
type MutexQueue[T any] struct {
	mu  sync.Mutex
	q   *queue.Queue
	cap int
}

var _ api.Ring[int] = (*MutexQueue[int])(nil)

// NewMutexQueue creates a queue that rejects writes beyond capacity.
func NewMutexQueue[T any](capacity int) *MutexQueue[T] {
	if capacity <= 0 {
		panic("mutex queue capacity must be positive")
	}
	return &MutexQueue[T]{q: queue.New(), cap: capacity}
}

// Enqueue adds val; returns false if full.
func (m *MutexQueue[T]) Enqueue(val T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.q.Length() >= m.cap {
		return false
	}
	m.q.Add(val)
	return true
}

// Dequeue removes the oldest item; ok false if empty.
func (m *MutexQueue[T]) Dequeue() (res T, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.q.Length() == 0 {
		return res, false
	}
	return m.q.Remove().(T), true
}

// Len returns the number of queued items.
func (m *MutexQueue[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.q.Length()
}

// Cap returns the configured capacity.
func (m *MutexQueue[T]) Cap() int { return m.cap }
