// Package transport
// Author: momentics <momentics@gmail.com>

package transport

import (
	"fmt"
	"sync/atomic"

	"github.com/momentics/c2c-bench/api"
	"github.com/momentics/c2c-bench/internal/concurrency"
	"github.com/momentics/c2c-bench/pool"
)

// QueueTransport carries slot pointers through a bounded queue. Ordering is
// FIFO per producer; producers interleave arbitrarily.
type QueueTransport struct {
	q    api.Ring[*api.Slot]
	name string
	busy atomic.Uint64
}

var _ api.Transport = (*QueueTransport)(nil)

// NewQueueTransport builds the queue with the given backend.
func NewQueueTransport(backend string, capacity int, mode api.Mode) (*QueueTransport, error) {
	q, err := pool.NewQueue[*api.Slot](backend, capacity)
	if err != nil {
		return nil, fmt.Errorf("transport: init queue: %w", err)
	}
	return &QueueTransport{q: q, name: "chan_" + mode.String()}, nil
}

func (t *QueueTransport) Name() string { return t.name }

// Send enqueues s or reports api.ErrBusy when the queue is full.
func (t *QueueTransport) Send(s *api.Slot) error {
	if t.q.Enqueue(s) {
		return nil
	}
	t.busy.Add(1)
	return api.ErrBusy
}

// Receive polls the queue once.
func (t *QueueTransport) Receive() (*api.Slot, bool) {
	return t.q.Dequeue()
}

// Done is a no-op: the consumer already wrote into the arena slot.
func (t *QueueTransport) Done(*api.Slot) {}

// Backoff spins.
func (t *QueueTransport) Backoff() { concurrency.Relax() }

func (t *QueueTransport) Stats() api.TransportStats {
	return api.TransportStats{Busy: t.busy.Load()}
}

func (t *QueueTransport) Close() error { return nil }
