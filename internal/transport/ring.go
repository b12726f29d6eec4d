// Package transport
// Author: momentics <momentics@gmail.com>

package transport

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/rs/zerolog"

	"github.com/momentics/c2c-bench/api"
	"github.com/momentics/c2c-bench/internal/shm"
	"github.com/momentics/c2c-bench/pool"
)

// SharedRing is the producer/consumer surface of a shared-memory ring.
type SharedRing interface {
	Alloc(n int) []byte
	Commit()
	Fetch() []byte
	Release()
}

var _ SharedRing = (*shm.Ring)(nil)

// RingTransport copies each slot into a shared-memory ring. The consumer
// stamps End on the ring copy and Done persists it into the arena.
type RingTransport struct {
	ring    SharedRing
	seg     *shm.Segment
	arena   *pool.SlotArena
	backoff time.Duration
	log     zerolog.Logger

	busy uint64 // producer only
}

var _ api.Transport = (*RingTransport)(nil)

// NewRingTransport creates a segment holding ringBytes of ring data.
func NewRingTransport(ringBytes int, backoff time.Duration, arena *pool.SlotArena, log zerolog.Logger) (*RingTransport, error) {
	seg, err := shm.CreateSegment(shm.UniqueName(), shm.HeaderSize+ringBytes)
	if err != nil {
		return nil, fmt.Errorf("transport: %w: %w", api.ErrResourceExhausted, err)
	}
	ring, err := shm.NewRing(seg.Mem)
	if err != nil {
		seg.Close()
		return nil, fmt.Errorf("transport: %w: %w", api.ErrResourceExhausted, err)
	}
	log.Info().Str("path", seg.Path).Int("capacity", ring.Capacity()).Msg("create shm ringbuf")
	t := NewRingTransportOn(ring, backoff, arena, log)
	t.seg = seg
	return t, nil
}

// NewRingTransportOn wraps an existing ring.
func NewRingTransportOn(ring SharedRing, backoff time.Duration, arena *pool.SlotArena, log zerolog.Logger) *RingTransport {
	return &RingTransport{ring: ring, arena: arena, backoff: backoff, log: log}
}

func (t *RingTransport) Name() string { return "shm_rbuf" }

// Send allocates a slot-sized record and commits a copy of s.
func (t *RingTransport) Send(s *api.Slot) error {
	buf := t.ring.Alloc(api.SlotSize)
	if buf == nil {
		t.busy++
		return api.ErrBusy
	}
	*(*api.Slot)(unsafe.Pointer(&buf[0])) = *s
	t.ring.Commit()
	return nil
}

// Receive returns the ring copy of the oldest record.
func (t *RingTransport) Receive() (*api.Slot, bool) {
	buf := t.ring.Fetch()
	if buf == nil {
		return nil, false
	}
	return (*api.Slot)(unsafe.Pointer(&buf[0])), true
}

// Done copies the record into its arena slot and releases it.
func (t *RingTransport) Done(s *api.Slot) {
	*t.arena.At(int(s.Seq)) = *s
	t.ring.Release()
}

// Backoff sleeps; the same record is retried afterwards.
func (t *RingTransport) Backoff() {
	t.log.Debug().Dur("backoff", t.backoff).Msg("failed alloc bytes for write")
	time.Sleep(t.backoff)
}

func (t *RingTransport) Stats() api.TransportStats {
	return api.TransportStats{Busy: t.busy}
}

// Close unmaps and removes the segment.
func (t *RingTransport) Close() error {
	if t.seg == nil {
		return nil
	}
	path := t.seg.Path
	err := t.seg.Close()
	t.seg = nil
	if err != nil {
		return err
	}
	t.log.Info().Str("path", path).Msg("shm detach and remove")
	return nil
}
