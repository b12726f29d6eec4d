// Package transport
// Author: momentics <momentics@gmail.com>

package transport

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/c2c-bench/api"
	"github.com/momentics/c2c-bench/pool"
)

// handshakeLines keeps each counter on its own cache line.
//
// Ordering contract: a Store publishes every write the storing thread made
// before it (release); a Load observing that value sees them (acquire).
// Go's sync/atomic is sequentially consistent, which is stronger.
type handshakeLines struct {
	_           cpu.CacheLinePad
	producerSeq atomic.Uint64
	_           cpu.CacheLinePad
	consumerSeq atomic.Uint64
	_           cpu.CacheLinePad
}

// HandshakeTransport is a strict two-party ping-pong: the producer publishes
// sequence k and spins until the consumer echoes k. Each record performs
// samples exchanges, so the measured time covers samples round trips.
// It carries no payload and does not generalize to several producers.
type HandshakeTransport struct {
	lines   *handshakeLines
	arena   *pool.SlotArena
	samples uint64

	// producer side
	pseq       uint64
	handshakes uint64

	// consumer side
	cseq uint64
}

var _ api.Transport = (*HandshakeTransport)(nil)

// NewHandshakeTransport creates the counters. samples < 1 is treated as 1.
func NewHandshakeTransport(samples int, arena *pool.SlotArena) *HandshakeTransport {
	if samples < 1 {
		samples = 1
	}
	return &HandshakeTransport{
		lines:   new(handshakeLines),
		arena:   arena,
		samples: uint64(samples),
	}
}

func (t *HandshakeTransport) Name() string { return "store_load" }

// Samples returns the handshakes performed per record.
func (t *HandshakeTransport) Samples() int { return int(t.samples) }

// Send runs samples publish/echo exchanges. It never reports busy.
func (t *HandshakeTransport) Send(*api.Slot) error {
	for n := uint64(0); n < t.samples; n++ {
		t.pseq++
		t.lines.producerSeq.Store(t.pseq)
		for t.lines.consumerSeq.Load() != t.pseq {
		}
		t.handshakes++
	}
	return nil
}

// Receive echoes the next record's exchanges once the first is published.
func (t *HandshakeTransport) Receive() (*api.Slot, bool) {
	next := t.cseq + 1
	if t.lines.producerSeq.Load() != next {
		return nil, false
	}
	t.lines.consumerSeq.Store(next)
	for n := uint64(1); n < t.samples; n++ {
		next++
		for t.lines.producerSeq.Load() != next {
		}
		t.lines.consumerSeq.Store(next)
	}
	t.cseq = next
	return t.arena.At(int(next/t.samples) - 1), true
}

func (t *HandshakeTransport) Done(*api.Slot) {}

// Backoff is never needed; Send does not fail.
func (t *HandshakeTransport) Backoff() {}

func (t *HandshakeTransport) Stats() api.TransportStats {
	return api.TransportStats{Handshakes: t.handshakes}
}

func (t *HandshakeTransport) Close() error { return nil }
