// Package transport
// Author: momentics <momentics@gmail.com>
//
// Factory and per-kind feature table.

package transport

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/momentics/c2c-bench/api"
	"github.com/momentics/c2c-bench/internal/shm"
	"github.com/momentics/c2c-bench/pool"
)

// Transport kinds.
const (
	KindQueue     = "queue"
	KindRing      = "ring"
	KindHandshake = "handshake"
)

// DefaultRingBackoff is the producer sleep after a failed ring allocation.
const DefaultRingBackoff = time.Millisecond

// Kinds lists accepted transport kinds.
func Kinds() []string { return []string{KindQueue, KindRing, KindHandshake} }

var features = map[string]api.TransportFeatures{
	KindQueue: {
		MultiProducer: true,
		Modes:         []api.Mode{api.ModeWrite, api.ModeWriteRead},
		DefaultMode:   api.ModeWriteRead,
	},
	KindRing: {
		Modes:       []api.Mode{api.ModeWriteRead},
		DefaultMode: api.ModeWriteRead,
	},
	KindHandshake: {
		Modes:       []api.Mode{api.ModeRoundTrip},
		DefaultMode: api.ModeRoundTrip,
	},
}

// Features returns the limits of kind.
func Features(kind string) (api.TransportFeatures, error) {
	f, ok := features[kind]
	if !ok {
		return api.TransportFeatures{}, fmt.Errorf("%w: unknown transport %q", api.ErrInvalidConfig, kind)
	}
	return f, nil
}

// Options configures New.
type Options struct {
	Kind string
	Mode api.Mode

	QueueBackend  string
	QueueCapacity int

	RingBytes   int
	RingBackoff time.Duration

	// Samples is the number of handshakes per record.
	Samples int

	Log zerolog.Logger
}

// New creates the transport for one run over arena.
func New(opts Options, arena *pool.SlotArena) (api.Transport, error) {
	f, err := Features(opts.Kind)
	if err != nil {
		return nil, err
	}
	if !f.Supports(opts.Mode) {
		return nil, fmt.Errorf("%w: transport %s does not support mode %s", api.ErrInvalidConfig, opts.Kind, opts.Mode)
	}
	switch opts.Kind {
	case KindQueue:
		capacity := opts.QueueCapacity
		if capacity == 0 {
			capacity = pool.DefaultQueueCapacity
		}
		return NewQueueTransport(opts.QueueBackend, capacity, opts.Mode)
	case KindRing:
		size := opts.RingBytes
		if size == 0 {
			size = shm.DefaultSegmentSize
		}
		backoff := opts.RingBackoff
		if backoff == 0 {
			backoff = DefaultRingBackoff
		}
		return NewRingTransport(size, backoff, arena, opts.Log)
	default:
		return NewHandshakeTransport(opts.Samples, arena), nil
	}
}
