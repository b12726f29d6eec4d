// File: internal/harness/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-run configuration and validation.

package harness

import (
	"fmt"
	"time"

	"github.com/momentics/c2c-bench/affinity"
	"github.com/momentics/c2c-bench/api"
	"github.com/momentics/c2c-bench/internal/concurrency"
	"github.com/momentics/c2c-bench/internal/transport"
	"github.com/momentics/c2c-bench/pool"
)

// MaxProducers bounds the producer thread count.
const MaxProducers = 32

// Config describes one experiment.
type Config struct {
	Transport       string        // queue, ring or handshake
	Mode            api.Mode      // which events a sample brackets
	Rounds          int           // outer loop count
	RecordsPerRound int           // records handed off back to back per round
	IntervalNs      int64         // busy pause between rounds
	ProducerCores   []int         // one entry per producer, affinity.NoCore = unpinned
	ConsumerCore    int           // affinity.NoCore = unpinned
	QueueBackend    string        // pool backend for the queue transport
	QueueCapacity   int           // queue slots
	RingBytes       int           // ring data bytes
	RingBackoff     time.Duration // producer sleep on a full ring
	Samples         int           // handshakes per record
	Warmup          time.Duration // per-thread busy warmup
	StartDelay      time.Duration // extra producer wait after the consumer is ready
}

// DefaultConfig returns a single unpinned producer over the queue transport.
func DefaultConfig() *Config {
	return &Config{
		Transport:       transport.KindQueue,
		Mode:            api.ModeWriteRead,
		Rounds:          1000,
		RecordsPerRound: 1,
		IntervalNs:      1000,
		ProducerCores:   []int{affinity.NoCore},
		ConsumerCore:    affinity.NoCore,
		QueueBackend:    pool.BackendLockFree,
		QueueCapacity:   pool.DefaultQueueCapacity,
		RingBackoff:     transport.DefaultRingBackoff,
		Samples:         1,
		Warmup:          concurrency.DefaultWarmup,
	}
}

// Producers returns the producer count.
func (c *Config) Producers() int { return len(c.ProducerCores) }

// Total returns the slot count of the run.
func (c *Config) Total() int { return c.Rounds * c.RecordsPerRound * c.Producers() }

// Pair returns a copy bound to one producer core and a consumer core.
func (c *Config) Pair(producer, consumer int) *Config {
	cp := *c
	cp.ProducerCores = []int{producer}
	cp.ConsumerCore = consumer
	return &cp
}

// Validate checks the config against the transport's limits and numCPU
// logical cores. numCPU <= 0 skips the core range check.
func (c *Config) Validate(numCPU int) error {
	f, err := transport.Features(c.Transport)
	if err != nil {
		return err
	}
	switch {
	case c.Producers() == 0:
		return fmt.Errorf("%w: no producers configured", api.ErrInvalidConfig)
	case c.Producers() > MaxProducers:
		return fmt.Errorf("%w: %d producers, at most %d", api.ErrInvalidConfig, c.Producers(), MaxProducers)
	case c.Producers() > 1 && !f.MultiProducer:
		return fmt.Errorf("%w: transport %s supports one producer", api.ErrInvalidConfig, c.Transport)
	case !f.Supports(c.Mode):
		return fmt.Errorf("%w: transport %s does not support mode %s", api.ErrInvalidConfig, c.Transport, c.Mode)
	case c.Rounds <= 0 || c.RecordsPerRound <= 0:
		return fmt.Errorf("%w: rounds %d, records per round %d", api.ErrInvalidConfig, c.Rounds, c.RecordsPerRound)
	case c.IntervalNs < 0:
		return fmt.Errorf("%w: negative round interval", api.ErrInvalidConfig)
	case c.Total() > pool.MaxSlots:
		return fmt.Errorf("%w: %d records exceed %d", api.ErrResourceExhausted, c.Total(), pool.MaxSlots)
	}

	seen := make(map[int]string, c.Producers()+1)
	check := func(role string, core int) error {
		if core == affinity.NoCore {
			return nil
		}
		if core < 0 || (numCPU > 0 && core >= numCPU) {
			return fmt.Errorf("%w: %s core %d out of range [0, %d)", api.ErrInvalidConfig, role, core, numCPU)
		}
		if other, dup := seen[core]; dup {
			return fmt.Errorf("%w: core %d assigned to %s and %s", api.ErrInvalidConfig, core, other, role)
		}
		seen[core] = role
		return nil
	}
	if err := check("consumer", c.ConsumerCore); err != nil {
		return err
	}
	for i, core := range c.ProducerCores {
		if err := check(fmt.Sprintf("producer %d", i), core); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) transportOptions() transport.Options {
	return transport.Options{
		Kind:          c.Transport,
		Mode:          c.Mode,
		QueueBackend:  c.QueueBackend,
		QueueCapacity: c.QueueCapacity,
		RingBytes:     c.RingBytes,
		RingBackoff:   c.RingBackoff,
		Samples:       c.Samples,
	}
}
