// File: internal/harness/orchestrator.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runs one producer/consumer experiment over a chosen transport.

package harness

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/momentics/c2c-bench/affinity"
	"github.com/momentics/c2c-bench/api"
	"github.com/momentics/c2c-bench/control"
	"github.com/momentics/c2c-bench/internal/clock"
	"github.com/momentics/c2c-bench/internal/concurrency"
	"github.com/momentics/c2c-bench/internal/report"
	"github.com/momentics/c2c-bench/internal/transport"
	"github.com/momentics/c2c-bench/pool"
)

// TransportFactory builds the transport for one run.
type TransportFactory func(opts transport.Options, arena *pool.SlotArena) (api.Transport, error)

// Orchestrator binds threads, drives the round loops and collects slots.
type Orchestrator struct {
	log          zerolog.Logger
	aff          api.Affinity
	metrics      *control.MetricsRegistry
	newTransport TransportFactory
	reports      *report.Writer
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// WithAffinity replaces the OS affinity backend.
func WithAffinity(aff api.Affinity) Option {
	return func(o *Orchestrator) { o.aff = aff }
}

// WithMetrics records run counters into mr.
func WithMetrics(mr *control.MetricsRegistry) Option {
	return func(o *Orchestrator) { o.metrics = mr }
}

// WithTransportFactory replaces transport.New.
func WithTransportFactory(f TransportFactory) Option {
	return func(o *Orchestrator) { o.newTransport = f }
}

// WithReports writes report files for every measured run.
func WithReports(w *report.Writer) Option {
	return func(o *Orchestrator) { o.reports = w }
}

// New creates an orchestrator with a silent logger and OS affinity.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		log:          zerolog.Nop(),
		aff:          affinity.OS{},
		newTransport: transport.New,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Result is a completed run. Slots are read-only.
type Result struct {
	Name     string
	Config   Config
	Slots    []api.Slot
	Stats    api.TransportStats
	Received int
	// Samples is the handshake count per record, 1 for payload transports.
	Samples  int
	Duration time.Duration
}

// errAborted stops the consumer after a producer failed.
var errAborted = errors.New("run aborted")

// Run executes cfg and returns the filled slots once every thread joins.
// A fatal error discards the partial slots.
func (o *Orchestrator) Run(cfg *Config) (*Result, error) {
	if err := cfg.Validate(o.aff.NumCPU()); err != nil {
		return nil, err
	}

	// 1. Storage, split into one contiguous range per producer.
	arena, err := pool.NewSlotArena(cfg.Total())
	if err != nil {
		return nil, err
	}
	ranges, err := arena.Partition(cfg.Producers())
	if err != nil {
		return nil, err
	}

	// 2. Transport.
	topts := cfg.transportOptions()
	topts.Log = o.log
	tr, err := o.newTransport(topts, arena)
	if err != nil {
		return nil, fmt.Errorf("harness: init transport %s: %w", cfg.Transport, err)
	}
	defer func() {
		if cerr := tr.Close(); cerr != nil {
			o.log.Warn().Err(cerr).Str("transport", tr.Name()).Msg("transport close failed")
		}
	}()

	o.log.Info().
		Str("name", tr.Name()).
		Int("rounds", cfg.Rounds).
		Int("record_per_round", cfg.RecordsPerRound).
		Int64("round_interval_ns", cfg.IntervalNs).
		Ints("producer_cores", cfg.ProducerCores).
		Int("consumer_core", cfg.ConsumerCore).
		Str("measure", cfg.Mode.Describe()).
		Msg("run start")

	// 3. Consumer first, producers once it opens the latch.
	var (
		ready     = concurrency.NewLatch()
		abort     atomic.Bool
		bindFails atomic.Uint64
		received  int
		wg        sync.WaitGroup
		errs      = make([]error, cfg.Producers())
	)
	began := time.Now()
	wg.Add(1)
	go func() {
		defer wg.Done()
		if !o.pin("consumer", cfg.ConsumerCore) && cfg.ConsumerCore != affinity.NoCore {
			bindFails.Add(1)
		}
		defer o.release(cfg.ConsumerCore)
		received = o.consume(cfg, tr, cfg.Total(), ready, &abort)
	}()
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, slots []api.Slot) {
			defer wg.Done()
			role := fmt.Sprintf("producer %d", i)
			if !o.pin(role, cfg.ProducerCores[i]) && cfg.ProducerCores[i] != affinity.NoCore {
				bindFails.Add(1)
			}
			defer o.release(cfg.ProducerCores[i])
			if err := o.produce(cfg, tr, slots, ready); err != nil {
				errs[i] = fmt.Errorf("harness: %s: %w", role, err)
				abort.Store(true)
				return
			}
			o.log.Info().Str("role", role).Msg("producer completed")
		}(i, arena.View(r))
	}
	wg.Wait()

	// 4. Collect.
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if received != cfg.Total() {
		return nil, fmt.Errorf("harness: received %d of %d records: %w", received, cfg.Total(), errAborted)
	}
	res := &Result{
		Name:     tr.Name(),
		Config:   *cfg,
		Slots:    arena.Slots(),
		Stats:    tr.Stats(),
		Received: received,
		Samples:  1,
		Duration: time.Since(began),
	}
	if s, ok := tr.(interface{ Samples() int }); ok {
		res.Samples = s.Samples()
	}

	o.metrics.Add(control.MetricRuns, 1)
	o.metrics.Add(control.MetricRecords, uint64(received))
	o.metrics.Add(control.MetricHandshakes, res.Stats.Handshakes)
	o.metrics.Add(control.MetricBindFailures, bindFails.Load())
	if cfg.Transport == transport.KindRing {
		o.metrics.Add(control.MetricRingRetry, res.Stats.Busy)
	} else {
		o.metrics.Add(control.MetricSendBusy, res.Stats.Busy)
	}
	o.log.Info().
		Str("name", res.Name).
		Int("received", received).
		Uint64("busy", res.Stats.Busy).
		Dur("duration", res.Duration).
		Msg("run completed")
	return res, nil
}

func (o *Orchestrator) pin(role string, core int) bool {
	return concurrency.PinCurrentThread(o.log, o.aff, role, core)
}

// release unlocks unbound threads only. A thread that was given a core stays
// locked and is retired when its goroutine exits, so a narrowed cpu mask never
// leaks into the scheduler's thread pool.
func (o *Orchestrator) release(core int) {
	if core == affinity.NoCore {
		o.aff.Unpin()
	}
}

// consume receives until total records arrived or the run is aborted.
func (o *Orchestrator) consume(cfg *Config, tr api.Transport, total int, ready *concurrency.Latch, abort *atomic.Bool) int {
	concurrency.Warmup(cfg.Warmup)
	stamp := cfg.Mode.ConsumerStamps()
	o.log.Info().Str("role", "consumer").Msg("consumer ready")
	ready.Open()

	n := 0
	for n < total {
		s, ok := tr.Receive()
		if !ok {
			if abort.Load() {
				break
			}
			continue
		}
		if stamp {
			s.End = clock.Now()
		}
		tr.Done(s)
		n++
	}
	o.log.Info().Str("role", "consumer").Int("received", n).Msg("consumer completed")
	return n
}

// produce drives the round loop over the producer's own slots. Transient
// busy results retry the same record with a fresh start stamp.
func (o *Orchestrator) produce(cfg *Config, tr api.Transport, slots []api.Slot, ready *concurrency.Latch) error {
	ready.Wait()
	if cfg.StartDelay > 0 {
		time.Sleep(cfg.StartDelay)
	}
	concurrency.Warmup(cfg.Warmup)

	stampEnd := cfg.Mode.ProducerStamps()
	k := 0
	for r := 0; r < cfg.Rounds; r++ {
		for m := 0; m < cfg.RecordsPerRound; m++ {
			s := &slots[k]
			k++
			for {
				s.Start = clock.Now()
				err := tr.Send(s)
				if err == nil {
					break
				}
				if api.IsFatal(err) {
					return err
				}
				tr.Backoff()
			}
			if stampEnd {
				s.End = clock.Now()
			}
		}
		if r+1 < cfg.Rounds && cfg.IntervalNs > 0 {
			concurrency.WaitNs(cfg.IntervalNs)
		}
	}
	return nil
}
