// Package fake
// Author: momentics <momentics@gmail.com>

package fake

import (
	"sync/atomic"

	"github.com/momentics/c2c-bench/api"
)

// Transport wraps a real transport and injects send failures. Send is called
// by producers only; the counters are atomic so several producers may share it.
type Transport struct {
	api.Transport

	busyEvery uint64
	failAt    uint64
	failErr   error

	sends    atomic.Uint64
	injected atomic.Uint64
	closed   atomic.Bool
}

var _ api.Transport = (*Transport)(nil)

// NewTransport wraps inner without any faults.
func NewTransport(inner api.Transport) *Transport {
	return &Transport{Transport: inner}
}

// BusyEvery makes every nth Send report api.ErrBusy without reaching inner.
func (t *Transport) BusyEvery(n uint64) *Transport {
	t.busyEvery = n
	return t
}

// FailAt makes the nth Send return err.
func (t *Transport) FailAt(n uint64, err error) *Transport {
	t.failAt, t.failErr = n, err
	return t
}

// Send applies the configured faults, then forwards to the inner transport.
func (t *Transport) Send(s *api.Slot) error {
	n := t.sends.Add(1)
	if t.failAt != 0 && n == t.failAt {
		return t.failErr
	}
	if t.busyEvery != 0 && n%t.busyEvery == 0 {
		t.injected.Add(1)
		return api.ErrBusy
	}
	return t.Transport.Send(s)
}

// Injected returns the number of busy results injected.
func (t *Transport) Injected() uint64 { return t.injected.Load() }

// Sends returns the number of Send calls, retries included.
func (t *Transport) Sends() uint64 { return t.sends.Load() }

// Closed reports whether Close was called.
func (t *Transport) Closed() bool { return t.closed.Load() }

// Close marks the fake closed and closes inner.
func (t *Transport) Close() error {
	t.closed.Store(true)
	return t.Transport.Close()
}
