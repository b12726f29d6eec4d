// Package fake
// Author: momentics <momentics@gmail.com>

package fake

import (
	"sync"

	"github.com/momentics/c2c-bench/api"
)

// Affinity is a fake api.Affinity that records pins without touching the OS.
type Affinity struct {
	mu     sync.Mutex
	cpus   int
	fail   error
	pinned []int
	unpins int
}

var _ api.Affinity = (*Affinity)(nil)

// NewAffinity creates a fake reporting cpus logical cores.
func NewAffinity(cpus int) *Affinity {
	return &Affinity{cpus: cpus}
}

// SetPinError makes every later Pin of a real core id fail with err.
func (a *Affinity) SetPinError(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fail = err
}

// Pin records cpuID.
func (a *Affinity) Pin(cpuID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pinned = append(a.pinned, cpuID)
	if cpuID < 0 {
		return nil
	}
	return a.fail
}

// Unpin counts calls.
func (a *Affinity) Unpin() {
	a.mu.Lock()
	a.unpins++
	a.mu.Unlock()
}

// NumCPU returns the configured core count.
func (a *Affinity) NumCPU() int { return a.cpus }

// Pinned returns the recorded core ids in call order.
func (a *Affinity) Pinned() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int(nil), a.pinned...)
}

// Unpins returns the Unpin call count.
func (a *Affinity) Unpins() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.unpins
}
