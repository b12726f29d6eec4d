// File: internal/concurrency/spin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Busy-wait helpers. These spin on the monotonic clock and never yield.

package concurrency

import (
	"time"

	"github.com/momentics/c2c-bench/internal/clock"
)

// DefaultWarmup stabilizes clock frequency scaling before timing begins.
const DefaultWarmup = 2 * time.Millisecond

// Warmup busy-loops on the clock for d.
func Warmup(d time.Duration) {
	start := clock.Now()
	for clock.Since(start) <= int64(d) {
	}
}

// WaitNs busy-waits for ns nanoseconds. Non-positive values return at once.
func WaitNs(ns int64) {
	if ns <= 0 {
		return
	}
	start := clock.Now()
	for clock.Since(start) < ns {
		Relax()
	}
}
