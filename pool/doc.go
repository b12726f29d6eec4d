// Package pool
// Author: momentics <momentics@gmail.com>
//
// Memory layer for the c2c benchmark harness.
// SlotArena owns the run's cache-line aligned slot array and hands each
// producer a disjoint index range. The bounded queues (lock-free MPSC,
// mutex-guarded, channel-backed) are the hand-off backends measured by the
// queue transport. See arena.go and ring.go for implementation details.
package pool
