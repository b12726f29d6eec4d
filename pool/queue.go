// File: pool/queue.go
// Author: momentics <momentics@gmail.com>
//
// Queue backend selection.

package pool

import (
	"fmt"

	"github.com/momentics/c2c-bench/api"
)

// Queue backend names.
const (
	BackendLockFree = "lockfree"
	BackendMutex    = "mutex"
	BackendChan     = "chan"
)

// DefaultQueueCapacity matches the original channel size (16K entries).
const DefaultQueueCapacity = 1024 * 16

// Backends lists accepted backend names.
func Backends() []string { return []string{BackendLockFree, BackendMutex, BackendChan} }

// NewQueue builds a bounded queue. Lock-free capacity rounds up to a power of two.
func NewQueue[T any](backend string, capacity int) (api.Ring[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: queue capacity %d", api.ErrInvalidConfig, capacity)
	}
	switch backend {
	case BackendLockFree, "":
		size := uint64(1)
		for size < uint64(capacity) {
			size <<= 1
		}
		return NewRingBuffer[T](size), nil
	case BackendMutex:
		return NewMutexQueue[T](capacity), nil
	case BackendChan:
		return NewChanQueue[T](capacity), nil
	}
	return nil, fmt.Errorf("%w: unknown queue backend %q", api.ErrInvalidConfig, backend)
}
