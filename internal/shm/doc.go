// File: internal/shm/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package shm provides a shared memory segment and a single-producer,
// single-consumer ring buffer with variable-length records living inside it.
//
// The producer side is Alloc + Commit, the consumer side is Fetch + Release.
// Indices are monotonic byte counters stored on separate cache lines of the
// ring header, so the segment can be mapped by two processes; the harness
// maps it once and runs both sides as threads.
//
// Record layout (8-byte aligned):
//
//	0x00 size uint32   payload bytes
//	0x04 kind uint32   recordData or recordWrap
//	0x08 payload
//
// A wrap record fills the tail of the data area when a record does not fit
// contiguously; the consumer skips it and continues at offset 0.
package shm
