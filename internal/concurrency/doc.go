// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread-level primitives for the measurement harness: CPU pinning with
// non-fatal failure, fixed-duration busy warmup, busy nanosecond waits,
// spin relaxation hints and a one-shot readiness latch.
//
// Nothing here sleeps on the hot path. Goroutines that call Pin stay locked
// to their OS thread until Unpin or until they exit.
package concurrency
