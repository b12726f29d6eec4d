// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types for the c2c benchmark harness.

package api

import "errors"

// Configuration and run errors. Everything except ErrBusy aborts a run.
var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrResourceExhausted = errors.New("resource exhausted")
	ErrNotSupported      = errors.New("operation not supported")
	ErrSweepUnavailable  = errors.New("sweep requires at least two logical cores")

	// ErrBusy marks transient contention: full queue, full ring, or an
	// unmatched sequence. Callers retry; it is never reported.
	ErrBusy = errors.New("transport busy")

	ErrNoSamples       = errors.New("no samples to report")
	ErrNegativeLatency = errors.New("negative latency sample")
	ErrMissingEnd      = errors.New("slot has no end timestamp")
)

// IsFatal reports whether err must stop execution.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrBusy)
}
