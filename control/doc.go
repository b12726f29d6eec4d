// Package control
// Author: momentics <momentics@gmail.com>
//
// Run configuration, metrics, and debug introspection for the c2c benchmark.
//
// Provides concurrent-safe state handling primitives including:
//   - Config snapshots loaded from TOML files and command-line overrides
//   - Counters for contention absorbed by transport retry loops
//   - Platform debug probes (logical cores, cpu model, cache line width)
//
// Counters are written after measurement threads join, never from hot loops.
package control
