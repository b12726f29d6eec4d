//go:build amd64 || arm64

// File: internal/concurrency/relax.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

// Relax emits a spin-wait hint (PAUSE on amd64, YIELD on arm64).
func Relax()
