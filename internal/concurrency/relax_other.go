//go:build !amd64 && !arm64

// File: internal/concurrency/relax_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

// Relax is a no-op on architectures without a spin-wait hint.
func Relax() {}
