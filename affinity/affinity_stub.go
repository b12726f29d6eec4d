//go:build !linux && !windows
// +build !linux,!windows

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// Platforms without thread affinity: the harness runs every thread unpinned.

package affinity

import "github.com/momentics/c2c-bench/api"

func setAffinityPlatform(int) error { return api.ErrNotSupported }

func currentCPU() (int, error) { return -1, api.ErrNotSupported }
