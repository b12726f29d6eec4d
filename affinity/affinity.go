// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_windows.go, etc.) guarded by build tags.

package affinity

import (
	"fmt"
	"runtime"

	"github.com/momentics/c2c-bench/api"
)

// NoCore marks an unset core id: the thread runs unpinned.
const NoCore = -1

// SetAffinity pins current OS thread to a given logical CPU/core on supported platforms.
// The caller must hold runtime.LockOSThread. On unsupported platforms returns an error.
func SetAffinity(cpuID int) error {
	if cpuID < 0 {
		return fmt.Errorf("affinity: invalid cpu %d", cpuID)
	}
	return setAffinityPlatform(cpuID)
}

// OS is the api.Affinity implementation backed by the running platform.
type OS struct{}

var _ api.Affinity = OS{}

// Pin locks the calling goroutine to its OS thread, then binds the thread.
// The thread stays locked even when binding fails so Unpin is always valid.
func (OS) Pin(cpuID int) error {
	runtime.LockOSThread()
	if cpuID == NoCore {
		return nil
	}
	return SetAffinity(cpuID)
}

// Unpin releases the OS thread lock taken by Pin. The cpu mask is not
// restored, so a goroutine that bound a core should exit without Unpin and
// let the runtime retire the thread.
func (OS) Unpin() { runtime.UnlockOSThread() }

// NumCPU returns the logical core count.
func (OS) NumCPU() int { return LogicalCores() }
