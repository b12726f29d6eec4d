//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific implementation for setting thread CPU affinity.

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// maxCPU matches glibc CPU_SETSIZE.
const maxCPU = 1024

// setAffinityPlatform binds the calling thread (by tid) to a single CPU.
func setAffinityPlatform(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(unix.Gettid(), &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity cpu %d: %w", cpuID, err)
	}
	return nil
}

// currentCPU returns the only cpu in the calling thread's affinity mask, or -1
// when the mask holds several.
func currentCPU() (int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(unix.Gettid(), &set); err != nil {
		return -1, err
	}
	if set.Count() != 1 {
		return -1, nil
	}
	for i := 0; i < maxCPU; i++ {
		if set.IsSet(i) {
			return i, nil
		}
	}
	return -1, nil
}
