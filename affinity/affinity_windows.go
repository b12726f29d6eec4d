//go:build windows
// +build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows thread binding. Only the first processor group (64 cpus) is addressable.

package affinity

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/momentics/c2c-bench/api"
)

var procSetThreadAffinityMask = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetThreadAffinityMask")

func setAffinityPlatform(cpuID int) error {
	if cpuID >= 64 {
		return fmt.Errorf("affinity: cpu %d outside the processor group mask", cpuID)
	}
	mask := uintptr(1) << uint(cpuID)
	ret, _, err := procSetThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	if ret == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask cpu %d: %w", cpuID, err)
	}
	return nil
}

// currentCPU is not tracked on Windows; SetThreadAffinityMask has no getter.
func currentCPU() (int, error) { return -1, api.ErrNotSupported }
