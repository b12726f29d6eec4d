// File: affinity/topology.go
// Author: momentics <momentics@gmail.com>
//
// Logical core discovery.

package affinity

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
)

// LogicalCores returns the number of online logical cores, falling back to
// runtime.NumCPU when the OS query fails.
func LogicalCores() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ModelName returns the first reported CPU model, or "" when unknown.
func ModelName() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 {
		return ""
	}
	return infos[0].ModelName
}

// BoundCPU returns the single cpu the calling thread is bound to, or -1 when
// the thread may run on several cpus or the platform cannot tell.
func BoundCPU() int {
	c, err := currentCPU()
	if err != nil {
		return -1
	}
	return c
}
