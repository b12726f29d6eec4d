// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform debug probes.

package control

import (
	"runtime"

	"github.com/momentics/c2c-bench/affinity"
	"github.com/momentics/c2c-bench/api"
)

// RegisterPlatformProbes sets platform probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return affinity.LogicalCores()
	})
	dp.RegisterProbe("platform.cpu_model", func() any {
		return affinity.ModelName()
	})
	dp.RegisterProbe("platform.cache_line", func() any {
		return api.CacheLineSize
	})
	dp.RegisterProbe("platform.gomaxprocs", func() any {
		return runtime.GOMAXPROCS(0)
	})
	dp.RegisterProbe("platform.os", func() any {
		return runtime.GOOS + "/" + runtime.GOARCH
	})
}

// RegisterMetricsProbe exposes a metrics snapshot as a probe.
func RegisterMetricsProbe(dp *DebugProbes, mr *MetricsRegistry) {
	dp.RegisterProbe("metrics", func() any { return mr.GetSnapshot() })
}
