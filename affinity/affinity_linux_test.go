//go:build linux

package affinity

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func firstAllowedCPU(t *testing.T) int {
	t.Helper()
	var set unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(0, &set))
	for i := 0; i < maxCPU; i++ {
		if set.IsSet(i) {
			return i
		}
	}
	t.Skip("no allowed cpu reported")
	return -1
}

func TestSetAffinityBindsThread(t *testing.T) {
	cpuID := firstAllowedCPU(t)

	done := make(chan int)
	go func() {
		// Exits locked so the bound thread is retired.
		var os OS
		if err := os.Pin(cpuID); err != nil {
			t.Errorf("pin: %v", err)
		}
		done <- BoundCPU()
	}()
	require.Equal(t, cpuID, <-done)
}

func TestSetAffinityRejectsNegative(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	require.Error(t, SetAffinity(-3))
}
