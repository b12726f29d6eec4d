// File: internal/concurrency/pin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread pinning for measurement threads. Binding failure is logged and the
// thread continues unpinned.

package concurrency

import (
	"github.com/rs/zerolog"

	"github.com/momentics/c2c-bench/api"
)

// PinCurrentThread locks the calling goroutine to its OS thread and binds it to
// cpuID. It returns false when the thread runs unpinned. The thread stays
// locked either way; see affinity.OS.Unpin for releasing it.
func PinCurrentThread(log zerolog.Logger, aff api.Affinity, role string, cpuID int) bool {
	if err := aff.Pin(cpuID); err != nil {
		log.Warn().Err(err).Str("role", role).Int("core", cpuID).
			Msg("failed bind CPU core, running unpinned")
		return false
	}
	if cpuID < 0 {
		log.Debug().Str("role", role).Msg("no core requested, running unpinned")
		return false
	}
	log.Info().Str("role", role).Int("core", cpuID).Msg("bind CPU core")
	return true
}
