// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Debug probe registry, dumped once at exit.

package control

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

// LogState writes every probe as a field of one debug event, keys sorted.
func (dp *DebugProbes) LogState(log zerolog.Logger, msg string) {
	state := dp.DumpState()
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ev := log.Debug()
	for _, k := range keys {
		ev = ev.Interface(k, state[k])
	}
	ev.Msg(msg)
}
