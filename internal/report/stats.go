// Package report
// Author: momentics <momentics@gmail.com>

package report

import (
	"fmt"
	"slices"

	"github.com/momentics/c2c-bench/api"
)

// Deciles are the percentile positions reported in both tables.
var Deciles = [11]int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// Stats is the summary of one run.
type Stats struct {
	// Elapsed holds samples in arrival (slot index) order.
	Elapsed []int64
	// Sorted holds the same samples ascending.
	Sorted []int64

	IndexDeciles [len(Deciles)]int64
	ValueDeciles [len(Deciles)]int64

	// Median is Sorted[N/2].
	Median int64
	// Zero counts samples equal to zero.
	Zero int
}

// N returns the sample count.
func (s *Stats) N() int { return len(s.Elapsed) }

// DecilePos maps decile d of n samples to an index; 100 maps to n-1.
func DecilePos(d, n int) int {
	if d >= 100 {
		return n - 1
	}
	return d * n / 100
}

// Samples converts slots to latencies. Round-trip samples are halved.
func Samples(slots []api.Slot, mode api.Mode) ([]int64, error) {
	if len(slots) == 0 {
		return nil, api.ErrNoSamples
	}
	out := make([]int64, len(slots))
	for i := range slots {
		s := &slots[i]
		if !s.HasEnd() {
			return nil, fmt.Errorf("report: slot %d: %w", i, api.ErrMissingEnd)
		}
		v := s.Elapsed()
		if v < 0 {
			return nil, fmt.Errorf("report: slot %d elapsed %d: %w", i, v, api.ErrNegativeLatency)
		}
		if mode == api.ModeRoundTrip {
			v /= 2
		}
		out[i] = v
	}
	return out, nil
}

// Build computes the decile tables and median. slots is not modified, so
// repeated calls give identical results.
func Build(slots []api.Slot, mode api.Mode) (*Stats, error) {
	elapsed, err := Samples(slots, mode)
	if err != nil {
		return nil, err
	}
	return FromSamples(elapsed), nil
}

// FromSamples summarizes elapsed, which must be non-empty.
func FromSamples(elapsed []int64) *Stats {
	n := len(elapsed)
	st := &Stats{
		Elapsed: elapsed,
		Sorted:  slices.Clone(elapsed),
	}
	slices.Sort(st.Sorted)
	for i, d := range Deciles {
		p := DecilePos(d, n)
		st.IndexDeciles[i] = elapsed[p]
		st.ValueDeciles[i] = st.Sorted[p]
	}
	st.Median = st.Sorted[n/2]
	for _, v := range st.Sorted {
		if v != 0 {
			break
		}
		st.Zero++
	}
	return st
}
