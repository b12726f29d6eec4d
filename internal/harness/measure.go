// File: internal/harness/measure.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package harness

import (
	"github.com/momentics/c2c-bench/control"
	"github.com/momentics/c2c-bench/internal/report"
)

// Measurement is a run together with its statistics.
type Measurement struct {
	Result *Result
	Stats  *report.Stats
	Paths  report.Paths
	// Median is the median latency per exchange in nanoseconds.
	Median int64
}

// Measure runs cfg, builds the report and writes it when a report writer is
// configured. The median is divided by the transport's samples per record.
func (o *Orchestrator) Measure(cfg *Config) (*Measurement, error) {
	res, err := o.Run(cfg)
	if err != nil {
		return nil, err
	}
	st, err := report.Build(res.Slots, cfg.Mode)
	if err != nil {
		return nil, err
	}
	if st.Zero > 0 {
		o.log.Warn().Int("zero_samples", st.Zero).Str("name", res.Name).
			Msg("zero latency samples, timer resolution too coarse")
		o.metrics.Add(control.MetricZeroSamples, uint64(st.Zero))
	}
	m := &Measurement{
		Result: res,
		Stats:  st,
		Median: st.Median / int64(res.Samples),
	}
	if o.reports != nil {
		m.Paths, err = o.reports.Write(res.Name, cfg.ProducerCores, cfg.ConsumerCore, res.Slots, st)
		if err != nil {
			return nil, err
		}
	}
	o.metrics.Set(control.MetricLastMedian, m.Median)
	return m, nil
}

// PairRunner adapts Measure to a sweep over base with one producer per pair.
func (o *Orchestrator) PairRunner(base *Config) func(producer, consumer int) (int64, error) {
	return func(producer, consumer int) (int64, error) {
		m, err := o.Measure(base.Pair(producer, consumer))
		if err != nil {
			return 0, err
		}
		o.metrics.Add(control.MetricPairsMeasured, 1)
		return m.Median, nil
	}
}
