// File: cmd/c2cbench/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Command-line flags and TOML file options.

package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/momentics/c2c-bench/affinity"
	"github.com/momentics/c2c-bench/api"
	"github.com/momentics/c2c-bench/control"
	"github.com/momentics/c2c-bench/internal/concurrency"
	"github.com/momentics/c2c-bench/internal/harness"
	"github.com/momentics/c2c-bench/internal/report"
	"github.com/momentics/c2c-bench/internal/shm"
	"github.com/momentics/c2c-bench/internal/transport"
	"github.com/momentics/c2c-bench/pool"
)

// options is the merged flag and file configuration.
type options struct {
	Transport       string        `toml:"transport"`
	Mode            string        `toml:"mode"`
	Rounds          int           `toml:"rounds"`
	RecordsPerRound int           `toml:"records_per_round"`
	IntervalNs      int64         `toml:"interval_ns"`
	Producers       string        `toml:"producers"`
	Consumer        int           `toml:"consumer"`
	Total           int           `toml:"total"`
	Samples         int           `toml:"samples"`
	QueueBackend    string        `toml:"queue_backend"`
	QueueCapacity   int           `toml:"queue_capacity"`
	RingBytes       int           `toml:"ring_bytes"`
	RingBackoff     time.Duration `toml:"ring_backoff"`
	Warmup          time.Duration `toml:"warmup"`
	Delay           time.Duration `toml:"delay"`
	ReportDir       string        `toml:"report_dir"`
	NoRecords       bool          `toml:"no_records"`
	LogDir          string        `toml:"log_dir"`
	LogLevel        string        `toml:"log_level"`

	configPath string
}

func defaultOptions() *options {
	return &options{
		Transport:       transport.KindQueue,
		Rounds:          1000,
		RecordsPerRound: 1,
		IntervalNs:      1000,
		Consumer:        affinity.NoCore,
		Total:           10000,
		Samples:         1,
		QueueBackend:    pool.BackendLockFree,
		QueueCapacity:   pool.DefaultQueueCapacity,
		RingBytes:       shm.DefaultSegmentSize,
		RingBackoff:     transport.DefaultRingBackoff,
		Warmup:          concurrency.DefaultWarmup,
		ReportDir:       report.DefaultDir,
		LogDir:          "logs",
		LogLevel:        "info",
	}
}

func newFlagSet(o *options, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("c2cbench", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&o.Transport, "transport", o.Transport, "transport: "+strings.Join(transport.Kinds(), "|"))
	fs.StringVar(&o.Mode, "t", o.Mode, "measure type: w|wr|rtt (default per transport)")
	fs.IntVar(&o.Rounds, "r", o.Rounds, "rounds")
	fs.IntVar(&o.RecordsPerRound, "m", o.RecordsPerRound, "record per round")
	fs.Int64Var(&o.IntervalNs, "i", o.IntervalNs, "round interval (nanoseconds)")
	fs.StringVar(&o.Producers, "p", o.Producers, "producer bind cores, comma separated")
	fs.IntVar(&o.Consumer, "c", o.Consumer, "consumer bind core")
	fs.IntVar(&o.Total, "n", o.Total, "handshake: total records")
	fs.IntVar(&o.Samples, "s", o.Samples, "handshake: exchanges per record")
	fs.StringVar(&o.QueueBackend, "queue", o.QueueBackend, "queue backend: "+strings.Join(pool.Backends(), "|"))
	fs.IntVar(&o.QueueCapacity, "queue-cap", o.QueueCapacity, "queue capacity")
	fs.IntVar(&o.RingBytes, "ring-bytes", o.RingBytes, "shared ring data bytes")
	fs.DurationVar(&o.RingBackoff, "ring-backoff", o.RingBackoff, "sleep after a failed ring allocation")
	fs.DurationVar(&o.Warmup, "warmup", o.Warmup, "per-thread busy warmup")
	fs.DurationVar(&o.Delay, "delay", o.Delay, "extra producer start delay")
	fs.StringVar(&o.ReportDir, "o", o.ReportDir, "report directory")
	fs.BoolVar(&o.NoRecords, "no-records", o.NoRecords, "skip the per-record dump")
	fs.StringVar(&o.LogDir, "log-dir", o.LogDir, "log file directory, empty disables the file log")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&o.configPath, "config", o.configPath, "TOML config file")
	return fs
}

// parseOptions parses args. A config file is applied over the defaults and
// explicitly set flags are applied over the file.
func parseOptions(args []string, out io.Writer) (*options, error) {
	o := defaultOptions()
	if err := newFlagSet(o, out).Parse(args); err != nil {
		return nil, err
	}
	if o.configPath == "" {
		return o, nil
	}
	path := o.configPath
	o = defaultOptions()
	if err := control.LoadTOML(path, o); err != nil {
		return nil, err
	}
	if err := newFlagSet(o, out).Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

// parseCores splits a comma separated core list. Empty yields nil.
func parseCores(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: producer core %q", api.ErrInvalidConfig, p)
		}
		out = append(out, v)
	}
	return out, nil
}

// runConfig resolves options into a harness config. Transports that loop
// over a total count use one record per round with no pause.
func (o *options) runConfig() (*harness.Config, error) {
	f, err := transport.Features(o.Transport)
	if err != nil {
		return nil, err
	}
	mode := f.DefaultMode
	if o.Mode != "" {
		if mode, err = api.ParseMode(o.Mode); err != nil {
			return nil, err
		}
	}
	cores, err := parseCores(o.Producers)
	if err != nil {
		return nil, err
	}

	cfg := harness.DefaultConfig()
	cfg.Transport = o.Transport
	cfg.Mode = mode
	cfg.Rounds = o.Rounds
	cfg.RecordsPerRound = o.RecordsPerRound
	cfg.IntervalNs = o.IntervalNs
	cfg.ProducerCores = cores
	cfg.ConsumerCore = o.Consumer
	cfg.QueueBackend = o.QueueBackend
	cfg.QueueCapacity = o.QueueCapacity
	cfg.RingBytes = o.RingBytes
	cfg.RingBackoff = o.RingBackoff
	cfg.Samples = max(o.Samples, 1)
	cfg.Warmup = o.Warmup
	cfg.StartDelay = o.Delay
	if o.Transport == transport.KindHandshake {
		cfg.Rounds, cfg.RecordsPerRound, cfg.IntervalNs = o.Total, 1, 0
	}
	return cfg, nil
}

// sweeping reports whether the run covers every core pair. The queue
// transport always needs explicit producer cores.
func sweeping(cfg *harness.Config) bool {
	if cfg.Transport == transport.KindQueue {
		return false
	}
	if len(cfg.ProducerCores) == 0 {
		return true
	}
	return cfg.ProducerCores[0] == affinity.NoCore || cfg.ConsumerCore == affinity.NoCore
}

// snapshot flattens the resolved config for the config store.
func snapshot(cfg *harness.Config) map[string]any {
	return map[string]any{
		"transport":         cfg.Transport,
		"mode":              cfg.Mode.String(),
		"rounds":            cfg.Rounds,
		"records_per_round": cfg.RecordsPerRound,
		"interval_ns":       cfg.IntervalNs,
		"producer_cores":    cfg.ProducerCores,
		"consumer_core":     cfg.ConsumerCore,
		"samples":           cfg.Samples,
		"queue_backend":     cfg.QueueBackend,
	}
}
