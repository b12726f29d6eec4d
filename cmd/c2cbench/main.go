// File: cmd/c2cbench/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Core-to-core latency benchmark. With explicit producer and consumer cores
// it measures one pair; otherwise it sweeps every core pair and prints the
// median latency matrix.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/momentics/c2c-bench/affinity"
	"github.com/momentics/c2c-bench/control"
	"github.com/momentics/c2c-bench/internal/harness"
	"github.com/momentics/c2c-bench/internal/report"
	"github.com/momentics/c2c-bench/internal/sweep"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the benchmark and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "c2cbench: %v\n", err)
		return 2
	}

	log, closeLog, err := newLogger(opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "c2cbench: %v\n", err)
		return 1
	}
	defer closeLog()

	if err := execute(opts, log, stdout); err != nil {
		log.Error().Err(err).Msg("benchmark failed")
		return 1
	}
	return 0
}

func execute(opts *options, log zerolog.Logger, stdout io.Writer) error {
	cfg, err := opts.runConfig()
	if err != nil {
		return err
	}

	store := control.NewConfigStore()
	store.SetConfig(snapshot(cfg))
	metrics := control.NewMetricsRegistry()
	probes := control.NewDebugProbes()
	control.RegisterPlatformProbes(probes)
	control.RegisterMetricsProbe(probes, metrics)
	probes.RegisterProbe("config", func() any { return store.GetSnapshot() })
	defer probes.LogState(log, "debug probes")

	o := harness.New(
		harness.WithLogger(log),
		harness.WithMetrics(metrics),
		harness.WithReports(&report.Writer{Dir: opts.ReportDir, Records: !opts.NoRecords, Log: log}),
	)

	if !sweeping(cfg) {
		m, err := o.Measure(cfg)
		if err != nil {
			return err
		}
		// Multi-producer runs print the producer count.
		producer := len(cfg.ProducerCores)
		if producer == 1 {
			producer = cfg.ProducerCores[0]
		}
		_, err = fmt.Fprintf(stdout, "%d -> %d: %d\n", producer, cfg.ConsumerCore, m.Median)
		return err
	}

	ctl := &sweep.Controller{
		Cores: affinity.LogicalCores(),
		Run:   o.PairRunner(cfg),
		Log:   log,
	}
	started := time.Now()
	matrix, err := ctl.Sweep()
	if err != nil {
		return err
	}
	log.Info().Int("cores", matrix.Size()).Dur("elapsed", time.Since(started)).Msg("sweep completed")
	return matrix.Render(stdout)
}

// newLogger builds a console logger on stderr, teeing JSON into
// <log dir>/c2c_benchmark_<transport>.log when a log dir is set.
func newLogger(opts *options, stderr io.Writer) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(opts.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log level %q: %w", opts.LogLevel, err)
	}
	console := zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05.000"}
	if opts.LogDir == "" {
		return zerolog.New(console).Level(level).With().Timestamp().Logger(), func() {}, nil
	}
	if err := os.MkdirAll(opts.LogDir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(opts.LogDir, "c2c_benchmark_"+opts.Transport+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	w := zerolog.MultiLevelWriter(console, f)
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), func() { f.Close() }, nil
}
