// Package report
// Author: momentics <momentics@gmail.com>

package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/momentics/c2c-bench/api"
	"github.com/momentics/c2c-bench/internal/clock"
)

// DefaultDir is the report directory used by the command.
const DefaultDir = "./c2c_benchmark_reports"

// Writer persists run reports under Dir.
type Writer struct {
	Dir string
	// Records enables the per-record dump.
	Records bool
	Log     zerolog.Logger
}

// Paths lists the files written for one run. Records is empty when the
// per-record dump is disabled.
type Paths struct {
	Records    string
	Statistics string
}

// FileTag renders the core part of report file names:
// c<producer>_to_c<consumer>, producers joined by '-'.
func FileTag(producers []int, consumer int) string {
	parts := make([]string, len(producers))
	for i, p := range producers {
		parts[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("c%s_to_c%d", strings.Join(parts, "-"), consumer)
}

// Write stores the record dump (when enabled) and the statistics table.
func (w *Writer) Write(name string, producers []int, consumer int, slots []api.Slot, st *Stats) (Paths, error) {
	dir := w.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("report: create dir: %w", err)
	}
	tag := FileTag(producers, consumer)
	var paths Paths
	if w.Records {
		paths.Records = filepath.Join(dir, "record_"+name+"_"+tag+".csv")
		if err := writeFile(paths.Records, func(cw *csv.Writer) error {
			return WriteRecords(cw, slots, st.Elapsed)
		}); err != nil {
			return Paths{}, err
		}
		w.Log.Info().Str("path", paths.Records).Msg("generate records report")
	}
	paths.Statistics = filepath.Join(dir, "statistics_"+name+"_"+tag+".csv")
	if err := writeFile(paths.Statistics, func(cw *csv.Writer) error {
		return WriteStatistics(cw, st)
	}); err != nil {
		return Paths{}, err
	}
	w.Log.Info().Str("path", paths.Statistics).Msg("generate statistics report")
	return paths, nil
}

func writeFile(path string, fill func(*csv.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("report: close %s: %w", path, cerr)
		}
	}()
	bw := bufio.NewWriter(f)
	cw := csv.NewWriter(bw)
	if err = fill(cw); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return bw.Flush()
}

// WriteRecords writes idx,start,end,elapsed rows.
func WriteRecords(cw *csv.Writer, slots []api.Slot, elapsed []int64) error {
	if err := cw.Write([]string{"idx", "start", "end", "elapsed"}); err != nil {
		return err
	}
	row := make([]string, 4)
	for i := range slots {
		row[0] = strconv.Itoa(i)
		row[1] = clock.Format(slots[i].Start)
		row[2] = clock.Format(slots[i].End)
		row[3] = strconv.FormatInt(elapsed[i], 10)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteStatistics writes the decile header and the idx and elapsed rows.
func WriteStatistics(cw *csv.Writer, st *Stats) error {
	head := []string{"sort_by"}
	for _, d := range Deciles {
		head = append(head, strconv.Itoa(d))
	}
	if err := cw.Write(head); err != nil {
		return err
	}
	if err := cw.Write(decileRow("idx", st.IndexDeciles)); err != nil {
		return err
	}
	return cw.Write(decileRow("elapsed", st.ValueDeciles))
}

func decileRow(label string, vals [len(Deciles)]int64) []string {
	row := make([]string, 0, len(vals)+1)
	row = append(row, label)
	for _, v := range vals {
		row = append(row, strconv.FormatInt(v, 10))
	}
	return row
}
