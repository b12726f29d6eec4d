package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/c2c-bench/api"
)

func slotsFrom(elapsed ...int64) []api.Slot {
	out := make([]api.Slot, len(elapsed))
	for i, e := range elapsed {
		out[i] = api.Slot{Start: 1_000_000 + int64(i), End: 1_000_000 + int64(i) + e, Seq: uint64(i)}
	}
	return out
}

func TestDecilePos(t *testing.T) {
	assert.Equal(t, 0, DecilePos(0, 20))
	assert.Equal(t, 2, DecilePos(10, 20))
	assert.Equal(t, 18, DecilePos(90, 20))
	assert.Equal(t, 19, DecilePos(100, 20))
	assert.Equal(t, 0, DecilePos(100, 1))
}

func TestBuildDecileInvariants(t *testing.T) {
	slots := slotsFrom(50, 10, 90, 30, 70, 20, 80, 40, 60, 100, 5, 15, 25, 35, 45, 55, 65, 75, 85, 95)
	st, err := Build(slots, api.ModeWriteRead)
	require.NoError(t, err)

	assert.Len(t, st.ValueDeciles, 11)
	assert.Equal(t, int64(5), st.ValueDeciles[0])
	assert.Equal(t, int64(100), st.ValueDeciles[10])
	assert.Equal(t, int64(50), st.IndexDeciles[0])
	assert.Equal(t, int64(95), st.IndexDeciles[10])
	assert.Equal(t, st.Sorted[10], st.Median)
	assert.Equal(t, int64(55), st.Median)
	for i := 1; i < len(st.ValueDeciles); i++ {
		assert.LessOrEqual(t, st.ValueDeciles[i-1], st.ValueDeciles[i])
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	slots := slotsFrom(7, 3, 9, 1, 4)
	a, err := Build(slots, api.ModeWriteRead)
	require.NoError(t, err)
	b, err := Build(slots, api.ModeWriteRead)
	require.NoError(t, err)
	assert.Equal(t, a.IndexDeciles, b.IndexDeciles)
	assert.Equal(t, a.ValueDeciles, b.ValueDeciles)
	assert.Equal(t, a.Median, b.Median)
	assert.Equal(t, int64(7), slots[0].Elapsed())
}

func TestRoundTripHalved(t *testing.T) {
	slots := slotsFrom(200, 100, 301)
	rtt, err := Build(slots, api.ModeRoundTrip)
	require.NoError(t, err)
	one, err := Build(slots, api.ModeWriteRead)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 50, 150}, rtt.Elapsed)
	assert.Equal(t, one.Median/2, rtt.Median)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(nil, api.ModeWrite)
	assert.True(t, errors.Is(err, api.ErrNoSamples))

	slots := slotsFrom(5, 5)
	slots[1].End = 0
	_, err = Build(slots, api.ModeWrite)
	assert.True(t, errors.Is(err, api.ErrMissingEnd))

	slots = slotsFrom(5, 5)
	slots[0].End = slots[0].Start - 3
	_, err = Build(slots, api.ModeWrite)
	assert.True(t, errors.Is(err, api.ErrNegativeLatency))
}

func TestZeroSamplesCounted(t *testing.T) {
	st, err := Build(slotsFrom(0, 0, 4), api.ModeWrite)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Zero)
}

func TestWriteStatistics(t *testing.T) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	st := FromSamples([]int64{3, 1, 2})
	require.NoError(t, WriteStatistics(cw, st))
	cw.Flush()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "sort_by,0,10,20,30,40,50,60,70,80,90,100", lines[0])
	assert.Equal(t, "idx,3,3,3,3,1,1,1,2,2,2,2", lines[1])
	assert.Equal(t, "elapsed,1,1,1,1,2,2,2,3,3,3,3", lines[2])
}

func TestWriterFiles(t *testing.T) {
	dir := t.TempDir()
	slots := slotsFrom(10, 20)
	st, err := Build(slots, api.ModeWriteRead)
	require.NoError(t, err)

	w := &Writer{Dir: dir, Records: true, Log: zerolog.Nop()}
	paths, err := w.Write("chan_wr", []int{0, 1}, 3, slots, st)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "record_chan_wr_c0-1_to_c3.csv"), paths.Records)
	assert.Equal(t, filepath.Join(dir, "statistics_chan_wr_c0-1_to_c3.csv"), paths.Statistics)

	body, err := os.ReadFile(paths.Records)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "idx,start,end,elapsed", lines[0])
	assert.Equal(t, "0,0.001000000,0.001000010,10", lines[1])

	w.Records = false
	paths, err = w.Write("shm_rbuf", []int{2}, 5, slots, st)
	require.NoError(t, err)
	assert.Empty(t, paths.Records)
	assert.FileExists(t, paths.Statistics)
}
