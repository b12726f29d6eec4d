// Package sweep
// Author: momentics <momentics@gmail.com>
//
// Measures every unordered core pair and assembles a symmetric matrix of
// median latencies.
package sweep

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/momentics/c2c-bench/api"
)

// Pair is one measured assignment: producer on I, consumer on J, I < J.
type Pair struct{ I, J int }

// Pairs enumerates i < j over n cores in row-major order.
func Pairs(n int) []Pair {
	if n < 2 {
		return nil
	}
	out := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, Pair{I: i, J: j})
		}
	}
	return out
}

// Matrix is a square table of median nanoseconds. The diagonal stays zero.
type Matrix struct {
	n    int
	vals []int64
}

// NewMatrix allocates an n x n zero matrix.
func NewMatrix(n int) *Matrix {
	return &Matrix{n: n, vals: make([]int64, n*n)}
}

// Size returns the core count.
func (m *Matrix) Size() int { return m.n }

// Set stores v at [i][j] and [j][i].
func (m *Matrix) Set(i, j int, v int64) {
	m.vals[i*m.n+j] = v
	m.vals[j*m.n+i] = v
}

// At returns [i][j].
func (m *Matrix) At(i, j int) int64 { return m.vals[i*m.n+j] }

// Render writes the matrix with a header row and column of core indices,
// every cell six wide.
func (m *Matrix) Render(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%6s", "")
	for j := 0; j < m.n; j++ {
		fmt.Fprintf(&b, "%6d", j)
	}
	b.WriteByte('\n')
	for i := 0; i < m.n; i++ {
		fmt.Fprintf(&b, "%6d", i)
		for j := 0; j < m.n; j++ {
			fmt.Fprintf(&b, "%6d", m.At(i, j))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Runner measures one pair and returns its median in nanoseconds.
type Runner func(producer, consumer int) (int64, error)

// Controller drives a full sweep.
type Controller struct {
	// Cores is the logical core count.
	Cores int
	Run   Runner
	Log   zerolog.Logger
	// OnPair, when set, observes each finished pair.
	OnPair func(p Pair, median int64)
}

// Sweep runs every pair once. The first error aborts the sweep.
func (c *Controller) Sweep() (*Matrix, error) {
	if c.Cores < 2 {
		return nil, fmt.Errorf("sweep: %d logical cores: %w", c.Cores, api.ErrSweepUnavailable)
	}
	m := NewMatrix(c.Cores)
	pairs := Pairs(c.Cores)
	for k, p := range pairs {
		median, err := c.Run(p.I, p.J)
		if err != nil {
			return nil, fmt.Errorf("sweep: pair %d -> %d: %w", p.I, p.J, err)
		}
		m.Set(p.I, p.J, median)
		c.Log.Info().
			Int("producer", p.I).
			Int("consumer", p.J).
			Int64("median", median).
			Int("done", k+1).
			Int("pairs", len(pairs)).
			Msg("pair measured")
		if c.OnPair != nil {
			c.OnPair(p, median)
		}
	}
	return m, nil
}
