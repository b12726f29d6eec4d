package sweep

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/c2c-bench/api"
)

func TestPairs(t *testing.T) {
	assert.Nil(t, Pairs(1))
	assert.Equal(t, []Pair{{0, 1}, {0, 2}, {1, 2}}, Pairs(3))
	assert.Len(t, Pairs(8), 28)
}

func TestSweepSymmetricWithZeroDiagonal(t *testing.T) {
	var calls []Pair
	c := &Controller{
		Cores: 4,
		Log:   zerolog.Nop(),
		Run: func(p, q int) (int64, error) {
			calls = append(calls, Pair{p, q})
			return int64(10*p + q), nil
		},
	}
	m, err := c.Sweep()
	require.NoError(t, err)
	assert.Len(t, calls, 6)
	for i := 0; i < 4; i++ {
		assert.Zero(t, m.At(i, i))
		for j := 0; j < 4; j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
		}
	}
	assert.Equal(t, int64(23), m.At(3, 2))
}

func TestSweepUnavailable(t *testing.T) {
	for _, n := range []int{0, 1} {
		c := &Controller{Cores: n, Run: func(int, int) (int64, error) {
			t.Fatal("runner called")
			return 0, nil
		}}
		_, err := c.Sweep()
		assert.True(t, errors.Is(err, api.ErrSweepUnavailable))
	}
}

func TestSweepAbortsOnError(t *testing.T) {
	runs := 0
	c := &Controller{
		Cores: 3,
		Log:   zerolog.Nop(),
		Run: func(p, q int) (int64, error) {
			runs++
			if q == 2 {
				return 0, api.ErrResourceExhausted
			}
			return 1, nil
		},
	}
	m, err := c.Sweep()
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, api.ErrResourceExhausted))
	assert.Equal(t, 2, runs)
}

func TestRender(t *testing.T) {
	m := NewMatrix(2)
	m.Set(0, 1, 71)
	var b strings.Builder
	require.NoError(t, m.Render(&b))
	want := "" +
		"           0     1\n" +
		"     0     0    71\n" +
		"     1    71     0\n"
	assert.Equal(t, want, b.String())
}
