package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNowMonotonic(t *testing.T) {
	prev := Now()
	for i := 0; i < 10000; i++ {
		cur := Now()
		if cur < prev {
			t.Fatalf("clock went backwards: %d -> %d", prev, cur)
		}
		prev = cur
	}
	assert.Positive(t, prev)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.000000000", Format(0))
	assert.Equal(t, "1.000000001", Format(1_000_000_001))
	assert.Equal(t, "12.345678900", Format(12_345_678_900))
}

func TestSince(t *testing.T) {
	ts := Now()
	assert.GreaterOrEqual(t, Since(ts), int64(0))
}
