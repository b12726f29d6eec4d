package transport

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/c2c-bench/api"
	"github.com/momentics/c2c-bench/internal/shm"
	"github.com/momentics/c2c-bench/pool"
)

func newArena(t *testing.T, n int) *pool.SlotArena {
	t.Helper()
	a, err := pool.NewSlotArena(n)
	require.NoError(t, err)
	return a
}

func TestFeatures(t *testing.T) {
	f, err := Features(KindQueue)
	require.NoError(t, err)
	assert.True(t, f.MultiProducer)
	assert.True(t, f.Supports(api.ModeWrite))

	f, err = Features(KindRing)
	require.NoError(t, err)
	assert.False(t, f.Supports(api.ModeWrite))

	_, err = Features("pigeon")
	assert.True(t, errors.Is(err, api.ErrInvalidConfig))
}

func TestNewRejectsUnsupportedMode(t *testing.T) {
	arena := newArena(t, 4)
	_, err := New(Options{Kind: KindHandshake, Mode: api.ModeWriteRead}, arena)
	assert.True(t, errors.Is(err, api.ErrInvalidConfig))
}

func TestQueueTransportBusyWhenFull(t *testing.T) {
	arena := newArena(t, 4)
	tr, err := NewQueueTransport(pool.BackendLockFree, 2, api.ModeWriteRead)
	require.NoError(t, err)
	assert.Equal(t, "chan_wr", tr.Name())

	require.NoError(t, tr.Send(arena.At(0)))
	require.NoError(t, tr.Send(arena.At(1)))
	err = tr.Send(arena.At(2))
	require.True(t, errors.Is(err, api.ErrBusy))
	assert.False(t, api.IsFatal(err))
	assert.Equal(t, uint64(1), tr.Stats().Busy)

	s, ok := tr.Receive()
	require.True(t, ok)
	assert.Same(t, arena.At(0), s)
	require.NoError(t, tr.Send(arena.At(2)))
}

// flakyRing fails the first Alloc of every nth call.
type flakyRing struct {
	*shm.Ring
	every int
	calls int
	fails int
}

func (f *flakyRing) Alloc(n int) []byte {
	f.calls++
	if f.calls%f.every == 0 {
		f.fails++
		return nil
	}
	return f.Ring.Alloc(n)
}

func TestRingTransportRetriesSameRecord(t *testing.T) {
	const total = 200
	arena := newArena(t, total)
	mem := make([]byte, shm.HeaderSize+64*1024)
	r, err := shm.NewRing(mem)
	require.NoError(t, err)
	flaky := &flakyRing{Ring: r, every: 7}
	tr := NewRingTransportOn(flaky, time.Microsecond, arena, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			s := arena.At(i)
			for {
				s.Start = int64(i + 1)
				err := tr.Send(s)
				if err == nil {
					break
				}
				if api.IsFatal(err) {
					t.Error(err)
					return
				}
				tr.Backoff()
			}
		}
	}()

	received := 0
	for received < total {
		s, ok := tr.Receive()
		if !ok {
			continue
		}
		assert.Equal(t, uint64(received), s.Seq)
		s.End = s.Start + 10
		tr.Done(s)
		received++
	}
	wg.Wait()

	assert.Equal(t, total, received)
	assert.Equal(t, uint64(flaky.fails), tr.Stats().Busy)
	assert.Positive(t, flaky.fails)
	for i, s := range arena.Slots() {
		assert.Equal(t, int64(10), s.Elapsed(), "slot %d", i)
	}
	require.NoError(t, tr.Close())
}

func TestRingTransportSegmentLifecycle(t *testing.T) {
	arena := newArena(t, 1)
	tr, err := NewRingTransport(64*1024, DefaultRingBackoff, arena, zerolog.Nop())
	if errors.Is(err, api.ErrResourceExhausted) {
		t.Skipf("shared memory unavailable: %v", err)
	}
	require.NoError(t, err)
	assert.Equal(t, "shm_rbuf", tr.Name())
	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close())
}

func TestHandshakeTransportCountsExchanges(t *testing.T) {
	const records, samples = 100, 4
	arena := newArena(t, records)
	tr := NewHandshakeTransport(samples, arena)
	assert.Equal(t, samples, tr.Samples())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < records; i++ {
			assert.NoError(t, tr.Send(arena.At(i)))
		}
	}()

	for i := 0; i < records; {
		s, ok := tr.Receive()
		if !ok {
			continue
		}
		assert.Same(t, arena.At(i), s)
		i++
	}
	wg.Wait()
	assert.Equal(t, uint64(records*samples), tr.Stats().Handshakes)
}

func TestHandshakeTransportClampsSamples(t *testing.T) {
	tr := NewHandshakeTransport(0, newArena(t, 1))
	assert.Equal(t, 1, tr.Samples())
}
