package shm

import (
	"encoding/binary"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRing(t *testing.T, size int) *Ring {
	t.Helper()
	r, err := NewRing(make([]byte, size))
	require.NoError(t, err)
	return r
}

func TestRingAllocCommitFetchRelease(t *testing.T) {
	r := newTestRing(t, HeaderSize+minDataSize)
	require.Equal(t, minDataSize, r.Capacity())
	require.Nil(t, r.Fetch())

	buf := r.Alloc(64)
	require.Len(t, buf, 64)
	binary.LittleEndian.PutUint64(buf, 42)
	require.Nil(t, r.Fetch(), "uncommitted record visible")

	r.Commit()
	got := r.Fetch()
	require.Len(t, got, 64)
	assert.Equal(t, uint64(42), binary.LittleEndian.Uint64(got))
	assert.Equal(t, 72, r.Used())
	r.Release()
	assert.Zero(t, r.Used())
	assert.Nil(t, r.Fetch())
}

func TestRingFullThenWraps(t *testing.T) {
	r := newTestRing(t, HeaderSize+minDataSize)
	const n = 100 // 108 bytes per record after header + alignment
	count := 0
	for r.Alloc(n) != nil {
		r.Commit()
		count++
	}
	require.Equal(t, minDataSize/112, count)

	// Drain two records; the next record no longer fits at the tail and wraps.
	for i := 0; i < 2; i++ {
		require.NotNil(t, r.Fetch())
		r.Release()
	}
	buf := r.Alloc(n)
	require.NotNil(t, buf)
	buf[0] = 0xAB
	r.Commit()

	for i := 0; i < count-2; i++ {
		require.NotNil(t, r.Fetch())
		r.Release()
	}
	last := r.Fetch()
	require.NotNil(t, last)
	assert.Equal(t, byte(0xAB), last[0])
	r.Release()
	assert.Zero(t, r.Used())
}

func TestRingRejectsOversize(t *testing.T) {
	r := newTestRing(t, HeaderSize+minDataSize)
	assert.Nil(t, r.Alloc(minDataSize))
	assert.Nil(t, r.Alloc(0))
}

func TestRingSPSCOrder(t *testing.T) {
	r := newTestRing(t, HeaderSize+minDataSize)
	const total = 50000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint64(0); i < total; {
			size := 8 + int(i%5)*8
			buf := r.Alloc(size)
			if buf == nil {
				continue
			}
			binary.LittleEndian.PutUint64(buf, i)
			r.Commit()
			i++
		}
	}()
	for want := uint64(0); want < total; {
		buf := r.Fetch()
		if buf == nil {
			continue
		}
		require.Equal(t, 8+int(want%5)*8, len(buf))
		require.Equal(t, want, binary.LittleEndian.Uint64(buf))
		r.Release()
		want++
	}
	wg.Wait()
}

func TestAttachRing(t *testing.T) {
	mem := make([]byte, HeaderSize+2*minDataSize)
	_, err := AttachRing(mem)
	require.True(t, errors.Is(err, ErrBadSegment))

	w, err := NewRing(mem)
	require.NoError(t, err)
	r, err := AttachRing(mem)
	require.NoError(t, err)

	copy(w.Alloc(3), "abc")
	w.Commit()
	assert.Equal(t, []byte("abc"), r.Fetch())
}

func TestSegmentLifecycle(t *testing.T) {
	seg, err := CreateSegment(UniqueName(), DefaultSegmentSize)
	require.NoError(t, err)
	require.Len(t, seg.Mem, DefaultSegmentSize)

	r, err := NewRing(seg.Mem)
	require.NoError(t, err)
	assert.Equal(t, DefaultSegmentSize/2, r.Capacity())

	path := seg.Path
	_, err = os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, seg.Close())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCreateSegmentTooSmall(t *testing.T) {
	_, err := CreateSegment(UniqueName(), 128)
	require.Error(t, err)
}
