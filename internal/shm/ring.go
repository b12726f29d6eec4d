// File: internal/shm/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package shm

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"
)

const (
	// HeaderSize is the ring header: magic/capacity, write index and read
	// index each on their own cache line.
	HeaderSize = 192

	recordHeader = 8
	minDataSize  = 4096

	recordData uint32 = 1
	recordWrap uint32 = 2
)

var ringMagic = [8]byte{'C', '2', 'C', 'R', 'I', 'N', 'G', 0}

// ErrBadSegment is returned when attaching to memory without a ring header.
var ErrBadSegment = errors.New("shm: memory does not hold a ring")

type ringHeader struct {
	magic    [8]byte
	capacity uint64
	_        [48]byte
	widx     uint64 // producer: monotonic bytes committed
	_        [56]byte
	ridx     uint64 // consumer: monotonic bytes released
	_        [56]byte
}

var _ [HeaderSize - unsafe.Sizeof(ringHeader{})]byte

// Ring is an SPSC byte ring with variable-length records.
// Alloc/Commit belong to the producer, Fetch/Release to the consumer.
type Ring struct {
	hdr  *ringHeader
	data []byte
	mask uint64

	// producer-local
	wpend uint64 // bytes to publish on Commit, including a wrap pad

	// consumer-local
	rpend uint64 // bytes to release, including a skipped wrap pad
}

// NewRing formats mem as an empty ring. The data area is the largest power
// of two that fits after the header.
func NewRing(mem []byte) (*Ring, error) {
	if len(mem) < HeaderSize+minDataSize {
		return nil, fmt.Errorf("shm: %d bytes too small for a ring", len(mem))
	}
	capacity := uint64(1)
	for capacity<<1 <= uint64(len(mem)-HeaderSize) {
		capacity <<= 1
	}
	hdr := (*ringHeader)(unsafe.Pointer(&mem[0]))
	hdr.magic = ringMagic
	atomic.StoreUint64(&hdr.capacity, capacity)
	atomic.StoreUint64(&hdr.widx, 0)
	atomic.StoreUint64(&hdr.ridx, 0)
	return attach(mem, hdr, capacity), nil
}

// AttachRing opens a ring formatted by NewRing, e.g. from another process.
func AttachRing(mem []byte) (*Ring, error) {
	if len(mem) < HeaderSize+minDataSize {
		return nil, ErrBadSegment
	}
	hdr := (*ringHeader)(unsafe.Pointer(&mem[0]))
	capacity := atomic.LoadUint64(&hdr.capacity)
	if hdr.magic != ringMagic || capacity == 0 || capacity&(capacity-1) != 0 ||
		capacity > uint64(len(mem)-HeaderSize) {
		return nil, ErrBadSegment
	}
	return attach(mem, hdr, capacity), nil
}

func attach(mem []byte, hdr *ringHeader, capacity uint64) *Ring {
	return &Ring{
		hdr:  hdr,
		data: mem[HeaderSize : HeaderSize+int(capacity) : HeaderSize+int(capacity)],
		mask: capacity - 1,
	}
}

// Capacity returns the data area size in bytes.
func (r *Ring) Capacity() int { return len(r.data) }

// Used returns committed but unreleased bytes.
func (r *Ring) Used() int {
	return int(atomic.LoadUint64(&r.hdr.widx) - atomic.LoadUint64(&r.hdr.ridx))
}

func (r *Ring) record(pos uint64) (size, kind *uint32) {
	p := unsafe.Pointer(&r.data[pos])
	return (*uint32)(p), (*uint32)(unsafe.Add(p, 4))
}

// Alloc reserves a contiguous n-byte region for writing. It returns nil when
// the ring lacks space; the caller retries later. Only the latest Alloc
// can be committed.
func (r *Ring) Alloc(n int) []byte {
	need := uint64(align8(recordHeader + n))
	capacity := uint64(len(r.data))
	if n <= 0 || need > capacity {
		return nil
	}
	w := atomic.LoadUint64(&r.hdr.widx)
	free := capacity - (w - atomic.LoadUint64(&r.hdr.ridx))
	pos := w & r.mask
	pad := uint64(0)
	if tail := capacity - pos; tail < need {
		pad = tail
	}
	if free < pad+need {
		return nil
	}
	if pad > 0 {
		size, kind := r.record(pos)
		*size = uint32(pad - recordHeader)
		*kind = recordWrap
		pos = 0
	}
	size, kind := r.record(pos)
	*size = uint32(n)
	*kind = recordData
	r.wpend = pad + need
	start := pos + recordHeader
	return r.data[start : start+uint64(n) : start+uint64(n)]
}

// Commit publishes the region returned by the last Alloc.
func (r *Ring) Commit() {
	if r.wpend == 0 {
		return
	}
	atomic.StoreUint64(&r.hdr.widx, atomic.LoadUint64(&r.hdr.widx)+r.wpend)
	r.wpend = 0
}

// Fetch returns the oldest committed record, or nil when the ring is empty.
// The region stays valid until Release.
func (r *Ring) Fetch() []byte {
	rd := atomic.LoadUint64(&r.hdr.ridx) + r.rpend
	w := atomic.LoadUint64(&r.hdr.widx)
	if rd == w {
		return nil
	}
	pos := rd & r.mask
	size, kind := r.record(pos)
	skip := uint64(0)
	if *kind == recordWrap {
		skip = uint64(len(r.data)) - pos
		if rd+skip == w {
			return nil
		}
		pos = 0
		size, _ = r.record(0)
	}
	n := uint64(*size)
	r.rpend += skip + uint64(align8(recordHeader+int(n)))
	start := pos + recordHeader
	return r.data[start : start+n : start+n]
}

// Release frees every record returned by Fetch since the last Release.
func (r *Ring) Release() {
	if r.rpend == 0 {
		return
	}
	atomic.StoreUint64(&r.hdr.ridx, atomic.LoadUint64(&r.hdr.ridx)+r.rpend)
	r.rpend = 0
}
