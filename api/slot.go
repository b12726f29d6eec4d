// File: api/slot.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cache-line bounded timestamp record exchanged between producer and consumer.

package api

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is the platform cache line width reported by x/sys/cpu.
const CacheLineSize = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// Slot holds one record's timestamps in monotonic nanoseconds.
// End is zero until the loop is closed by the consumer or producer.
type Slot struct {
	Start int64
	End   int64
	// Seq is the record's logical index into the run's slot array.
	Seq uint64
	_   [40]byte
}

// SlotSize is the in-memory size of a Slot.
const SlotSize = int(unsafe.Sizeof(Slot{}))

// compile-time guard: a Slot must fit in one 64 byte cache line.
var _ [64 - unsafe.Sizeof(Slot{})]byte

// HasEnd reports whether the end timestamp was recorded.
func (s *Slot) HasEnd() bool { return s.End != 0 }

// Elapsed returns End-Start in nanoseconds.
func (s *Slot) Elapsed() int64 { return s.End - s.Start }
