//go:build !unix

// File: internal/shm/mmap_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Without mmap the segment lives on the heap. The backing file still exists
// so segment lifecycle is identical, but the memory is process-private.

package shm

import "os"

func mapFile(_ *os.File, size int) ([]byte, error) {
	// over-allocate so the header can start on a page boundary
	const page = 4096
	raw := make([]byte, size+page)
	off := int(pageOffset(raw))
	return raw[off : off+size : off+size], nil
}

func unmap([]byte) error { return nil }
