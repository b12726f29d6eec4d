// File: internal/shm/align.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package shm

import "unsafe"

// pageOffset returns how many bytes to skip so b starts on a 4 KiB boundary.
func pageOffset(b []byte) uintptr {
	const page = 4096
	rem := uintptr(unsafe.Pointer(&b[0])) % page
	if rem == 0 {
		return 0
	}
	return page - rem
}

func align8(n int) int { return (n + 7) &^ 7 }
