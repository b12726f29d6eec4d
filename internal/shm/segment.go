// File: internal/shm/segment.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package shm

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
)

// DefaultSegmentSize matches the original 4 MiB ring.
const DefaultSegmentSize = 4 * 1024 * 1024

const segmentPrefix = "c2c_benchmark_"

var segmentSeq atomic.Uint64

// Segment is a mapped shared memory region backed by a file.
type Segment struct {
	Path string
	Mem  []byte

	file *os.File
}

// SegmentPath returns the backing file path for name, preferring /dev/shm.
func SegmentPath(name string) string {
	if info, err := os.Stat("/dev/shm"); err == nil && info.IsDir() {
		return filepath.Join("/dev/shm", segmentPrefix+name)
	}
	return filepath.Join(os.TempDir(), segmentPrefix+name)
}

// UniqueName returns a segment name that does not collide within this process.
func UniqueName() string {
	return fmt.Sprintf("%d_%d", os.Getpid(), segmentSeq.Add(1))
}

// CreateSegment creates and maps a new segment of size bytes.
func CreateSegment(name string, size int) (*Segment, error) {
	if size < HeaderSize+minDataSize {
		return nil, fmt.Errorf("shm: segment size %d below minimum %d", size, HeaderSize+minDataSize)
	}
	path := SegmentPath(name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("shm: create segment file %s: %w", path, err)
	}
	cleanup := func() {
		file.Close()
		os.Remove(path)
	}
	if err := file.Truncate(int64(size)); err != nil {
		cleanup()
		return nil, fmt.Errorf("shm: resize segment file: %w", err)
	}
	mem, err := mapFile(file, size)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("shm: map segment: %w", err)
	}
	return &Segment{Path: path, Mem: mem, file: file}, nil
}

// Close unmaps the segment, closes and removes the backing file.
func (s *Segment) Close() error {
	var first error
	if s.Mem != nil {
		if err := unmap(s.Mem); err != nil {
			first = fmt.Errorf("shm: unmap: %w", err)
		}
		s.Mem = nil
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil && first == nil {
			first = fmt.Errorf("shm: close: %w", err)
		}
		s.file = nil
	}
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) && first == nil {
		first = fmt.Errorf("shm: remove: %w", err)
	}
	return first
}
