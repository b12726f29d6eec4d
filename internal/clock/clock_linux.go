//go:build linux

// File: internal/clock/clock_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package clock

import "golang.org/x/sys/unix"

// now reads CLOCK_MONOTONIC directly so the dump matches other tools' timespecs.
func now() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		panic("clock: CLOCK_MONOTONIC unavailable: " + err.Error())
	}
	return ts.Nano()
}
