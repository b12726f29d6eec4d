// File: internal/clock/clock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Monotonic nanosecond timer used for slot timestamps.

package clock

import (
	"fmt"
	"time"
)

// Now returns the monotonic clock reading in nanoseconds. Readings are only
// comparable within one process.
func Now() int64 { return now() }

// Since returns the nanoseconds elapsed from ts.
func Since(ts int64) int64 { return now() - ts }

// Format renders a reading as seconds.nanoseconds with nine fractional digits.
func Format(ts int64) string {
	sec := ts / int64(time.Second)
	nsec := ts % int64(time.Second)
	if nsec < 0 {
		sec--
		nsec += int64(time.Second)
	}
	return fmt.Sprintf("%d.%09d", sec, nsec)
}
