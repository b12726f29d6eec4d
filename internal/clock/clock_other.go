//go:build !linux

// File: internal/clock/clock_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package clock

import "github.com/loov/hrtime"

// base keeps readings strictly positive so a zero End still means "unset".
const base = int64(1) << 32

func now() int64 { return base + int64(hrtime.Now()) }
