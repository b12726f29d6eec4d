// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants.

package api

import "fmt"

// Mode selects which pair of events a slot's timestamps bracket.
type Mode int

const (
	// ModeWrite measures write start -> write completion, stamped by the producer.
	ModeWrite Mode = iota
	// ModeWriteRead measures write start -> read completion, stamped by the consumer.
	ModeWriteRead
	// ModeRoundTrip measures publish -> echo observed; one-way latency is half.
	ModeRoundTrip
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "w"
	case ModeWriteRead:
		return "wr"
	case ModeRoundTrip:
		return "rtt"
	default:
		return "unknown"
	}
}

// Describe returns the human readable interval description used in run headers.
func (m Mode) Describe() string {
	switch m {
	case ModeWrite:
		return "w start -> w end"
	case ModeWriteRead:
		return "w start -> r end"
	case ModeRoundTrip:
		return "w start -> echo observed (1/2 rtt)"
	default:
		return "unknown"
	}
}

// ConsumerStamps reports whether the consumer writes End on receipt.
func (m Mode) ConsumerStamps() bool { return m == ModeWriteRead }

// ProducerStamps reports whether the producer writes End after the hand-off returns.
func (m Mode) ProducerStamps() bool { return m == ModeWrite || m == ModeRoundTrip }

// ParseMode accepts the short and long spellings of each mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "w", "write":
		return ModeWrite, nil
	case "wr", "write-read":
		return ModeWriteRead, nil
	case "rtt", "round-trip":
		return ModeRoundTrip, nil
	}
	return 0, fmt.Errorf("%w: invalid measure type %q", ErrInvalidConfig, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
