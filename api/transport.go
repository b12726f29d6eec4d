// File: api/transport.go
// Author: momentics <momentics@gmail.com>
//
// Transport abstracts the hand-off mechanism between producer and consumer.

package api

// Transport moves slots from producers to the single consumer.
//
// Send and Receive never block indefinitely on contention: Send returns
// ErrBusy when the caller must retry the same slot after Backoff, and
// Receive returns ok == false when nothing is available yet.
type Transport interface {
	// Name is the report name component, e.g. "chan_wr".
	Name() string
	// Send hands s to the consumer. s.Start is already stamped.
	Send(s *Slot) error
	// Receive polls once. The returned slot stays valid until Done.
	Receive() (s *Slot, ok bool)
	// Done finishes a received slot, persisting it to the run's slot array.
	Done(s *Slot)
	// Backoff is the retry policy applied by the producer after ErrBusy.
	Backoff()
	// Stats reports contention counters. Read only after the run joins.
	Stats() TransportStats
	// Close releases transport resources.
	Close() error
}

// TransportStats counts transient contention absorbed by retry loops.
type TransportStats struct {
	// Busy is the number of Send attempts rejected with ErrBusy.
	Busy uint64
	// Handshakes is the number of completed publish/echo exchanges.
	Handshakes uint64
}

// TransportFeatures describes producer-count and mode limits of a transport.
type TransportFeatures struct {
	MultiProducer bool
	Modes         []Mode
	DefaultMode   Mode
}

// Supports reports whether m is accepted.
func (f TransportFeatures) Supports(m Mode) bool {
	for _, v := range f.Modes {
		if v == m {
			return true
		}
	}
	return false
}
