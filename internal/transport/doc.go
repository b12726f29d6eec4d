// Package transport
// Author: momentics <momentics@gmail.com>
//
// Hand-off mechanisms measured by the harness, all behind api.Transport:
//
//   - QueueTransport: bounded MPSC queue carrying slot pointers.
//   - RingTransport: SPSC shared-memory ring carrying slot copies.
//   - HandshakeTransport: acquire/release sequence ping-pong, no payload.
//
// None of them treats contention as an error. Send reports api.ErrBusy and
// the producer retries the same slot after Backoff.
package transport
