package tracker

import "github.com/midikit/mpe/sdk/contracts"

// DefaultRingCapacity is the per-channel released-note history size used
// when no capacity option is given.
const DefaultRingCapacity = 8

// ring is a fixed-capacity FIFO of released notes. A full ring evicts the
// oldest entry on push; there is no dynamic growth, so per-update cost stays
// constant for real-time callers.
type ring struct {
	buf   []contracts.Note
	head  int // Next write position.
	count int
}

func newRing(capacity int) ring {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return ring{buf: make([]contracts.Note, capacity)}
}

// push appends a released note, evicting the oldest entry when full.
// It never fails.
func (r *ring) push(n contracts.Note) {
	r.buf[r.head] = n
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// recent returns up to n released notes, newest first. The result is a copy;
// re-querying does not consume.
func (r *ring) recent(n int) []contracts.Note {
	if n > r.count {
		n = r.count
	}
	if n <= 0 {
		return nil
	}
	out := make([]contracts.Note, 0, n)
	for i := 1; i <= n; i++ {
		idx := (r.head - i + len(r.buf)) % len(r.buf)
		out = append(out, r.buf[idx])
	}
	return out
}

func (r *ring) len() int {
	return r.count
}
