package tracker

import (
	"testing"

	"github.com/midikit/mpe/sdk/contracts"
)

func TestRingEvictsOldestOnOverflow(t *testing.T) {
	r := newRing(3)
	for i := uint8(1); i <= 4; i++ {
		r.push(contracts.Note{Number: i})
	}

	if r.len() != 3 {
		t.Fatalf("expected ring length 3 after overflow, got %d", r.len())
	}

	got := r.recent(3)
	want := []uint8{4, 3, 2}
	for i, n := range got {
		if n.Number != want[i] {
			t.Fatalf("recent(3)[%d] = note %d, want %d", i, n.Number, want[i])
		}
	}
}

func TestRingRecentIsRestartable(t *testing.T) {
	r := newRing(4)
	r.push(contracts.Note{Number: 10})
	r.push(contracts.Note{Number: 20})

	first := r.recent(2)
	second := r.recent(2)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected re-query to return the same 2 entries, got %d then %d", len(first), len(second))
	}
	if first[0].Number != 20 || second[0].Number != 20 {
		t.Fatalf("expected newest-first order on every query")
	}
}

func TestRingRecentBounds(t *testing.T) {
	r := newRing(4)
	r.push(contracts.Note{Number: 1})

	if got := r.recent(10); len(got) != 1 {
		t.Errorf("recent(10) with one entry returned %d entries", len(got))
	}
	if got := r.recent(0); got != nil {
		t.Errorf("recent(0) = %v, want nil", got)
	}
	empty := newRing(2)
	if got := empty.recent(5); got != nil {
		t.Errorf("recent on empty ring = %v, want nil", got)
	}
}

func TestRingZeroCapacityUsesDefault(t *testing.T) {
	r := newRing(0)
	for i := 0; i < DefaultRingCapacity+2; i++ {
		r.push(contracts.Note{Number: uint8(i)})
	}
	if r.len() != DefaultRingCapacity {
		t.Fatalf("expected default capacity %d, got length %d", DefaultRingCapacity, r.len())
	}
}
