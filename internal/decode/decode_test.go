package decode

import (
	"testing"

	"github.com/midikit/mpe/sdk/contracts"
)

func TestDecodeNoteMessages(t *testing.T) {
	t.Run("NoteOn", func(t *testing.T) {
		ev, ok := Message([]byte{0x93, 60, 100}, 42)
		if !ok {
			t.Fatalf("expected note-on to decode")
		}
		if ev.Kind != contracts.EventNoteOn || ev.Channel != 4 || ev.Note != 60 || ev.Velocity != 100 || ev.Timestamp != 42 {
			t.Fatalf("decoded = %+v", ev)
		}
	})

	t.Run("NoteOnVelocityZeroIsNoteOff", func(t *testing.T) {
		ev, ok := Message([]byte{0x90, 60, 0}, 0)
		if !ok {
			t.Fatalf("expected message to decode")
		}
		if ev.Kind != contracts.EventNoteOff || ev.Channel != 1 || ev.Note != 60 {
			t.Fatalf("decoded = %+v, want note-off on channel 1", ev)
		}
	})

	t.Run("NoteOff", func(t *testing.T) {
		ev, ok := Message([]byte{0x82, 61, 10}, 0)
		if !ok {
			t.Fatalf("expected note-off to decode")
		}
		if ev.Kind != contracts.EventNoteOff || ev.Channel != 3 || ev.Note != 61 || ev.Velocity != 10 {
			t.Fatalf("decoded = %+v", ev)
		}
	})
}

func TestDecodePitchBend(t *testing.T) {
	cases := []struct {
		name     string
		lsb, msb byte
		want     int16
	}{
		{"Center", 0x00, 0x40, 0},
		{"Min", 0x00, 0x00, -8192},
		{"Max", 0x7F, 0x7F, 8191},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok := Message([]byte{0xE0, tc.lsb, tc.msb}, 0)
			if !ok {
				t.Fatalf("expected pitch bend to decode")
			}
			if ev.Kind != contracts.EventPitchBend || ev.Bend != tc.want {
				t.Fatalf("decoded = %+v, want bend %d", ev, tc.want)
			}
		})
	}
}

func TestDecodeChannelPressure(t *testing.T) {
	ev, ok := Message([]byte{0xD1, 90}, 0)
	if !ok {
		t.Fatalf("expected channel pressure to decode")
	}
	if ev.Kind != contracts.EventChannelPressure || ev.Channel != 2 || ev.Value != 90 {
		t.Fatalf("decoded = %+v", ev)
	}
}

func TestDecodeControlChange(t *testing.T) {
	ev, ok := Message([]byte{0xB0, contracts.CCTimbre, 100}, 0)
	if !ok {
		t.Fatalf("expected control change to decode")
	}
	if ev.Kind != contracts.EventControlChange || ev.Channel != 1 || ev.Controller != contracts.CCTimbre || ev.Value != 100 {
		t.Fatalf("decoded = %+v", ev)
	}
}

func TestDecodeUntrackedMessage(t *testing.T) {
	// Program change is not part of the tracked model.
	if _, ok := Message([]byte{0xC0, 5}, 0); ok {
		t.Fatalf("expected program change to be rejected")
	}
}
