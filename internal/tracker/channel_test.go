package tracker

import (
	"errors"
	"testing"

	"github.com/midikit/mpe/sdk/contracts"
)

func TestChannelDefaults(t *testing.T) {
	c := newChannel(5, 0)

	if c.role != contracts.RoleConventional {
		t.Errorf("role = %v, want conventional", c.role)
	}
	if c.pitchBend != 0 {
		t.Errorf("pitchBend = %d, want 0", c.pitchBend)
	}
	if c.pitchBendSensitivity != defaultSensitivity {
		t.Errorf("pitchBendSensitivity = %d, want %d", c.pitchBendSensitivity, defaultSensitivity)
	}
	if c.pressure != 0 {
		t.Errorf("pressure = %d, want 0", c.pressure)
	}
	if c.timbre != defaultTimbre {
		t.Errorf("timbre = %d, want %d", c.timbre, defaultTimbre)
	}
	if c.active != nil {
		t.Errorf("expected no active note on a fresh channel")
	}
}

func TestControllerClamping(t *testing.T) {
	c := newChannel(1, 0)

	t.Run("ExtremesAccepted", func(t *testing.T) {
		c.setPitchBend(bendMin)
		if c.pitchBend != bendMin {
			t.Errorf("pitchBend = %d, want %d", c.pitchBend, bendMin)
		}
		c.setPitchBend(bendMax)
		if c.pitchBend != bendMax {
			t.Errorf("pitchBend = %d, want %d", c.pitchBend, bendMax)
		}
		c.setPressure(127)
		if c.pressure != 127 {
			t.Errorf("pressure = %d, want 127", c.pressure)
		}
		c.setTimbre(0)
		if c.timbre != 0 {
			t.Errorf("timbre = %d, want 0", c.timbre)
		}
	})

	t.Run("OneBeyondClamps", func(t *testing.T) {
		c.setPitchBend(bendMin - 1)
		if c.pitchBend != bendMin {
			t.Errorf("pitchBend = %d, want clamp to %d", c.pitchBend, bendMin)
		}
		c.setPitchBend(bendMax + 1)
		if c.pitchBend != bendMax {
			t.Errorf("pitchBend = %d, want clamp to %d", c.pitchBend, bendMax)
		}
		c.setPressure(128)
		if c.pressure != 127 {
			t.Errorf("pressure = %d, want clamp to 127", c.pressure)
		}
		c.setTimbre(200)
		if c.timbre != 127 {
			t.Errorf("timbre = %d, want clamp to 127", c.timbre)
		}
	})
}

func TestPitchBendIdempotent(t *testing.T) {
	c := newChannel(1, 0)
	c.setPitchBend(1234)
	before := c.snapshot()
	c.setPitchBend(1234)
	if after := c.snapshot(); after != before {
		t.Fatalf("repeated identical setPitchBend changed state: %+v -> %+v", before, after)
	}
}

func TestNoteRoundTrip(t *testing.T) {
	c := newChannel(3, 0)

	if err := c.noteOn(60, 100, 10); err != nil {
		t.Fatalf("noteOn failed: %v", err)
	}
	if c.active == nil || c.active.Number != 60 || c.active.VelocityOn != 100 || c.active.StartTimestamp != 10 {
		t.Fatalf("active note = %+v, want note 60 vel 100 ts 10", c.active)
	}

	if err := c.noteOff(60, 40, 20); err != nil {
		t.Fatalf("noteOff failed: %v", err)
	}
	if c.active != nil {
		t.Fatalf("expected no active note after noteOff")
	}
	released := c.released.recent(1)
	if len(released) != 1 {
		t.Fatalf("expected exactly one released note, got %d", len(released))
	}
	n := released[0]
	if !n.Released || n.Number != 60 || n.VelocityOff != 40 || n.ReleaseTimestamp != 20 || n.Channel != 3 {
		t.Fatalf("released note = %+v", n)
	}
}

func TestNoteOnBusyChannel(t *testing.T) {
	c := newChannel(3, 0)
	if err := c.noteOn(60, 100, 0); err != nil {
		t.Fatalf("noteOn failed: %v", err)
	}

	err := c.noteOn(64, 90, 1)
	if !errors.Is(err, contracts.ErrChannelBusy) {
		t.Fatalf("second noteOn error = %v, want ErrChannelBusy", err)
	}
	if c.active.Number != 60 {
		t.Fatalf("active note changed to %d after rejected noteOn", c.active.Number)
	}
}

func TestNoteOffMismatch(t *testing.T) {
	c := newChannel(3, 0)

	if err := c.noteOff(60, 0, 0); !errors.Is(err, contracts.ErrNoteMismatch) {
		t.Fatalf("noteOff on idle channel = %v, want ErrNoteMismatch", err)
	}

	if err := c.noteOn(60, 100, 0); err != nil {
		t.Fatalf("noteOn failed: %v", err)
	}
	if err := c.noteOff(61, 0, 1); !errors.Is(err, contracts.ErrNoteMismatch) {
		t.Fatalf("noteOff with wrong number = %v, want ErrNoteMismatch", err)
	}
	if c.active == nil {
		t.Fatalf("rejected noteOff cleared the active note")
	}
}

func TestForceNoteOnEvictsIntoRing(t *testing.T) {
	c := newChannel(3, 0)
	if err := c.noteOn(60, 100, 0); err != nil {
		t.Fatalf("noteOn failed: %v", err)
	}

	c.forceNoteOn(64, 90, 5)

	if c.active == nil || c.active.Number != 64 {
		t.Fatalf("expected active note 64 after forceNoteOn")
	}
	released := c.released.recent(1)
	if len(released) != 1 || released[0].Number != 60 || released[0].ReleaseTimestamp != 5 {
		t.Fatalf("evicted note = %+v, want note 60 released at ts 5", released)
	}
}

func TestResetControllersKeepsHistory(t *testing.T) {
	c := newChannel(3, 0)
	if err := c.noteOn(60, 100, 0); err != nil {
		t.Fatalf("noteOn failed: %v", err)
	}
	c.forceRelease(1)

	c.resetControllers(contracts.RoleMember, 48)

	if c.pitchBendSensitivity != 48 || c.role != contracts.RoleMember {
		t.Errorf("reset did not apply role defaults")
	}
	if c.released.len() != 1 {
		t.Errorf("reset dropped released history, len = %d", c.released.len())
	}
}
