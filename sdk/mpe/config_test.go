package mpe

import (
	"errors"
	"testing"

	"github.com/midikit/mpe/sdk/contracts"
)

// nopLogger keeps test output quiet.
type nopLogger struct{}

func (nopLogger) Debug(string, ...contracts.Field) {}
func (nopLogger) Info(string, ...contracts.Field)  {}
func (nopLogger) Warn(string, ...contracts.Field)  {}
func (nopLogger) Error(string, ...contracts.Field) {}
func (nopLogger) Field() contracts.Field           { return nopField{} }
func (nopLogger) SetLevel(contracts.LogLevel)      {}

type nopField struct{}

func (f nopField) Bool(string, bool) contracts.Field     { return f }
func (f nopField) Int(string, int) contracts.Field       { return f }
func (f nopField) Int64(string, int64) contracts.Field   { return f }
func (f nopField) Uint64(string, uint64) contracts.Field { return f }
func (f nopField) Uint8(string, uint8) contracts.Field   { return f }
func (f nopField) String(string, string) contracts.Field { return f }
func (f nopField) Error(string, error) contracts.Field   { return f }

func newTestTracker(t *testing.T) contracts.Tracker {
	t.Helper()
	tr, err := NewTracker(contracts.WithLogger(nopLogger{}))
	if err != nil {
		t.Fatalf("NewTracker failed: %v", err)
	}
	return tr
}

func TestClaimLowerZoneDefaults(t *testing.T) {
	tr := newTestTracker(t)

	zone, err := ClaimLowerZone(tr, 7, 0)
	if err != nil {
		t.Fatalf("ClaimLowerZone failed: %v", err)
	}
	if zone.Manager != LowerZoneManager || zone.MemberCount != 7 {
		t.Fatalf("zone = %+v, want manager 1 with 7 members", zone)
	}
	if zone.PitchBendRange != DefaultPitchBendRange {
		t.Fatalf("bend range = %d, want default %d", zone.PitchBendRange, DefaultPitchBendRange)
	}

	members := zone.Members()
	if len(members) != 7 || members[0] != 2 || members[6] != 8 {
		t.Fatalf("members = %v, want channels 2-8", members)
	}
	state, err := tr.ChannelState(3)
	if err != nil {
		t.Fatalf("ChannelState failed: %v", err)
	}
	if state.PitchBendSensitivity != DefaultPitchBendRange {
		t.Fatalf("member sensitivity = %d, want %d", state.PitchBendSensitivity, DefaultPitchBendRange)
	}
}

func TestClaimValidatesLoudly(t *testing.T) {
	tr := newTestTracker(t)

	// Programmatic configuration fails instead of clamping.
	if _, err := ClaimLowerZone(tr, 0, 0); !errors.Is(err, contracts.ErrOutOfRange) {
		t.Errorf("member count 0 error = %v, want ErrOutOfRange", err)
	}
	if _, err := ClaimLowerZone(tr, 16, 0); !errors.Is(err, contracts.ErrOutOfRange) {
		t.Errorf("member count 16 error = %v, want ErrOutOfRange", err)
	}
	if _, err := ClaimLowerZone(tr, 7, 97); !errors.Is(err, contracts.ErrOutOfRange) {
		t.Errorf("bend range 97 error = %v, want ErrOutOfRange", err)
	}
	if tr.Active() {
		t.Errorf("rejected claims activated a zone")
	}
}

func TestClaimPropagatesZoneOverlap(t *testing.T) {
	tr := newTestTracker(t)

	if _, err := ClaimLowerZone(tr, 10, 0); err != nil {
		t.Fatalf("ClaimLowerZone failed: %v", err)
	}
	if _, err := ClaimUpperZone(tr, 5, 0); !errors.Is(err, contracts.ErrZoneOverlap) {
		t.Fatalf("overlapping upper claim error = %v, want ErrZoneOverlap", err)
	}
	if _, err := ClaimUpperZone(tr, 4, 24); err != nil {
		t.Fatalf("non-overlapping upper claim failed: %v", err)
	}
}

func TestReleaseAllZones(t *testing.T) {
	tr := newTestTracker(t)

	if _, err := ClaimLowerZone(tr, 7, 0); err != nil {
		t.Fatalf("ClaimLowerZone failed: %v", err)
	}
	if _, err := ClaimUpperZone(tr, 4, 0); err != nil {
		t.Fatalf("ClaimUpperZone failed: %v", err)
	}

	if err := ReleaseAllZones(tr); err != nil {
		t.Fatalf("ReleaseAllZones failed: %v", err)
	}
	if tr.Active() {
		t.Fatalf("expected no active zones after release")
	}
	if len(tr.Zones()) != 0 {
		t.Fatalf("zones = %+v, want none", tr.Zones())
	}
}
