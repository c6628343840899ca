package mpe

import (
	"fmt"

	"github.com/midikit/mpe/sdk/contracts"
)

// DefaultPitchBendRange is the MPE default per-note pitch bend range in
// semitones, applied when a zone is claimed without an explicit range.
const DefaultPitchBendRange = 48

// maxPitchBendRange is the largest semitone range the RPN coarse byte can
// express that receivers commonly honor.
const maxPitchBendRange = 96

// Zone manager channels fixed by the MPE spec.
const (
	LowerZoneManager uint8 = 1
	UpperZoneManager uint8 = 16
)

// The helpers below compose tracker operations into the MPE-mandated setup
// sequences. They hold no state of their own and read and write only through
// the Tracker contract. Unlike the hardware-path setters, which clamp,
// programmatic configuration fails loudly so misconfiguration is caught
// early.

// ClaimLowerZone claims the Lower Zone (manager channel 1) with the given
// member count. A bendRange of zero selects the MPE default of 48 semitones.
// Returns the resulting zone snapshot.
func ClaimLowerZone(t contracts.Tracker, memberCount, bendRange int) (contracts.Zone, error) {
	return claimZone(t, LowerZoneManager, memberCount, bendRange)
}

// ClaimUpperZone claims the Upper Zone (manager channel 16) with the given
// member count. A bendRange of zero selects the MPE default of 48 semitones.
// Returns the resulting zone snapshot.
func ClaimUpperZone(t contracts.Tracker, memberCount, bendRange int) (contracts.Zone, error) {
	return claimZone(t, UpperZoneManager, memberCount, bendRange)
}

// ReleaseLowerZone releases the Lower Zone, resetting its channels to
// conventional defaults.
func ReleaseLowerZone(t contracts.Tracker) error {
	return t.ConfigureZone(LowerZoneManager, 0, 0)
}

// ReleaseUpperZone releases the Upper Zone, resetting its channels to
// conventional defaults.
func ReleaseUpperZone(t contracts.Tracker) error {
	return t.ConfigureZone(UpperZoneManager, 0, 0)
}

// ReleaseAllZones releases both zones, leaving the port out of MPE mode.
func ReleaseAllZones(t contracts.Tracker) error {
	if err := ReleaseLowerZone(t); err != nil {
		return err
	}
	return ReleaseUpperZone(t)
}

func claimZone(t contracts.Tracker, manager uint8, memberCount, bendRange int) (contracts.Zone, error) {
	if memberCount < 1 || memberCount > 15 {
		return contracts.Zone{}, fmt.Errorf("%w: member count %d outside 1-15", contracts.ErrOutOfRange, memberCount)
	}
	if bendRange == 0 {
		bendRange = DefaultPitchBendRange
	}
	if bendRange < 1 || bendRange > maxPitchBendRange {
		return contracts.Zone{}, fmt.Errorf("%w: bend range %d outside 1-%d", contracts.ErrOutOfRange, bendRange, maxPitchBendRange)
	}
	if err := t.ConfigureZone(manager, uint8(memberCount), uint8(bendRange)); err != nil {
		return contracts.Zone{}, err
	}
	z, ok := t.ZoneOf(manager)
	if !ok {
		return contracts.Zone{}, fmt.Errorf("zone claim did not activate manager %d", manager)
	}
	return z, nil
}
