package tracker

import (
	"fmt"

	"github.com/midikit/mpe/sdk/contracts"
)

// Controller value domains and defaults. Member channels default to the MPE
// per-note bend range of 48 semitones; everything else uses the conventional
// MIDI default of 2.
const (
	bendMin = -8192
	bendMax = 8191

	defaultTimbre            = 64
	defaultSensitivity       = 2
	defaultMemberSensitivity = 48
)

// channel holds one MIDI channel's continuous controller values, the note it
// currently owns (at most one, MPE's core constraint), and the bounded
// history of notes released on it. Entries are reset in place on zone
// reconfiguration, never reallocated.
type channel struct {
	index uint8 // 1-16.
	role  contracts.ChannelRole

	pitchBend            int16
	pitchBendSensitivity uint8
	pressure             uint8
	timbre               uint8

	active   *contracts.Note
	released ring

	// Pending RPN selector, RPNNull when none, plus the last received
	// selector bytes from the CC 101/100 pair.
	pendingRPN uint16
	rpnSelMSB  uint8
	rpnSelLSB  uint8
}

func newChannel(index uint8, ringCapacity int) channel {
	c := channel{index: index, released: newRing(ringCapacity)}
	c.resetControllers(contracts.RoleConventional, defaultSensitivity)
	return c
}

// resetControllers restores controller defaults for the given role. The
// released history survives a reset; only capacity overflow evicts it.
func (c *channel) resetControllers(role contracts.ChannelRole, sensitivity uint8) {
	c.role = role
	c.pitchBend = 0
	c.pitchBendSensitivity = sensitivity
	c.pressure = 0
	c.timbre = defaultTimbre
	c.pendingRPN = contracts.RPNNull
	c.rpnSelMSB = 0x7F
	c.rpnSelLSB = 0x7F
}

func (c *channel) setPitchBend(v int16) {
	c.pitchBend = clampBend(v)
}

func (c *channel) setPressure(v uint8) {
	c.pressure = clamp7(v)
}

func (c *channel) setTimbre(v uint8) {
	c.timbre = clamp7(v)
}

// noteOn assigns a note to the channel. The state layer never silently
// overwrites: a busy channel fails and the caller decides stealing policy.
func (c *channel) noteOn(note, velocity uint8, ts uint64) error {
	if c.active != nil {
		return fmt.Errorf("%w: channel %d note %d", contracts.ErrChannelBusy, c.index, c.active.Number)
	}
	c.active = &contracts.Note{
		Number:         clamp7(note),
		Channel:        c.index,
		VelocityOn:     clamp7(velocity),
		StartTimestamp: ts,
	}
	return nil
}

// forceNoteOn assigns a note, moving any current active note into the
// released history first.
func (c *channel) forceNoteOn(note, velocity uint8, ts uint64) {
	c.forceRelease(ts)
	c.active = &contracts.Note{
		Number:         clamp7(note),
		Channel:        c.index,
		VelocityOn:     clamp7(velocity),
		StartTimestamp: ts,
	}
}

// noteOff releases the active note, attaching off-velocity and timestamp and
// moving the record into the released ring.
func (c *channel) noteOff(note, velocity uint8, ts uint64) error {
	if c.active == nil || c.active.Number != clamp7(note) {
		return fmt.Errorf("%w: channel %d note %d", contracts.ErrNoteMismatch, c.index, note)
	}
	n := *c.active
	n.Released = true
	n.VelocityOff = clamp7(velocity)
	n.ReleaseTimestamp = ts
	c.released.push(n)
	c.active = nil
	return nil
}

// forceRelease moves the active note, if any, into the released history with
// off-velocity zero. Used by all-notes-off and zone eviction so in-flight
// notes are not silently dropped from history.
func (c *channel) forceRelease(ts uint64) {
	if c.active == nil {
		return
	}
	n := *c.active
	n.Released = true
	n.VelocityOff = 0
	n.ReleaseTimestamp = ts
	c.released.push(n)
	c.active = nil
}

func (c *channel) snapshot() contracts.ChannelState {
	s := contracts.ChannelState{
		Channel:              c.index,
		Role:                 c.role,
		PitchBend:            c.pitchBend,
		PitchBendSensitivity: c.pitchBendSensitivity,
		Pressure:             c.pressure,
		Timbre:               c.timbre,
	}
	if c.active != nil {
		n := *c.active
		s.ActiveNote = &n
	}
	return s
}

func clampBend(v int16) int16 {
	if v < bendMin {
		return bendMin
	}
	if v > bendMax {
		return bendMax
	}
	return v
}

func clamp7(v uint8) uint8 {
	if v > 127 {
		return 127
	}
	return v
}
