// Package tracker maintains the live channel and zone state implied by a
// stream of decoded MPE messages. It is a pure state model: it allocates
// nothing per query beyond snapshots, performs no I/O, and expects exclusive
// access during any mutating call.
package tracker

import (
	"fmt"

	"github.com/midikit/mpe/sdk/contracts"
)

// defaultZoneBendRange is the MPE default per-note pitch bend range applied
// when a zone is claimed without an explicit range.
const defaultZoneBendRange = 48

// mpeTracker owns all 16 channel entries and the two zone entries
// exclusively. One instance per MIDI port or role; multiple instances
// coexist side by side.
type mpeTracker struct {
	logger   contracts.Logger
	channels [16]channel
	lower    zone
	upper    zone

	// Most recent caller-supplied timestamp, used for forced releases
	// triggered by untimestamped messages (zone resize, wire all-notes-off).
	lastTS uint64
}

// New creates a tracker with all channels conventional and both zones
// inactive.
func New(options *contracts.Options) contracts.Tracker {
	t := &mpeTracker{
		logger: options.Logger,
		lower:  zone{manager: lowerManager, bendRange: defaultZoneBendRange},
		upper:  zone{manager: upperManager, bendRange: defaultZoneBendRange},
	}
	for i := range t.channels {
		t.channels[i] = newChannel(uint8(i+1), options.RingCapacity)
	}
	return t
}

func (t *mpeTracker) channelAt(ch uint8) (*channel, error) {
	if ch < 1 || ch > 16 {
		return nil, fmt.Errorf("%w: %d", contracts.ErrInvalidChannel, ch)
	}
	return &t.channels[ch-1], nil
}

// Apply dispatches one decoded event to the matching update rule. The event
// kind set is closed; the whole update-rule table lives in this one switch.
func (t *mpeTracker) Apply(ev contracts.Event) error {
	switch ev.Kind {
	case contracts.EventNoteOn:
		return t.NoteOn(ev.Channel, ev.Note, ev.Velocity, ev.Timestamp)
	case contracts.EventNoteOff:
		return t.NoteOff(ev.Channel, ev.Note, ev.Velocity, ev.Timestamp)
	case contracts.EventPitchBend:
		return t.PitchBend(ev.Channel, ev.Bend)
	case contracts.EventChannelPressure:
		return t.ChannelPressure(ev.Channel, ev.Value)
	case contracts.EventControlChange:
		return t.controlChange(ev)
	default:
		t.logger.Warn("unknown event kind",
			t.logger.Field().Uint8("kind", uint8(ev.Kind)),
			t.logger.Field().Uint8("channel", ev.Channel))
		return nil
	}
}

// controlChange routes the controllers the MPE model interprets. Controllers
// outside that set do not affect tracked state.
func (t *mpeTracker) controlChange(ev contracts.Event) error {
	c, err := t.channelAt(ev.Channel)
	if err != nil {
		return err
	}
	switch ev.Controller {
	case contracts.CCTimbre:
		return t.Timbre(ev.Channel, ev.Value)
	case contracts.CCRPNMSB:
		c.rpnSelMSB = clamp7(ev.Value)
		return t.BeginRPN(ev.Channel, uint16(c.rpnSelMSB)<<7|uint16(c.rpnSelLSB))
	case contracts.CCRPNLSB:
		c.rpnSelLSB = clamp7(ev.Value)
		return t.BeginRPN(ev.Channel, uint16(c.rpnSelMSB)<<7|uint16(c.rpnSelLSB))
	case contracts.CCNRPNMSB, contracts.CCNRPNLSB:
		// An NRPN selector abandons any pending RPN; the data entry that
		// follows belongs to the NRPN, which the MPE model does not track.
		c.pendingRPN = contracts.RPNNull
		return nil
	case contracts.CCDataEntryMSB:
		return t.ApplyRPNValue(ev.Channel, ev.Value, 0)
	case contracts.CCDataEntryLSB:
		// Fine data entry arrives after the coarse value has completed the
		// pending RPN; sensitivity fractions below one semitone are not
		// tracked.
		t.logger.Debug("ignoring RPN fine data entry",
			t.logger.Field().Uint8("channel", ev.Channel),
			t.logger.Field().Uint8("value", ev.Value))
		return nil
	case contracts.CCAllNotesOff:
		return t.AllNotesOff(ev.Channel, ev.Timestamp)
	default:
		t.logger.Debug("untracked controller",
			t.logger.Field().Uint8("channel", ev.Channel),
			t.logger.Field().Uint8("controller", ev.Controller))
		return nil
	}
}

// NoteOn assigns a note to a channel, failing with ErrChannelBusy if one is
// already active there.
func (t *mpeTracker) NoteOn(ch, note, velocity uint8, ts uint64) error {
	c, err := t.channelAt(ch)
	if err != nil {
		return err
	}
	if err := c.noteOn(note, velocity, ts); err != nil {
		return err
	}
	t.lastTS = ts
	t.checkInvariants()
	return nil
}

// ForceNoteOn assigns a note, evicting any current active note into the
// released history first.
func (t *mpeTracker) ForceNoteOn(ch, note, velocity uint8, ts uint64) error {
	c, err := t.channelAt(ch)
	if err != nil {
		return err
	}
	c.forceNoteOn(note, velocity, ts)
	t.lastTS = ts
	t.checkInvariants()
	return nil
}

// NoteOff releases the channel's active note.
func (t *mpeTracker) NoteOff(ch, note, velocity uint8, ts uint64) error {
	c, err := t.channelAt(ch)
	if err != nil {
		return err
	}
	if err := c.noteOff(note, velocity, ts); err != nil {
		return err
	}
	t.lastTS = ts
	t.checkInvariants()
	return nil
}

// PitchBend stores a bend value, clamping out-of-range input.
func (t *mpeTracker) PitchBend(ch uint8, value int16) error {
	c, err := t.channelAt(ch)
	if err != nil {
		return err
	}
	c.setPitchBend(value)
	return nil
}

// ChannelPressure stores a channel aftertouch value, clamping out-of-range
// input.
func (t *mpeTracker) ChannelPressure(ch, value uint8) error {
	c, err := t.channelAt(ch)
	if err != nil {
		return err
	}
	c.setPressure(value)
	return nil
}

// Timbre stores a CC 74 value, clamping out-of-range input.
func (t *mpeTracker) Timbre(ch, value uint8) error {
	c, err := t.channelAt(ch)
	if err != nil {
		return err
	}
	c.setTimbre(value)
	return nil
}

// SetPitchBendSensitivity sets the bend range in semitones. MPE receivers
// treat the range as zone-wide for member channels, so a member applies the
// value to every member of its zone; managers and conventional channels
// change only themselves.
func (t *mpeTracker) SetPitchBendSensitivity(ch, semitones uint8) error {
	c, err := t.channelAt(ch)
	if err != nil {
		return err
	}
	semitones = clamp7(semitones)
	if z := t.zoneFor(ch); z != nil && c.role == contracts.RoleMember {
		for _, member := range z.memberChannels() {
			t.channels[member-1].pitchBendSensitivity = semitones
		}
		return nil
	}
	c.pitchBendSensitivity = semitones
	return nil
}

// BeginRPN records a pending RPN selector for the channel. A new selector
// abandons any incomplete pending one; RPNNull clears it.
func (t *mpeTracker) BeginRPN(ch uint8, param uint16) error {
	c, err := t.channelAt(ch)
	if err != nil {
		return err
	}
	c.pendingRPN = param
	return nil
}

// ApplyRPNValue completes a pending RPN with its data entry value. Data
// entry with no pending selector is ignored, matching receiver convention.
// The pending state clears on completion.
func (t *mpeTracker) ApplyRPNValue(ch, coarse, fine uint8) error {
	c, err := t.channelAt(ch)
	if err != nil {
		return err
	}
	pending := c.pendingRPN
	if pending == contracts.RPNNull {
		return nil
	}
	c.pendingRPN = contracts.RPNNull
	switch pending {
	case contracts.RPNPitchBendSensitivity:
		return t.SetPitchBendSensitivity(ch, coarse)
	case contracts.RPNMPEConfiguration:
		if ch != lowerManager && ch != upperManager {
			t.logger.Warn("MPE configuration RPN on non-manager channel",
				t.logger.Field().Uint8("channel", ch))
			return nil
		}
		count := coarse
		if count > 15 {
			count = 15
		}
		return t.ConfigureZone(ch, count, 0)
	default:
		t.logger.Debug("untracked RPN",
			t.logger.Field().Uint8("channel", ch),
			t.logger.Field().Int("param", int(pending)))
		return nil
	}
}

// ConfigureZone (re)configures the zone anchored at manager channel 1 or 16.
// Validation happens before any mutation, so a rejected configuration leaves
// state untouched. Channels leaving or joining the zone have active notes
// force-released into their rings and controllers reset, mirroring the MPE
// recommendation that a zone resize implies all-notes-off on affected
// channels. Channels that stay members keep their current state.
func (t *mpeTracker) ConfigureZone(manager, memberCount, pitchBendRange uint8) error {
	if manager != lowerManager && manager != upperManager {
		return fmt.Errorf("%w: manager channel must be 1 or 16, got %d", contracts.ErrInvalidChannel, manager)
	}
	if memberCount > 15 {
		return fmt.Errorf("%w: member count %d", contracts.ErrOutOfRange, memberCount)
	}
	if pitchBendRange == 0 {
		pitchBendRange = defaultZoneBendRange
	}

	z, other := &t.lower, &t.upper
	if manager == upperManager {
		z, other = &t.upper, &t.lower
	}
	if z.overlaps(other, memberCount) {
		return fmt.Errorf("%w: manager %d with %d members", contracts.ErrZoneOverlap, manager, memberCount)
	}

	wasActive := z.active()
	oldMembers := z.memberChannels()
	z.members = memberCount
	z.bendRange = pitchBendRange
	newMembers := z.memberChannels()

	for _, ch := range oldMembers {
		if !z.isMember(ch) {
			c := &t.channels[ch-1]
			c.forceRelease(t.lastTS)
			c.resetControllers(contracts.RoleConventional, defaultSensitivity)
		}
	}
	for _, ch := range newMembers {
		if !wasActive || !memberOf(oldMembers, ch) {
			c := &t.channels[ch-1]
			c.forceRelease(t.lastTS)
			c.resetControllers(contracts.RoleMember, pitchBendRange)
		}
	}

	mc := &t.channels[manager-1]
	switch {
	case z.active() && !wasActive:
		mc.role = contracts.RoleManager
	case !z.active() && wasActive:
		mc.forceRelease(t.lastTS)
		mc.resetControllers(contracts.RoleConventional, defaultSensitivity)
	}

	t.logger.Info("zone configured",
		t.logger.Field().Uint8("manager", manager),
		t.logger.Field().Uint8("members", memberCount),
		t.logger.Field().Uint8("bendRange", pitchBendRange))
	t.checkInvariants()
	return nil
}

// AllNotesOff force-releases the channel's active note. Controller values
// are left untouched, per MPE convention.
func (t *mpeTracker) AllNotesOff(ch uint8, ts uint64) error {
	c, err := t.channelAt(ch)
	if err != nil {
		return err
	}
	if ts == 0 {
		ts = t.lastTS
	}
	c.forceRelease(ts)
	t.checkInvariants()
	return nil
}

// AllNotesOffAll force-releases every channel's active note.
func (t *mpeTracker) AllNotesOffAll(ts uint64) {
	if ts == 0 {
		ts = t.lastTS
	}
	for i := range t.channels {
		t.channels[i].forceRelease(ts)
	}
	t.checkInvariants()
}

// ChannelState returns a snapshot of one channel.
func (t *mpeTracker) ChannelState(ch uint8) (contracts.ChannelState, error) {
	c, err := t.channelAt(ch)
	if err != nil {
		return contracts.ChannelState{}, err
	}
	return c.snapshot(), nil
}

// ReleasedNotes returns up to n most recently released notes on the channel,
// newest first.
func (t *mpeTracker) ReleasedNotes(ch uint8, n int) ([]contracts.Note, error) {
	c, err := t.channelAt(ch)
	if err != nil {
		return nil, err
	}
	return c.released.recent(n), nil
}

// ActiveNotes returns the active note of every channel holding one, in
// channel order.
func (t *mpeTracker) ActiveNotes() []contracts.Note {
	var notes []contracts.Note
	for i := range t.channels {
		if t.channels[i].active != nil {
			notes = append(notes, *t.channels[i].active)
		}
	}
	return notes
}

// Zones returns the currently active zones.
func (t *mpeTracker) Zones() []contracts.Zone {
	var zones []contracts.Zone
	if t.lower.active() {
		zones = append(zones, t.lower.snapshot())
	}
	if t.upper.active() {
		zones = append(zones, t.upper.snapshot())
	}
	return zones
}

// ZoneOf returns the zone containing ch as manager or member.
func (t *mpeTracker) ZoneOf(ch uint8) (contracts.Zone, bool) {
	if z := t.zoneFor(ch); z != nil {
		return z.snapshot(), true
	}
	return contracts.Zone{}, false
}

// IsMemberChannel reports whether ch is a member channel of an active zone.
func (t *mpeTracker) IsMemberChannel(ch uint8) bool {
	return t.lower.isMember(ch) || t.upper.isMember(ch)
}

// Active reports whether any zone is active.
func (t *mpeTracker) Active() bool {
	return t.lower.active() || t.upper.active()
}

func (t *mpeTracker) zoneFor(ch uint8) *zone {
	if t.lower.contains(ch) {
		return &t.lower
	}
	if t.upper.contains(ch) {
		return &t.upper
	}
	return nil
}

func memberOf(chans []uint8, ch uint8) bool {
	for _, c := range chans {
		if c == ch {
			return true
		}
	}
	return false
}

// checkInvariants re-validates the structural invariants after a mutation:
// zone channel sets stay disjoint and channel roles agree with the zone
// table. Violations indicate an internal bug and are logged, never panicked,
// since the tracker may sit on a real-time path.
func (t *mpeTracker) checkInvariants() {
	if t.lower.active() && t.upper.active() {
		if 1+t.lower.members >= 16-t.upper.members {
			t.logger.Error("invariant violation: zone spans overlap",
				t.logger.Field().Uint8("lowerMembers", t.lower.members),
				t.logger.Field().Uint8("upperMembers", t.upper.members))
		}
	}
	for i := range t.channels {
		ch := uint8(i + 1)
		want := contracts.RoleConventional
		switch {
		case (ch == lowerManager && t.lower.active()) || (ch == upperManager && t.upper.active()):
			want = contracts.RoleManager
		case t.IsMemberChannel(ch):
			want = contracts.RoleMember
		}
		if t.channels[i].role != want {
			t.logger.Error("invariant violation: channel role out of sync",
				t.logger.Field().Uint8("channel", ch),
				t.logger.Field().String("role", t.channels[i].role.String()),
				t.logger.Field().String("want", want.String()))
		}
	}
}
