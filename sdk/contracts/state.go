package contracts

// ChannelRole describes how a channel participates in MPE.
type ChannelRole uint8

const (
	// RoleConventional is a channel outside any zone.
	RoleConventional ChannelRole = iota
	// RoleManager is the manager channel of an active zone.
	RoleManager
	// RoleMember is a member channel of an active zone.
	RoleMember
)

// String returns the role name.
func (r ChannelRole) String() string {
	switch r {
	case RoleManager:
		return "manager"
	case RoleMember:
		return "member"
	default:
		return "conventional"
	}
}

// Note is a snapshot of a note record. Identity is the triple
// (Channel, Number, StartTimestamp); two notes with the same number on the
// same channel at different times are distinct records.
type Note struct {
	Number         uint8
	Channel        uint8
	VelocityOn     uint8
	StartTimestamp uint64

	// Filled in once the note is released.
	Released         bool
	VelocityOff      uint8
	ReleaseTimestamp uint64
}

// ChannelState is a read-only snapshot of one channel's current state.
type ChannelState struct {
	Channel              uint8
	Role                 ChannelRole
	PitchBend            int16 // -8192..8191, center 0.
	PitchBendSensitivity uint8 // Semitones.
	Pressure             uint8 // 0-127.
	Timbre               uint8 // CC 74 value, 0-127, center 64.
	ActiveNote           *Note // Nil when the channel holds no note.
}

// Zone is a read-only snapshot of an active MPE zone.
type Zone struct {
	Manager        uint8 // 1 for the Lower Zone, 16 for the Upper Zone.
	MemberCount    uint8 // 1-15; a zone with zero members is not reported.
	PitchBendRange uint8 // Default per-note bend range in semitones.
}

// Members returns the zone's member channel numbers, nearest the manager
// first. The Lower Zone grows upward from channel 2, the Upper Zone downward
// from channel 15.
func (z Zone) Members() []uint8 {
	members := make([]uint8, 0, z.MemberCount)
	for i := uint8(0); i < z.MemberCount; i++ {
		if z.Manager == 1 {
			members = append(members, 2+i)
		} else {
			members = append(members, 15-i)
		}
	}
	return members
}

// Contains reports whether ch is the zone's manager or one of its members.
func (z Zone) Contains(ch uint8) bool {
	if ch == z.Manager {
		return true
	}
	if z.Manager == 1 {
		return ch >= 2 && ch <= 1+z.MemberCount
	}
	return ch <= 15 && ch >= 16-z.MemberCount
}

// Tracker maintains the live MPE state implied by a stream of decoded MIDI
// events, for a sender or receiver role. All methods are synchronous and
// complete or fail immediately; the caller owns synchronization if the
// tracker is shared across goroutines.
type Tracker interface {
	// Apply dispatches one decoded event to the matching update rule.
	Apply(ev Event) error

	// NoteOn assigns a note to a channel. Fails with ErrChannelBusy if the
	// channel already holds an active note.
	NoteOn(ch, note, velocity uint8, ts uint64) error
	// ForceNoteOn assigns a note to a channel, moving any current active note
	// into the released history first (steal-on-conflict semantics).
	ForceNoteOn(ch, note, velocity uint8, ts uint64) error
	// NoteOff releases the channel's active note. Fails with ErrNoteMismatch
	// if no note is active or the number does not match.
	NoteOff(ch, note, velocity uint8, ts uint64) error

	// PitchBend, ChannelPressure and Timbre update continuous controller
	// values. Out-of-range input is clamped, never rejected, since hardware
	// can send out-of-spec values.
	PitchBend(ch uint8, value int16) error
	ChannelPressure(ch, value uint8) error
	Timbre(ch, value uint8) error

	// SetPitchBendSensitivity sets the bend range in semitones. On a member
	// channel the new range applies to every member of its zone.
	SetPitchBendSensitivity(ch, semitones uint8) error

	// BeginRPN and ApplyRPNValue mirror the two-message RPN sequence. A new
	// selector abandons any incomplete pending one; RPNNull clears it.
	BeginRPN(ch uint8, param uint16) error
	ApplyRPNValue(ch, coarse, fine uint8) error

	// ConfigureZone (re)configures the zone anchored at manager channel 1 or
	// 16. memberCount zero releases the zone. Channels leaving the zone have
	// active notes force-released and controllers reset to defaults.
	ConfigureZone(manager, memberCount, pitchBendRange uint8) error

	// AllNotesOff force-releases the channel's active note into its released
	// history. Continuous controller values are left untouched.
	AllNotesOff(ch uint8, ts uint64) error
	// AllNotesOffAll applies AllNotesOff to every channel.
	AllNotesOffAll(ts uint64)

	// ChannelState returns a snapshot of one channel.
	ChannelState(ch uint8) (ChannelState, error)
	// ReleasedNotes returns up to n most recently released notes on the
	// channel, newest first. Querying does not consume.
	ReleasedNotes(ch uint8, n int) ([]Note, error)
	// ActiveNotes returns the active note of every channel that holds one,
	// in channel order.
	ActiveNotes() []Note
	// Zones returns the currently active zones.
	Zones() []Zone
	// ZoneOf returns the zone containing ch as manager or member.
	ZoneOf(ch uint8) (Zone, bool)
	// IsMemberChannel reports whether ch is a member channel of a zone.
	IsMemberChannel(ch uint8) bool
	// Active reports whether any zone is active, i.e. the port is in MPE mode.
	Active() bool
}
