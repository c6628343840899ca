package contracts

// EventKind identifies the type of a decoded MIDI event. The set is closed:
// the tracker dispatches on it exhaustively and ignores nothing silently.
type EventKind uint8

const (
	// EventNoteOn is a Note On with velocity greater than zero.
	EventNoteOn EventKind = iota
	// EventNoteOff is a Note Off, or a Note On with velocity zero.
	EventNoteOff
	// EventPitchBend carries a 14-bit bend value centered on zero.
	EventPitchBend
	// EventChannelPressure carries monophonic channel aftertouch.
	EventChannelPressure
	// EventControlChange carries a controller number and 7-bit value.
	EventControlChange
)

// Event is a single decoded MIDI channel-voice message. The tracker consumes
// events in this shape; decoding raw status/data bytes into it is the
// caller's (or the capture layer's) job.
type Event struct {
	Kind      EventKind
	Channel   uint8  // MIDI channel, 1-16.
	Timestamp uint64 // Caller-supplied monotonic timestamp.

	Note     uint8 // Note number for EventNoteOn / EventNoteOff.
	Velocity uint8 // Velocity for EventNoteOn / EventNoteOff.

	Bend int16 // Signed bend value, -8192..8191, for EventPitchBend.

	Controller uint8 // Controller number for EventControlChange.
	Value      uint8 // Controller or pressure value, 0-127.
}

// Controller numbers the tracker interprets on the ControlChange path.
const (
	// CCTimbre is CC 74, the MPE per-note timbre dimension.
	CCTimbre uint8 = 74
	// CCNRPNLSB selects the low byte of an NRPN parameter.
	CCNRPNLSB uint8 = 98
	// CCNRPNMSB selects the high byte of an NRPN parameter.
	CCNRPNMSB uint8 = 99
	// CCRPNLSB selects the low byte of an RPN parameter.
	CCRPNLSB uint8 = 100
	// CCRPNMSB selects the high byte of an RPN parameter.
	CCRPNMSB uint8 = 101
	// CCDataEntryMSB carries the coarse value for the selected RPN.
	CCDataEntryMSB uint8 = 6
	// CCDataEntryLSB carries the fine value for the selected RPN.
	CCDataEntryLSB uint8 = 38
	// CCAllNotesOff is the channel-mode All Notes Off message.
	CCAllNotesOff uint8 = 123
)

// Registered parameter numbers relevant to MPE.
const (
	// RPNPitchBendSensitivity sets the per-note bend range in semitones.
	RPNPitchBendSensitivity uint16 = 0x0000
	// RPNMPEConfiguration configures a zone when received on a manager channel.
	RPNMPEConfiguration uint16 = 0x0006
	// RPNNull deselects any pending parameter.
	RPNNull uint16 = 0x3FFF
)
