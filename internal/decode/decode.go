// Package decode converts raw MIDI channel-voice bytes into the decoded
// event shape the tracker consumes. Each call handles one complete message;
// running status and SysEx are the transport's problem, not ours.
package decode

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/midikit/mpe/sdk/contracts"
)

// Message decodes a single complete MIDI message into an Event. The second
// return value is false for message types the tracker does not model
// (program change, poly aftertouch, system messages).
func Message(data []byte, ts uint64) (contracts.Event, bool) {
	msg := gomidi.Message(data)

	var ch, key, vel, val uint8
	var rel int16
	var abs uint16

	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		kind := contracts.EventNoteOn
		if vel == 0 {
			// Running-status convention: Note On with velocity zero is a
			// Note Off.
			kind = contracts.EventNoteOff
		}
		return contracts.Event{
			Kind:      kind,
			Channel:   ch + 1,
			Timestamp: ts,
			Note:      key,
			Velocity:  vel,
		}, true
	case msg.GetNoteOff(&ch, &key, &vel):
		return contracts.Event{
			Kind:      contracts.EventNoteOff,
			Channel:   ch + 1,
			Timestamp: ts,
			Note:      key,
			Velocity:  vel,
		}, true
	case msg.GetPitchBend(&ch, &rel, &abs):
		return contracts.Event{
			Kind:      contracts.EventPitchBend,
			Channel:   ch + 1,
			Timestamp: ts,
			Bend:      rel,
		}, true
	case msg.GetAfterTouch(&ch, &val):
		return contracts.Event{
			Kind:      contracts.EventChannelPressure,
			Channel:   ch + 1,
			Timestamp: ts,
			Value:     val,
		}, true
	case msg.GetControlChange(&ch, &key, &val):
		return contracts.Event{
			Kind:       contracts.EventControlChange,
			Channel:    ch + 1,
			Timestamp:  ts,
			Controller: key,
			Value:      val,
		}, true
	}
	return contracts.Event{}, false
}
