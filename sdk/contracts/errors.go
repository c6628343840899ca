package contracts

import "errors"

// Sentinel errors for expected failure modes. Callers match them with
// errors.Is; wrapped forms carry call-site context.
var (
	// ErrInvalidChannel indicates a channel index outside 1-16.
	ErrInvalidChannel = errors.New("channel index outside 1-16")
	// ErrOutOfRange indicates a programmatic value outside its valid domain.
	// Hardware-path setters clamp instead of returning this.
	ErrOutOfRange = errors.New("value out of range")
	// ErrChannelBusy indicates a note-on for a channel that already holds an
	// active note.
	ErrChannelBusy = errors.New("channel already holds an active note")
	// ErrNoteMismatch indicates a note-off that does not match the channel's
	// active note.
	ErrNoteMismatch = errors.New("note-off does not match active note")
	// ErrZoneOverlap indicates a zone configuration that would overlap the
	// other zone's manager or member channels.
	ErrZoneOverlap = errors.New("zone configuration overlaps the other zone")
)
