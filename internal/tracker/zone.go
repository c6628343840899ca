package tracker

import "github.com/midikit/mpe/sdk/contracts"

// Manager channels fixed by the MPE spec: the Lower Zone is anchored at
// channel 1, the Upper Zone at channel 16.
const (
	lowerManager uint8 = 1
	upperManager uint8 = 16
)

// zone is one of the two MPE zones. A zone with zero members is inactive and
// reserves no channels.
type zone struct {
	manager   uint8
	members   uint8 // Member channel count, 0-15.
	bendRange uint8 // Default per-note bend range applied to new members.
}

func (z *zone) active() bool {
	return z.members > 0
}

// memberChannels returns the member channel numbers, nearest the manager
// first: ascending from 2 for the Lower Zone, descending from 15 for the
// Upper Zone.
func (z *zone) memberChannels() []uint8 {
	return z.memberRange(z.members)
}

func (z *zone) memberRange(count uint8) []uint8 {
	chans := make([]uint8, 0, count)
	for i := uint8(0); i < count; i++ {
		if z.manager == lowerManager {
			chans = append(chans, 2+i)
		} else {
			chans = append(chans, 15-i)
		}
	}
	return chans
}

func (z *zone) isMember(ch uint8) bool {
	if !z.active() {
		return false
	}
	if z.manager == lowerManager {
		return ch >= 2 && ch <= 1+z.members
	}
	return ch <= 15 && ch >= 16-z.members
}

func (z *zone) contains(ch uint8) bool {
	return z.active() && (ch == z.manager || z.isMember(ch))
}

// overlaps reports whether claiming count members on this zone would collide
// with the other zone's manager or members. Inactive zones reserve nothing.
func (z *zone) overlaps(other *zone, count uint8) bool {
	if count == 0 || !other.active() {
		return false
	}
	// Lower occupies 1..1+count, upper occupies 16-count..16. They collide
	// exactly when the spans meet in the middle.
	var lowerTop, upperBottom uint8
	if z.manager == lowerManager {
		lowerTop = 1 + count
		upperBottom = 16 - other.members
	} else {
		lowerTop = 1 + other.members
		upperBottom = 16 - count
	}
	return lowerTop >= upperBottom
}

func (z *zone) snapshot() contracts.Zone {
	return contracts.Zone{
		Manager:        z.manager,
		MemberCount:    z.members,
		PitchBendRange: z.bendRange,
	}
}
