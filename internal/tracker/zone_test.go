package tracker

import "testing"

func TestZoneMemberChannels(t *testing.T) {
	lower := zone{manager: lowerManager, members: 3}
	got := lower.memberChannels()
	want := []uint8{2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lower members = %v, want %v", got, want)
		}
	}

	upper := zone{manager: upperManager, members: 3}
	got = upper.memberChannels()
	want = []uint8{15, 14, 13}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("upper members = %v, want %v", got, want)
		}
	}
}

func TestZoneMembership(t *testing.T) {
	z := zone{manager: lowerManager, members: 7}

	if !z.contains(1) {
		t.Errorf("manager channel not contained in its zone")
	}
	if !z.isMember(8) || z.isMember(1) || z.isMember(9) {
		t.Errorf("member range wrong for 7-member lower zone")
	}

	inactive := zone{manager: upperManager}
	if inactive.contains(16) || inactive.isMember(15) {
		t.Errorf("inactive zone should reserve no channels")
	}
}

func TestZoneOverlapDetection(t *testing.T) {
	lower := zone{manager: lowerManager, members: 10}
	upper := zone{manager: upperManager}

	// Lower occupies 1-11; upper claiming 4 members occupies 12-16.
	if upper.overlaps(&lower, 4) {
		t.Errorf("4 upper members should fit beside 10 lower members")
	}
	// Claiming 5 would put the upper bottom at channel 11, inside lower.
	if !upper.overlaps(&lower, 5) {
		t.Errorf("5 upper members should collide with 10 lower members")
	}
	// Releasing never overlaps.
	if upper.overlaps(&lower, 0) {
		t.Errorf("zero member count can never overlap")
	}
	// An inactive other zone reserves nothing.
	if lower.overlaps(&upper, 15) {
		t.Errorf("claim against inactive zone flagged as overlap")
	}
}
