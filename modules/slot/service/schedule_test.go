package service

import (
	"testing"

	"taruf-api/modules/slot/entity"
)

func TestBuildScheduleSortsAndResolvesPartners(t *testing.T) {
	rows := []entity.SlotAssignment{
		{SelectorRegistrationID: 1, SelectedRegistrationID: 2, Slot: 3, RoomNo: sp("4")},
		{SelectorRegistrationID: 5, SelectedRegistrationID: 1, Slot: 1, RoomNo: sp("2"), IsPerfectMatch: true},
		{SelectorRegistrationID: 1, SelectedRegistrationID: 9, Slot: 2},
	}
	profiles := map[int64]*entity.Profile{
		2: {ID: 2, Name: "Two"},
		5: {ID: 5, Name: "Five"},
	}

	got := BuildSchedule(rows, 1, profiles)
	if len(got) != 3 {
		t.Fatalf("entries = %d, want 3", len(got))
	}

	wantSlots := []int{1, 2, 3}
	for i, e := range got {
		if e.Slot != wantSlots[i] {
			t.Errorf("entry %d slot = %d, want %d", i, e.Slot, wantSlots[i])
		}
	}
	if got[0].Partner == nil || got[0].Partner.Name != "Five" || !got[0].IsPerfectMatch {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[1].Partner != nil {
		t.Errorf("missing profile should give nil partner, got %+v", got[1].Partner)
	}
	if got[2].Partner == nil || got[2].Partner.ID != 2 {
		t.Errorf("entry 2 partner = %+v", got[2].Partner)
	}
}

func TestPartnerIDsDeduplicates(t *testing.T) {
	rows := []entity.SlotAssignment{
		{SelectorRegistrationID: 1, SelectedRegistrationID: 2},
		{SelectorRegistrationID: 2, SelectedRegistrationID: 1},
		{SelectorRegistrationID: 3, SelectedRegistrationID: 1},
	}
	got := partnerIDs(rows, 1)
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("partnerIDs() = %v, want [2 3]", got)
	}
}
