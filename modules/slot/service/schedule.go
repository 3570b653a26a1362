package service

import (
	"sort"

	"taruf-api/modules/slot/dto"
	"taruf-api/modules/slot/entity"
)

// partnerOf returns the other participant of row relative to registrationID.
func partnerOf(row entity.SlotAssignment, registrationID int64) int64 {
	if row.SelectorRegistrationID == registrationID {
		return row.SelectedRegistrationID
	}
	return row.SelectorRegistrationID
}

// partnerIDs lists the distinct partners of registrationID across rows.
func partnerIDs(rows []entity.SlotAssignment, registrationID int64) []int64 {
	seen := make(map[int64]struct{}, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		id := partnerOf(r, registrationID)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// BuildSchedule projects assignment rows into one candidate's schedule,
// ordered by slot. A partner missing from profiles is reported as nil.
func BuildSchedule(rows []entity.SlotAssignment, registrationID int64, profiles map[int64]*entity.Profile) []dto.ScheduleEntry {
	entries := make([]dto.ScheduleEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, dto.ScheduleEntry{
			Slot:           r.Slot,
			Timings:        r.Timings,
			RoomNo:         r.RoomNo,
			Partner:        profiles[partnerOf(r, registrationID)],
			IsPerfectMatch: r.IsPerfectMatch,
			IsFirstChoice:  r.IsFirstChoice,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Slot < entries[j].Slot
	})
	return entries
}
