package dto

import "taruf-api/modules/slot/entity"

// ===================== Request DTOs =====================

// ManualSlotUpdateRequest accepts slot, room and ITS values as either JSON
// strings or numbers, the way admin forms send them.
type ManualSlotUpdateRequest struct {
	TarufID                int64 `json:"taruf_id"`
	SelectorRegistrationID int64 `json:"selector_registration_id"`
	SelectedRegistrationID int64 `json:"selected_registration_id"`
	Slot                   any   `json:"slot"`
	RoomNo                 any   `json:"room_no"`
	CandidateITS           any   `json:"candidate_its"`
}

type SlotTiming struct {
	Slot    int    `json:"slot"`
	Timings string `json:"timings"`
}

type SetTimingsRequest struct {
	Timings []SlotTiming `json:"timings"`
}

type ReplaceFirstChoiceRequest struct {
	TarufID                int64 `json:"taruf_id"`
	SelectorRegistrationID int64 `json:"selector_registration_id"`
	NewSelectedID          int64 `json:"new_selected_registration_id"`
}

// ===================== Response DTOs =====================

type UnassignedPair struct {
	SelectorRegistrationID int64  `json:"selector_registration_id"`
	SelectedRegistrationID int64  `json:"selected_registration_id"`
	IsPerfectMatch         bool   `json:"is_perfect_match"`
	IsFirstChoice          bool   `json:"is_first_choice"`
	Reason                 string `json:"reason"`
}

type AutoAssignResponse struct {
	RunID           string           `json:"run_id"`
	AssignedPairs   int              `json:"assigned_pairs"`
	MaxAssignedSlot int              `json:"max_assigned_slot"`
	ReplacedRows    int64            `json:"replaced_rows"`
	Unassigned      []UnassignedPair `json:"unassigned"`
	Message         string           `json:"message"`
}

type EnqueueResponse struct {
	TaskID  string `json:"task_id"`
	TarufID int64  `json:"taruf_id"`
}

type ClearSlotsResponse struct {
	ClearedCount int64 `json:"cleared_count"`
}

type FailedSlot struct {
	Slot  int    `json:"slot"`
	Error string `json:"error"`
}

type SetTimingsResponse struct {
	UpdatedSlots []int        `json:"updated_slots"`
	UpdatedRows  int64        `json:"updated_rows"`
	FailedSlots  []FailedSlot `json:"failed_slots"`
}

type ScheduleEntry struct {
	Slot           int             `json:"slot"`
	Timings        *string         `json:"timings"`
	RoomNo         *string         `json:"room_no"`
	Partner        *entity.Profile `json:"partner"`
	IsPerfectMatch bool            `json:"is_perfect_match"`
	IsFirstChoice  bool            `json:"is_first_choice"`
}

// SlotListItem is one row of the admin slot listing.
type SlotListItem struct {
	entity.SlotAssignment
	SelectorName *string `json:"selector_name"`
	SelectedName *string `json:"selected_name"`
}
