package entity

import "time"

// Selection is the part of a round1_selected row the assignment engine reads.
type Selection struct {
	ID          int64   `db:"id"`
	TarufID     int64   `db:"taruf_id"`
	SelectorID  int64   `db:"selector_registration_id"`
	SelectedID  int64   `db:"selected_registration_id"`
	SelectorITS *string `db:"selector_its"`
	SelectedITS *string `db:"selected_its"`
	FirstChoice *string `db:"first_choice"`
	RoomNo      *string `db:"room_no"`
}

// ClassifiedSelection carries the match flags computed for one run. They are
// never written back to round1_selected.
type ClassifiedSelection struct {
	Selection
	IsPerfectMatch     bool
	IsFirstChoiceMatch bool
}

// Qualifies reports whether the auto-assignment engine places this row.
func (c ClassifiedSelection) Qualifies() bool {
	return c.IsPerfectMatch || c.IsFirstChoiceMatch
}

// SlotAssignment is one round1_slot row. Rows with either flag set are owned
// by auto-assignment; rows with both flags false were placed by an admin.
type SlotAssignment struct {
	ID                     int64      `db:"id" json:"id"`
	TarufID                int64      `db:"taruf_id" json:"taruf_id"`
	SelectorRegistrationID int64      `db:"selector_registration_id" json:"selector_registration_id"`
	SelectedRegistrationID int64      `db:"selected_registration_id" json:"selected_registration_id"`
	CandidateITS           *string    `db:"candidate_its" json:"candidate_its"`
	Slot                   int        `db:"slot" json:"slot"`
	RoomNo                 *string    `db:"room_no" json:"room_no"`
	Timings                *string    `db:"timings" json:"timings"`
	IsPerfectMatch         bool       `db:"is_perfect_match" json:"is_perfect_match"`
	IsFirstChoice          bool       `db:"is_first_choice" json:"is_first_choice"`
	AdminNote              *string    `db:"admin_note" json:"admin_note,omitempty"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt              *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

func (a SlotAssignment) IsAuto() bool {
	return a.IsPerfectMatch || a.IsFirstChoice
}

// ManualSlot is an admin edit of an existing pairing. RoomNo and
// CandidateITS are only written when their Set flag is true.
type ManualSlot struct {
	TarufID                int64
	SelectorRegistrationID int64
	SelectedRegistrationID int64
	Slot                   int
	RoomNo                 *string
	RoomNoSet              bool
	CandidateITS           *string
	CandidateITSSet        bool
}

// Profile is the registration data shown next to a partner.
type Profile struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Photo1URL *string `db:"photo1_url" json:"photo1_url"`
	ITSNumber string  `db:"its_number" json:"its_number"`
	BadgeNo   *string `db:"badge_no" json:"badge_no"`
}
