package entity

import "time"

// Round1Selection is one round1_selected row with the denormalized profile
// columns the admin screens read.
type Round1Selection struct {
	ID                     int64      `db:"id" json:"id"`
	TarufID                int64      `db:"taruf_id" json:"taruf_id"`
	SelectorRegistrationID int64      `db:"selector_registration_id" json:"selector_registration_id"`
	SelectedRegistrationID int64      `db:"selected_registration_id" json:"selected_registration_id"`
	SelectorITS            *string    `db:"selector_its" json:"selector_its"`
	SelectedITS            *string    `db:"selected_its" json:"selected_its"`
	SelectorName           *string    `db:"selector_name" json:"selector_name"`
	SelectedName           *string    `db:"selected_name" json:"selected_name"`
	SelectorPhoto1URL      *string    `db:"selector_photo1url" json:"selector_photo1url"`
	SelectedPhoto1URL      *string    `db:"selected_photo1url" json:"selected_photo1url"`
	SelectorDateOfBirth    *time.Time `db:"selector_date_of_birth" json:"selector_date_of_birth"`
	SelectedDateOfBirth    *time.Time `db:"selected_date_of_birth" json:"selected_date_of_birth"`
	SelectedBadge          *string    `db:"selected_badge" json:"selected_badge"`
	SelectorCounsellor     *string    `db:"selector_counsellor" json:"selector_counsellor"`
	FirstChoice            *string    `db:"first_choice" json:"first_choice"`
	RoomNo                 *string    `db:"room_no" json:"room_no"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
}

type Round2Selection struct {
	ID                     int64      `db:"id" json:"id"`
	TarufID                int64      `db:"taruf_id" json:"taruf_id"`
	SelectorRegistrationID int64      `db:"selector_registration_id" json:"selector_registration_id"`
	SelectedRegistrationID int64      `db:"selected_registration_id" json:"selected_registration_id"`
	SelectorITS            *string    `db:"selector_its" json:"selector_its"`
	SelectedITS            *string    `db:"selected_its" json:"selected_its"`
	SelectorName           *string    `db:"selector_name" json:"selector_name"`
	SelectedName           *string    `db:"selected_name" json:"selected_name"`
	SelectorBadge          *string    `db:"selector_badge" json:"selector_badge"`
	SelectedBadge          *string    `db:"selected_badge" json:"selected_badge"`
	SelectedPhoto1URL      *string    `db:"selected_photo1url" json:"selected_photo1url"`
	SelectedDateOfBirth    *time.Time `db:"selected_date_of_birth" json:"selected_date_of_birth"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
}

// Candidate is the registration snapshot copied onto selection rows.
type Candidate struct {
	ID          int64      `db:"id"`
	TarufID     int64      `db:"taruf_id"`
	ITSNumber   string     `db:"its_number"`
	Name        string     `db:"name"`
	Photo1URL   *string    `db:"photo1_url"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	BadgeNo     *string    `db:"badge_no"`
	Counsellor  *string    `db:"counsellor"`
}

// SelectorState summarizes a selector's round-1 rows. Rows become locked
// once any of them has a room assigned.
type SelectorState struct {
	Total  int `db:"total"`
	Locked int `db:"locked"`
}

func (s SelectorState) IsLocked() bool {
	return s.Locked > 0
}
