package entity

import "time"

type Taruf struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Location  *string    `db:"location"`
	EventDate *time.Time `db:"event_date"`
	Status    int        `db:"status"`
}

// Registration is a candidate's sign-up for one taruf. The password column
// is never selected into it.
type Registration struct {
	ID          int64      `db:"id" json:"id"`
	TarufID     int64      `db:"taruf_id" json:"taruf_id"`
	ITSNumber   string     `db:"its_number" json:"its_number"`
	Name        string     `db:"name" json:"name"`
	Gender      *string    `db:"gender" json:"gender"`
	GroupName   *string    `db:"group_name" json:"group"`
	BadgeNo     *string    `db:"badge_no" json:"badge_no"`
	Photo1URL   *string    `db:"photo1_url" json:"photo1_url"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth"`
	CurrentCity *string    `db:"current_city" json:"current_city"`
	Counsellor  *string    `db:"counsellor" json:"counsellor"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
