package dto

import "time"

type TarufResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Location  *string    `json:"location,omitempty"`
	EventDate *time.Time `json:"event_date,omitempty"`
}

type RegistrationFilter struct {
	TarufID int64
	Group   string
}
