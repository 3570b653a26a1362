package entity

import "time"

type Admin struct {
	ID        int64      `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Name      *string    `db:"name"`
	Role      string     `db:"role"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// CandidateCredential is the slice of a registration used to sign a
// candidate in. Password is nil until the candidate sets a PIN.
type CandidateCredential struct {
	ID        int64   `db:"id"`
	TarufID   int64   `db:"taruf_id"`
	ITSNumber string  `db:"its_number"`
	Name      string  `db:"name"`
	Password  *string `db:"password"`
}

func (c *CandidateCredential) HasPassword() bool {
	return c.Password != nil && *c.Password != ""
}
