// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User is a customer of the platform. Order totals are cumulative and feed
// tier eligibility; they are only ever written through RecordOrder.
type User struct {
	ID              string    `db:"id"`
	Email           string    `db:"email"`
	Name            string    `db:"name"`
	PhoneNumber     *string   `db:"phone_number"`
	TotalOrderCount int       `db:"total_order_count"`
	TotalOrderValue int64     `db:"total_order_value"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Stats is the read-only slice of a user consumed by tier resolution.
// Order value is in minor currency units.
type Stats struct {
	UserID          string
	TotalOrderCount int
	TotalOrderValue int64
}

func (u *User) OrderStats() Stats {
	return Stats{
		UserID:          u.ID,
		TotalOrderCount: u.TotalOrderCount,
		TotalOrderValue: u.TotalOrderValue,
	}
}
