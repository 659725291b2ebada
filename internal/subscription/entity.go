// AngelaMos | 2026
// entity.go

package subscription

import (
	"fmt"
	"time"

	"github.com/firstclub/membership-api/internal/core"
)

type Status string

// PENDING is a valid stored value but no lifecycle operation assigns it.
const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status admits no further transition on this
// record. A new record is created instead of re-activating a terminal one.
func (s Status) Terminal() bool {
	return s == StatusExpired || s == StatusCancelled
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf(
			"unknown subscription status %q: %w", s, core.ErrInvalidInput,
		)
	}
	return status, nil
}

// Subscription records one membership term. Records are never deleted;
// EXPIRED and CANCELLED rows are the user's history.
type Subscription struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	PlanID    string    `db:"plan_id"`
	TierID    string    `db:"tier_id"`
	Status    Status    `db:"status"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	AutoRenew bool      `db:"auto_renew"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
