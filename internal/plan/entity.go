// AngelaMos | 2026
// entity.go

package plan

import (
	"fmt"
	"time"

	"github.com/firstclub/membership-api/internal/core"
)

type Type string

const (
	TypeMonthly   Type = "MONTHLY"
	TypeQuarterly Type = "QUARTERLY"
	TypeYearly    Type = "YEARLY"
)

func (t Type) Valid() bool {
	switch t {
	case TypeMonthly, TypeQuarterly, TypeYearly:
		return true
	default:
		return false
	}
}

func ParseType(s string) (Type, error) {
	planType := Type(s)
	if !planType.Valid() {
		return "", fmt.Errorf(
			"unknown plan type %q: %w", s, core.ErrInvalidInput,
		)
	}
	return planType, nil
}

// Plan is a billing cadence a subscription is purchased under. Price is in
// minor currency units.
type Plan struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	PlanType       Type      `db:"plan_type"`
	Price          int64     `db:"price"`
	DurationInDays int       `db:"duration_in_days"`
	Description    *string   `db:"description"`
	Active         bool      `db:"active"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
