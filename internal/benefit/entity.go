// AngelaMos | 2026
// entity.go

package benefit

import (
	"fmt"
	"time"

	"github.com/firstclub/membership-api/internal/core"
)

type Type string

const (
	TypeDiscount        Type = "DISCOUNT"
	TypeFreeDelivery    Type = "FREE_DELIVERY"
	TypePrioritySupport Type = "PRIORITY_SUPPORT"
	TypeExclusiveDeals  Type = "EXCLUSIVE_DEALS"
	TypeEarlyAccess     Type = "EARLY_ACCESS"
	TypeCustom          Type = "CUSTOM"
)

func (t Type) Valid() bool {
	switch t {
	case TypeDiscount, TypeFreeDelivery, TypePrioritySupport,
		TypeExclusiveDeals, TypeEarlyAccess, TypeCustom:
		return true
	default:
		return false
	}
}

func ParseType(s string) (Type, error) {
	benefitType := Type(s)
	if !benefitType.Valid() {
		return "", fmt.Errorf(
			"unknown benefit type %q: %w", s, core.ErrInvalidInput,
		)
	}
	return benefitType, nil
}

// Benefit is a perk attached to a membership tier. Value carries the
// type-specific payload, e.g. a percentage for DISCOUNT.
type Benefit struct {
	ID          string    `db:"id"`
	TierID      string    `db:"tier_id"`
	BenefitType Type      `db:"benefit_type"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Value       *string   `db:"value"`
	Active      bool      `db:"active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
