// AngelaMos | 2026
// entity.go

package tier

import (
	"fmt"
	"time"

	"github.com/firstclub/membership-api/internal/core"
)

// Level orders the membership brackets. Silver is the designated default
// assigned when no tier's thresholds are met.
type Level string

const (
	LevelSilver   Level = "SILVER"
	LevelGold     Level = "GOLD"
	LevelPlatinum Level = "PLATINUM"
)

var levelRanks = map[Level]int{
	LevelSilver:   0,
	LevelGold:     1,
	LevelPlatinum: 2,
}

// Rank returns the ordinal of the level, silver lowest.
func (l Level) Rank() int {
	return levelRanks[l]
}

func (l Level) Valid() bool {
	_, ok := levelRanks[l]
	return ok
}

func ParseLevel(s string) (Level, error) {
	level := Level(s)
	if !level.Valid() {
		return "", fmt.Errorf(
			"unknown tier level %q: %w", s, core.ErrInvalidInput,
		)
	}
	return level, nil
}

// Tier is a discount/perk bracket. Thresholds are nullable: a nil floor
// means "no requirement" for that dimension.
type Tier struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Level           Level     `db:"tier_level"`
	MinOrderCount   *int      `db:"min_order_count"`
	MinOrderValue   *int64    `db:"min_order_value"`
	DiscountPercent int64     `db:"discount_percent"`
	FreeDelivery    bool      `db:"free_delivery"`
	PrioritySupport bool      `db:"priority_support"`
	ExclusiveDeals  bool      `db:"exclusive_deals"`
	Description     *string   `db:"description"`
	Active          bool      `db:"active"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}
