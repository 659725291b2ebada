// AngelaMos | 2026
// resolver.go

package tier

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/firstclub/membership-api/internal/core"
	"github.com/firstclub/membership-api/internal/user"
)

// Catalog is the read side of the tier store consumed by resolution.
type Catalog interface {
	ListActive(ctx context.Context) ([]Tier, error)
	GetByLevel(ctx context.Context, level Level) (*Tier, error)
}

// Resolver computes the tier a customer's order history earns. It performs
// no writes and is safe for concurrent use.
type Resolver struct {
	catalog Catalog
}

func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve returns the active tier with the strictest satisfied thresholds:
// eligible tiers sorted by min_order_count descending, then min_order_value
// descending. Ties on both keys go to the higher level, then the lower id,
// so the result never depends on catalog iteration order. When nothing
// matches, the silver tier is returned; a catalog without a silver tier is a
// deployment defect and reports core.ErrConfiguration.
func (r *Resolver) Resolve(ctx context.Context, stats user.Stats) (*Tier, error) {
	tiers, err := r.catalog.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve tier: %w", err)
	}

	eligible := make([]Tier, 0, len(tiers))
	for _, t := range tiers {
		if Eligible(&t, stats) {
			eligible = append(eligible, t)
		}
	}

	if len(eligible) == 0 {
		return r.defaultTier(ctx)
	}

	slices.SortStableFunc(eligible, compareStrictness)
	return &eligible[0], nil
}

// Eligible reports whether the stats satisfy every present floor of the
// tier. A tier with no floors matches everyone.
func Eligible(t *Tier, stats user.Stats) bool {
	if t.MinOrderCount != nil && stats.TotalOrderCount < *t.MinOrderCount {
		return false
	}
	if t.MinOrderValue != nil && stats.TotalOrderValue < *t.MinOrderValue {
		return false
	}
	return true
}

func (r *Resolver) defaultTier(ctx context.Context) (*Tier, error) {
	t, err := r.catalog.GetByLevel(ctx, LevelSilver)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf(
				"no default silver tier configured: %w",
				core.ErrConfiguration,
			)
		}
		return nil, fmt.Errorf("resolve default tier: %w", err)
	}
	return t, nil
}

func compareStrictness(a, b Tier) int {
	if c := compareDescInt(thresholdCount(a), thresholdCount(b)); c != 0 {
		return c
	}
	if c := compareDescInt64(thresholdValue(a), thresholdValue(b)); c != 0 {
		return c
	}
	if c := b.Level.Rank() - a.Level.Rank(); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// Absent floors sort as zero, matching how the catalog treats them: no
// requirement is the least strict requirement.
func thresholdCount(t Tier) int {
	if t.MinOrderCount == nil {
		return 0
	}
	return *t.MinOrderCount
}

func thresholdValue(t Tier) int64 {
	if t.MinOrderValue == nil {
		return 0
	}
	return *t.MinOrderValue
}

func compareDescInt(a, b int) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func compareDescInt64(a, b int64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
