// AngelaMos | 2026
// resolver_test.go

package tier_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firstclub/membership-api/internal/core"
	"github.com/firstclub/membership-api/internal/tier"
	"github.com/firstclub/membership-api/internal/user"
)

type fakeCatalog struct {
	tiers []tier.Tier
}

func (f *fakeCatalog) ListActive(_ context.Context) ([]tier.Tier, error) {
	active := make([]tier.Tier, 0, len(f.tiers))
	for _, t := range f.tiers {
		if t.Active {
			active = append(active, t)
		}
	}
	return active, nil
}

func (f *fakeCatalog) GetByLevel(
	_ context.Context,
	level tier.Level,
) (*tier.Tier, error) {
	for i := range f.tiers {
		if f.tiers[i].Level == level {
			return &f.tiers[i], nil
		}
	}
	return nil, core.ErrNotFound
}

func standardCatalog() *fakeCatalog {
	return &fakeCatalog{tiers: []tier.Tier{
		{
			ID:            "tier-silver",
			Name:          "Silver",
			Level:         tier.LevelSilver,
			MinOrderCount: intPtr(0),
			MinOrderValue: int64Ptr(0),
			Active:        true,
		},
		{
			ID:            "tier-gold",
			Name:          "Gold",
			Level:         tier.LevelGold,
			MinOrderCount: intPtr(10),
			MinOrderValue: int64Ptr(50000),
			Active:        true,
		},
		{
			ID:            "tier-platinum",
			Name:          "Platinum",
			Level:         tier.LevelPlatinum,
			MinOrderCount: intPtr(25),
			MinOrderValue: int64Ptr(150000),
			Active:        true,
		},
	}}
}

func stats(count int, value int64) user.Stats {
	return user.Stats{
		UserID:          "user-1",
		TotalOrderCount: count,
		TotalOrderValue: value,
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		stats      user.Stats
		wantTierID string
	}{
		{
			name:       "zero stats earn silver",
			stats:      stats(0, 0),
			wantTierID: "tier-silver",
		},
		{
			name:       "gold thresholds met exactly",
			stats:      stats(10, 50000),
			wantTierID: "tier-gold",
		},
		{
			name:       "gold count met but value short",
			stats:      stats(30, 49999),
			wantTierID: "tier-silver",
		},
		{
			name:       "between gold and platinum",
			stats:      stats(12, 60000),
			wantTierID: "tier-gold",
		},
		{
			name:       "platinum thresholds met",
			stats:      stats(25, 150000),
			wantTierID: "tier-platinum",
		},
		{
			name:       "far beyond platinum",
			stats:      stats(500, 9_000_000),
			wantTierID: "tier-platinum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver := tier.NewResolver(standardCatalog())

			got, err := resolver.Resolve(context.Background(), tt.stats)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTierID, got.ID)
		})
	}
}

func TestResolver_Resolve_Monotonic(t *testing.T) {
	t.Parallel()

	resolver := tier.NewResolver(standardCatalog())

	// Walking stats upward must never resolve to a lower level.
	steps := []user.Stats{
		stats(0, 0),
		stats(5, 10000),
		stats(10, 50000),
		stats(20, 100000),
		stats(25, 150000),
		stats(100, 1_000_000),
	}

	prevRank := -1
	for _, s := range steps {
		got, err := resolver.Resolve(context.Background(), s)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Level.Rank(), prevRank,
			"stats %+v resolved below the previous step", s)
		prevRank = got.Level.Rank()
	}
}

func TestResolver_Resolve_AbsentFloors(t *testing.T) {
	t.Parallel()

	// A tier with no floors matches everyone; an absent floor sorts as
	// zero so a tier with real thresholds still wins when satisfied.
	catalog := &fakeCatalog{tiers: []tier.Tier{
		{
			ID:     "tier-silver",
			Level:  tier.LevelSilver,
			Active: true,
		},
		{
			ID:            "tier-gold",
			Level:         tier.LevelGold,
			MinOrderCount: intPtr(10),
			Active:        true,
		},
	}}
	resolver := tier.NewResolver(catalog)

	got, err := resolver.Resolve(context.Background(), stats(0, 0))
	require.NoError(t, err)
	assert.Equal(t, "tier-silver", got.ID)

	got, err = resolver.Resolve(context.Background(), stats(10, 0))
	require.NoError(t, err)
	assert.Equal(t, "tier-gold", got.ID)
}

func TestResolver_Resolve_TieBreak(t *testing.T) {
	t.Parallel()

	t.Run("higher level wins on equal thresholds", func(t *testing.T) {
		t.Parallel()

		catalog := &fakeCatalog{tiers: []tier.Tier{
			{
				ID:            "tier-gold",
				Level:         tier.LevelGold,
				MinOrderCount: intPtr(5),
				MinOrderValue: int64Ptr(1000),
				Active:        true,
			},
			{
				ID:            "tier-platinum",
				Level:         tier.LevelPlatinum,
				MinOrderCount: intPtr(5),
				MinOrderValue: int64Ptr(1000),
				Active:        true,
			},
			{ID: "tier-silver", Level: tier.LevelSilver, Active: true},
		}}
		resolver := tier.NewResolver(catalog)

		got, err := resolver.Resolve(context.Background(), stats(5, 1000))
		require.NoError(t, err)
		assert.Equal(t, "tier-platinum", got.ID)
	})

	t.Run("lower id wins on equal thresholds and level", func(t *testing.T) {
		t.Parallel()

		catalog := &fakeCatalog{tiers: []tier.Tier{
			{
				ID:            "gold-b",
				Level:         tier.LevelGold,
				MinOrderCount: intPtr(5),
				Active:        true,
			},
			{
				ID:            "gold-a",
				Level:         tier.LevelGold,
				MinOrderCount: intPtr(5),
				Active:        true,
			},
			{ID: "tier-silver", Level: tier.LevelSilver, Active: true},
		}}
		resolver := tier.NewResolver(catalog)

		got, err := resolver.Resolve(context.Background(), stats(5, 0))
		require.NoError(t, err)
		assert.Equal(t, "gold-a", got.ID)
	})
}

func TestResolver_Resolve_InactiveTiersSkipped(t *testing.T) {
	t.Parallel()

	catalog := standardCatalog()
	for i := range catalog.tiers {
		if catalog.tiers[i].Level == tier.LevelPlatinum {
			catalog.tiers[i].Active = false
		}
	}
	resolver := tier.NewResolver(catalog)

	got, err := resolver.Resolve(context.Background(), stats(100, 1_000_000))
	require.NoError(t, err)
	assert.Equal(t, "tier-gold", got.ID)
}

func TestResolver_Resolve_NoSilverConfigured(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{tiers: []tier.Tier{
		{
			ID:            "tier-gold",
			Level:         tier.LevelGold,
			MinOrderCount: intPtr(10),
			Active:        true,
		},
	}}
	resolver := tier.NewResolver(catalog)

	_, err := resolver.Resolve(context.Background(), stats(0, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestEligible(t *testing.T) {
	t.Parallel()

	gold := tier.Tier{
		Level:         tier.LevelGold,
		MinOrderCount: intPtr(10),
		MinOrderValue: int64Ptr(50000),
	}

	assert.True(t, tier.Eligible(&gold, stats(10, 50000)))
	assert.False(t, tier.Eligible(&gold, stats(9, 50000)))
	assert.False(t, tier.Eligible(&gold, stats(10, 49999)))

	openTier := tier.Tier{Level: tier.LevelSilver}
	assert.True(t, tier.Eligible(&openTier, stats(0, 0)))
}

func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }
