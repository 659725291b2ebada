// AngelaMos | 2026
// seed.go

package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/firstclub/membership-api/internal/plan"
	"github.com/firstclub/membership-api/internal/tier"
)

// Seeder loads the default membership catalog into an empty store. Plans
// and tiers are seeded independently; a non-empty table is left alone.
type Seeder struct {
	plans  plan.Repository
	tiers  tier.Repository
	logger *slog.Logger
}

func NewSeeder(
	plans plan.Repository,
	tiers tier.Repository,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{plans: plans, tiers: tiers, logger: logger}
}

func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedPlans(ctx); err != nil {
		return fmt.Errorf("seed plans: %w", err)
	}
	if err := s.seedTiers(ctx); err != nil {
		return fmt.Errorf("seed tiers: %w", err)
	}
	return nil
}

func (s *Seeder) seedPlans(ctx context.Context) error {
	existing, err := s.plans.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range defaultPlans() {
		if err := s.plans.Create(ctx, &p); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "seeded membership plans", "count", 3)
	return nil
}

func (s *Seeder) seedTiers(ctx context.Context) error {
	existing, err := s.tiers.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, t := range defaultTiers() {
		if err := s.tiers.Create(ctx, &t); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "seeded membership tiers", "count", 3)
	return nil
}

func defaultPlans() []plan.Plan {
	return []plan.Plan{
		{
			ID:             uuid.New().String(),
			Name:           "Monthly Membership",
			PlanType:       plan.TypeMonthly,
			Price:          999,
			DurationInDays: 30,
			Description:    strPtr("Monthly subscription with all basic benefits"),
			Active:         true,
		},
		{
			ID:             uuid.New().String(),
			Name:           "Quarterly Membership",
			PlanType:       plan.TypeQuarterly,
			Price:          2499,
			DurationInDays: 90,
			Description:    strPtr("Quarterly subscription with 15% savings"),
			Active:         true,
		},
		{
			ID:             uuid.New().String(),
			Name:           "Yearly Membership",
			PlanType:       plan.TypeYearly,
			Price:          8999,
			DurationInDays: 365,
			Description:    strPtr("Yearly subscription with 25% savings"),
			Active:         true,
		},
	}
}

func defaultTiers() []tier.Tier {
	return []tier.Tier{
		{
			ID:              uuid.New().String(),
			Name:            "Silver",
			Level:           tier.LevelSilver,
			MinOrderCount:   intPtr(0),
			MinOrderValue:   int64Ptr(0),
			DiscountPercent: 5,
			FreeDelivery:    true,
			Description:     strPtr("Entry level tier with 5% discount and free delivery"),
			Active:          true,
		},
		{
			ID:              uuid.New().String(),
			Name:            "Gold",
			Level:           tier.LevelGold,
			MinOrderCount:   intPtr(10),
			MinOrderValue:   int64Ptr(50000),
			DiscountPercent: 10,
			FreeDelivery:    true,
			ExclusiveDeals:  true,
			Description:     strPtr("Mid-level tier with 10% discount, free delivery, and exclusive deals"),
			Active:          true,
		},
		{
			ID:              uuid.New().String(),
			Name:            "Platinum",
			Level:           tier.LevelPlatinum,
			MinOrderCount:   intPtr(25),
			MinOrderValue:   int64Ptr(150000),
			DiscountPercent: 15,
			FreeDelivery:    true,
			PrioritySupport: true,
			ExclusiveDeals:  true,
			Description:     strPtr("Premium tier with 15% discount, free delivery, priority support, and exclusive deals"),
			Active:          true,
		},
	}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }
