// AngelaMos | 2026
// service.go

package tier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/firstclub/membership-api/internal/core"
	"github.com/firstclub/membership-api/internal/user"
)

// StatsProvider supplies the customer order statistics eligibility is
// computed from.
type StatsProvider interface {
	GetStats(ctx context.Context, userID string) (user.Stats, error)
}

type Service struct {
	repo     Repository
	resolver *Resolver
	stats    StatsProvider
}

func NewService(repo Repository, stats StatsProvider) *Service {
	return &Service{
		repo:     repo,
		resolver: NewResolver(repo),
		stats:    stats,
	}
}

// Resolver exposes the eligibility resolver for other services.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

func (s *Service) Create(
	ctx context.Context,
	req CreateTierRequest,
) (*Tier, error) {
	level, err := ParseLevel(req.Level)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	tier := &Tier{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Level:           level,
		MinOrderCount:   req.MinOrderCount,
		MinOrderValue:   req.MinOrderValue,
		DiscountPercent: req.DiscountPercent,
		FreeDelivery:    req.FreeDelivery,
		PrioritySupport: req.PrioritySupport,
		ExclusiveDeals:  req.ExclusiveDeals,
		Description:     req.Description,
		Active:          active,
	}

	if err := s.repo.Create(ctx, tier); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf(
				"tier with name %s already exists: %w",
				tier.Name,
				core.ErrConflict,
			)
		}
		return nil, err
	}

	return tier, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Tier, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Tier, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]Tier, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateTierRequest,
) (*Tier, error) {
	tier, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tier.Name = *req.Name
	}
	if req.Level != nil {
		level, err := ParseLevel(*req.Level)
		if err != nil {
			return nil, err
		}
		tier.Level = level
	}
	if req.MinOrderCount != nil {
		tier.MinOrderCount = req.MinOrderCount
	}
	if req.MinOrderValue != nil {
		tier.MinOrderValue = req.MinOrderValue
	}
	if req.DiscountPercent != nil {
		tier.DiscountPercent = *req.DiscountPercent
	}
	if req.FreeDelivery != nil {
		tier.FreeDelivery = *req.FreeDelivery
	}
	if req.PrioritySupport != nil {
		tier.PrioritySupport = *req.PrioritySupport
	}
	if req.ExclusiveDeals != nil {
		tier.ExclusiveDeals = *req.ExclusiveDeals
	}
	if req.Description != nil {
		tier.Description = req.Description
	}
	if req.Active != nil {
		tier.Active = *req.Active
	}

	if err := s.repo.Update(ctx, tier); err != nil {
		return nil, err
	}

	return tier, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// EligibleTier previews the tier a user's current order history resolves to
// without touching any subscription.
func (s *Service) EligibleTier(
	ctx context.Context,
	userID string,
) (*Tier, error) {
	stats, err := s.stats.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.resolver.Resolve(ctx, stats)
}
