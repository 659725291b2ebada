// AngelaMos | 2026
// service.go

package benefit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/firstclub/membership-api/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateBenefitRequest,
) (*Benefit, error) {
	benefitType, err := ParseType(req.BenefitType)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	benefit := &Benefit{
		ID:          uuid.New().String(),
		TierID:      req.TierID,
		BenefitType: benefitType,
		Name:        req.Name,
		Description: req.Description,
		Value:       req.Value,
		Active:      active,
	}

	if err := s.repo.Create(ctx, benefit); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf(
				"tier %s does not exist: %w", req.TierID, core.ErrNotFound,
			)
		}
		return nil, err
	}

	return benefit, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Benefit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Benefit, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByTier(
	ctx context.Context,
	tierID string,
) ([]Benefit, error) {
	return s.repo.ListByTier(ctx, tierID)
}

func (s *Service) ListActiveByTier(
	ctx context.Context,
	tierID string,
) ([]Benefit, error) {
	return s.repo.ListActiveByTier(ctx, tierID)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateBenefitRequest,
) (*Benefit, error) {
	benefit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BenefitType != nil {
		benefitType, err := ParseType(*req.BenefitType)
		if err != nil {
			return nil, err
		}
		benefit.BenefitType = benefitType
	}
	if req.Name != nil {
		benefit.Name = *req.Name
	}
	if req.Description != nil {
		benefit.Description = req.Description
	}
	if req.Value != nil {
		benefit.Value = req.Value
	}
	if req.Active != nil {
		benefit.Active = *req.Active
	}

	if err := s.repo.Update(ctx, benefit); err != nil {
		return nil, err
	}

	return benefit, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
