// AngelaMos | 2026
// service.go

package plan

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
	req CreatePlanRequest,
) (*Plan, error) {
	planType, err := ParseType(req.PlanType)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	plan := &Plan{
		ID:             uuid.New().String(),
		Name:           req.Name,
		PlanType:       planType,
		Price:          req.Price,
		DurationInDays: req.DurationInDays,
		Description:    req.Description,
		Active:         active,
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf(
				"plan with name %s already exists: %w",
				plan.Name,
				core.ErrConflict,
			)
		}
		return nil, err
	}

	return plan, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Plan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Plan, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]Plan, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdatePlanRequest,
) (*Plan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.PlanType != nil {
		planType, err := ParseType(*req.PlanType)
		if err != nil {
			return nil, err
		}
		plan.PlanType = planType
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.DurationInDays != nil {
		plan.DurationInDays = *req.DurationInDays
	}
	if req.Description != nil {
		plan.Description = req.Description
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
