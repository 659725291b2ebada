// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

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
	req CreateUserRequest,
) (*User, error) {
	user := &User{
		ID:          uuid.New().String(),
		Email:       strings.ToLower(req.Email),
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf(
				"user with email %s already exists: %w",
				user.Email,
				core.ErrConflict,
			)
		}
		return nil, err
	}

	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *Service) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// RecordOrder registers a completed order against the user's cumulative
// stats. It is the only write path into the numbers tier resolution reads.
func (s *Service) RecordOrder(
	ctx context.Context,
	id string,
	orderValue int64,
) (*User, error) {
	if orderValue <= 0 {
		return nil, fmt.Errorf(
			"record order: order value must be positive: %w",
			core.ErrInvalidInput,
		)
	}

	return s.repo.RecordOrder(ctx, id, orderValue)
}

// GetStats loads the order statistics consumed by tier resolution.
func (s *Service) GetStats(ctx context.Context, id string) (Stats, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Stats{}, err
	}
	return user.OrderStats(), nil
}
