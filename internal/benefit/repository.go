// AngelaMos | 2026
// repository.go

package benefit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/firstclub/membership-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, benefit *Benefit) error
	GetByID(ctx context.Context, id string) (*Benefit, error)
	List(ctx context.Context) ([]Benefit, error)
	ListByTier(ctx context.Context, tierID string) ([]Benefit, error)
	ListActiveByTier(ctx context.Context, tierID string) ([]Benefit, error)
	Update(ctx context.Context, benefit *Benefit) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const benefitColumns = `id, tier_id, benefit_type, name, description,
	       value, active, created_at, updated_at`

func (r *repository) Create(ctx context.Context, benefit *Benefit) error {
	query := `
		INSERT INTO benefits (
			id, tier_id, benefit_type, name, description, value, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, benefit, query,
		benefit.ID,
		benefit.TierID,
		benefit.BenefitType,
		benefit.Name,
		benefit.Description,
		benefit.Value,
		benefit.Active,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("create benefit: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create benefit: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Benefit, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM benefits WHERE id = $1`, benefitColumns,
	)

	var benefit Benefit
	err := r.db.GetContext(ctx, &benefit, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get benefit: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get benefit: %w", err)
	}

	return &benefit, nil
}

func (r *repository) List(ctx context.Context) ([]Benefit, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM benefits ORDER BY tier_id, name`, benefitColumns,
	)

	var benefits []Benefit
	if err := r.db.SelectContext(ctx, &benefits, query); err != nil {
		return nil, fmt.Errorf("list benefits: %w", err)
	}

	return benefits, nil
}

func (r *repository) ListByTier(
	ctx context.Context,
	tierID string,
) ([]Benefit, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM benefits WHERE tier_id = $1 ORDER BY name`,
		benefitColumns,
	)

	var benefits []Benefit
	err := r.db.SelectContext(ctx, &benefits, query, tierID)
	if err != nil {
		return nil, fmt.Errorf("list benefits by tier: %w", err)
	}

	return benefits, nil
}

func (r *repository) ListActiveByTier(
	ctx context.Context,
	tierID string,
) ([]Benefit, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM benefits
		WHERE tier_id = $1 AND active = TRUE
		ORDER BY name`,
		benefitColumns,
	)

	var benefits []Benefit
	err := r.db.SelectContext(ctx, &benefits, query, tierID)
	if err != nil {
		return nil, fmt.Errorf("list active benefits by tier: %w", err)
	}

	return benefits, nil
}

func (r *repository) Update(ctx context.Context, benefit *Benefit) error {
	query := `
		UPDATE benefits
		SET benefit_type = $2, name = $3, description = $4, value = $5,
		    active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &benefit.UpdatedAt, query,
		benefit.ID,
		benefit.BenefitType,
		benefit.Name,
		benefit.Description,
		benefit.Value,
		benefit.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update benefit: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update benefit: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM benefits WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete benefit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete benefit: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete benefit: %w", core.ErrNotFound)
	}

	return nil
}

func isForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
