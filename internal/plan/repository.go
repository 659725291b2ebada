// AngelaMos | 2026
// repository.go

package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/firstclub/membership-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id string) (*Plan, error)
	List(ctx context.Context) ([]Plan, error)
	ListActive(ctx context.Context) ([]Plan, error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const planColumns = `id, name, plan_type, price, duration_in_days,
	       description, active, created_at, updated_at`

func (r *repository) Create(ctx context.Context, plan *Plan) error {
	query := `
		INSERT INTO membership_plans (
			id, name, plan_type, price, duration_in_days, description, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, plan, query,
		plan.ID,
		plan.Name,
		plan.PlanType,
		plan.Price,
		plan.DurationInDays,
		plan.Description,
		plan.Active,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create plan: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create plan: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Plan, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM membership_plans WHERE id = $1`, planColumns,
	)

	var plan Plan
	err := r.db.GetContext(ctx, &plan, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	return &plan, nil
}

func (r *repository) List(ctx context.Context) ([]Plan, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM membership_plans ORDER BY duration_in_days`,
		planColumns,
	)

	var plans []Plan
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	return plans, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Plan, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM membership_plans
		WHERE active = TRUE
		ORDER BY duration_in_days`,
		planColumns,
	)

	var plans []Plan
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, fmt.Errorf("list active plans: %w", err)
	}

	return plans, nil
}

func (r *repository) Update(ctx context.Context, plan *Plan) error {
	query := `
		UPDATE membership_plans
		SET name = $2, plan_type = $3, price = $4, duration_in_days = $5,
		    description = $6, active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &plan.UpdatedAt, query,
		plan.ID,
		plan.Name,
		plan.PlanType,
		plan.Price,
		plan.DurationInDays,
		plan.Description,
		plan.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update plan: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM membership_plans WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete plan: %w", core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
