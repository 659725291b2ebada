// AngelaMos | 2026
// repository.go

package tier

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/firstclub/membership-api/internal/core"
)

type Repository interface {
	Catalog

	Create(ctx context.Context, tier *Tier) error
	GetByID(ctx context.Context, id string) (*Tier, error)
	List(ctx context.Context) ([]Tier, error)
	Update(ctx context.Context, tier *Tier) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const tierColumns = `id, name, tier_level, min_order_count, min_order_value,
	       discount_percent, free_delivery, priority_support, exclusive_deals,
	       description, active, created_at, updated_at`

func (r *repository) Create(ctx context.Context, tier *Tier) error {
	query := `
		INSERT INTO membership_tiers (
			id, name, tier_level, min_order_count, min_order_value,
			discount_percent, free_delivery, priority_support,
			exclusive_deals, description, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, tier, query,
		tier.ID,
		tier.Name,
		tier.Level,
		tier.MinOrderCount,
		tier.MinOrderValue,
		tier.DiscountPercent,
		tier.FreeDelivery,
		tier.PrioritySupport,
		tier.ExclusiveDeals,
		tier.Description,
		tier.Active,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create tier: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create tier: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Tier, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM membership_tiers WHERE id = $1`, tierColumns,
	)

	var tier Tier
	err := r.db.GetContext(ctx, &tier, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tier: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tier: %w", err)
	}

	return &tier, nil
}

func (r *repository) GetByLevel(
	ctx context.Context,
	level Level,
) (*Tier, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM membership_tiers WHERE tier_level = $1`, tierColumns,
	)

	var tier Tier
	err := r.db.GetContext(ctx, &tier, query, level)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tier by level: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tier by level: %w", err)
	}

	return &tier, nil
}

func (r *repository) List(ctx context.Context) ([]Tier, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM membership_tiers ORDER BY tier_level`, tierColumns,
	)

	var tiers []Tier
	if err := r.db.SelectContext(ctx, &tiers, query); err != nil {
		return nil, fmt.Errorf("list tiers: %w", err)
	}

	return tiers, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Tier, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM membership_tiers WHERE active = TRUE`, tierColumns,
	)

	var tiers []Tier
	if err := r.db.SelectContext(ctx, &tiers, query); err != nil {
		return nil, fmt.Errorf("list active tiers: %w", err)
	}

	return tiers, nil
}

func (r *repository) Update(ctx context.Context, tier *Tier) error {
	query := `
		UPDATE membership_tiers
		SET name = $2, tier_level = $3, min_order_count = $4,
		    min_order_value = $5, discount_percent = $6, free_delivery = $7,
		    priority_support = $8, exclusive_deals = $9, description = $10,
		    active = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &tier.UpdatedAt, query,
		tier.ID,
		tier.Name,
		tier.Level,
		tier.MinOrderCount,
		tier.MinOrderValue,
		tier.DiscountPercent,
		tier.FreeDelivery,
		tier.PrioritySupport,
		tier.ExclusiveDeals,
		tier.Description,
		tier.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update tier: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update tier: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM membership_tiers WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tier: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tier: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete tier: %w", core.ErrNotFound)
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
