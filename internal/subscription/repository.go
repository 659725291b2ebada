// AngelaMos | 2026
// repository.go

package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/firstclub/membership-api/internal/core"
)

// Repository is the subscription store. Transact runs fn against a
// repository bound to a single transaction; the create/renew check-then-act
// sequences depend on it for atomicity.
type Repository interface {
	Transact(ctx context.Context, fn func(Repository) error) error
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id string) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	FindActiveByUser(ctx context.Context, userID string) (*Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]Subscription, error)
	List(ctx context.Context, params ListSubscriptionsParams) ([]Subscription, int, error)
	FindDue(ctx context.Context, asOf time.Time) ([]Subscription, error)
}

type repository struct {
	db *core.Database
	q  core.DBTX
}

func NewRepository(db *core.Database) Repository {
	return &repository{db: db, q: db.DB}
}

func (r *repository) Transact(
	ctx context.Context,
	fn func(Repository) error,
) error {
	if r.db == nil {
		// Already transaction-bound; run in the enclosing transaction.
		return fn(r)
	}
	return core.InTx(ctx, r.db.DB, func(tx *sqlx.Tx) error {
		return fn(&repository{q: tx})
	})
}

const subscriptionColumns = `id, user_id, plan_id, tier_id, status,
	       start_date, end_date, auto_renew, created_at, updated_at`

func (r *repository) Create(ctx context.Context, sub *Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id, user_id, plan_id, tier_id, status,
			start_date, end_date, auto_renew
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.q.GetContext(ctx, sub, query,
		sub.ID,
		sub.UserID,
		sub.PlanID,
		sub.TierID,
		sub.Status,
		sub.StartDate,
		sub.EndDate,
		sub.AutoRenew,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create subscription: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create subscription: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Subscription, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM subscriptions WHERE id = $1`, subscriptionColumns,
	)

	var sub Subscription
	err := r.q.GetContext(ctx, &sub, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	return &sub, nil
}

func (r *repository) Update(ctx context.Context, sub *Subscription) error {
	query := `
		UPDATE subscriptions
		SET tier_id = $2, status = $3, start_date = $4, end_date = $5,
		    auto_renew = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.q.GetContext(ctx, &sub.UpdatedAt, query,
		sub.ID,
		sub.TierID,
		sub.Status,
		sub.StartDate,
		sub.EndDate,
		sub.AutoRenew,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}

	return nil
}

func (r *repository) FindActiveByUser(
	ctx context.Context,
	userID string,
) (*Subscription, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM subscriptions
		WHERE user_id = $1 AND status = 'ACTIVE'`,
		subscriptionColumns,
	)

	var sub Subscription
	err := r.q.GetContext(ctx, &sub, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find active subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find active subscription: %w", err)
	}

	return &sub, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Subscription, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM subscriptions
		WHERE user_id = $1
		ORDER BY start_date DESC`,
		subscriptionColumns,
	)

	var subs []Subscription
	if err := r.q.SelectContext(ctx, &subs, query, userID); err != nil {
		return nil, fmt.Errorf("list subscriptions by user: %w", err)
	}

	return subs, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListSubscriptionsParams,
) ([]Subscription, int, error) {
	where := ""
	args := []any{}
	if params.Status != "" {
		where = `WHERE status = $1`
		args = append(args, params.Status)
	}

	countQuery := fmt.Sprintf(
		`SELECT COUNT(*) FROM subscriptions %s`, where,
	)

	var total int
	if err := r.q.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM subscriptions %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		subscriptionColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, params.PageSize, params.Offset())

	var subs []Subscription
	if err := r.q.SelectContext(ctx, &subs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}

	return subs, total, nil
}

// FindDue returns the ACTIVE subscriptions whose term has lapsed as of the
// given instant. Callers treat the result as a snapshot.
func (r *repository) FindDue(
	ctx context.Context,
	asOf time.Time,
) ([]Subscription, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM subscriptions
		WHERE status = 'ACTIVE' AND end_date <= $1
		ORDER BY end_date`,
		subscriptionColumns,
	)

	var subs []Subscription
	if err := r.q.SelectContext(ctx, &subs, query, asOf); err != nil {
		return nil, fmt.Errorf("find due subscriptions: %w", err)
	}

	return subs, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
