// AngelaMos | 2026
// service.go

package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/firstclub/membership-api/internal/core"
	"github.com/firstclub/membership-api/internal/plan"
	"github.com/firstclub/membership-api/internal/tier"
	"github.com/firstclub/membership-api/internal/user"
)

// PlanStore supplies the plan a subscription is purchased under.
type PlanStore interface {
	GetByID(ctx context.Context, id string) (*plan.Plan, error)
}

// StatsProvider supplies the order statistics tier resolution runs against.
type StatsProvider interface {
	GetStats(ctx context.Context, userID string) (user.Stats, error)
}

// Service owns every subscription state transition. The single-ACTIVE-per-
// user invariant is enforced by a check inside Repository.Transact, with
// the store's unique index as the backstop under concurrent creates.
type Service struct {
	repo     Repository
	plans    PlanStore
	stats    StatsProvider
	tiers    tier.Catalog
	resolver *tier.Resolver
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(
	repo Repository,
	plans PlanStore,
	stats StatsProvider,
	tiers tier.Catalog,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		plans:    plans,
		stats:    stats,
		tiers:    tiers,
		resolver: tier.NewResolver(tiers),
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create starts a new ACTIVE subscription. The tier is resolved from the
// user's current order statistics at this moment and is not re-validated
// when the catalog later changes.
func (s *Service) Create(
	ctx context.Context,
	req CreateSubscriptionRequest,
) (*Subscription, error) {
	stats, err := s.stats.GetStats(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	p, err := s.plans.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	t, err := s.resolver.Resolve(ctx, stats)
	if err != nil {
		return nil, err
	}

	var sub *Subscription
	err = s.repo.Transact(ctx, func(r Repository) error {
		sub, err = s.insertActive(ctx, r, req.UserID, p, t, req.AutoRenew)
		return err
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*Subscription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListSubscriptionsParams,
) ([]Subscription, int, error) {
	params.Normalize()
	return s.repo.List(ctx, params)
}

func (s *Service) ListByUser(
	ctx context.Context,
	userID string,
) ([]Subscription, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) GetActiveByUser(
	ctx context.Context,
	userID string,
) (*Subscription, error) {
	return s.repo.FindActiveByUser(ctx, userID)
}

// Upgrade recomputes the tier from the user's current statistics. Despite
// the name the result may be the same or a lower level; it is a pure
// recompute, matching how tier drift is reconciled on demand.
func (s *Service) Upgrade(ctx context.Context, id string) (*Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.Status != StatusActive {
		return nil, fmt.Errorf(
			"subscription %s is %s, not ACTIVE: %w",
			sub.ID, sub.Status, core.ErrInvalidState,
		)
	}

	stats, err := s.stats.GetStats(ctx, sub.UserID)
	if err != nil {
		return nil, err
	}

	t, err := s.resolver.Resolve(ctx, stats)
	if err != nil {
		return nil, err
	}

	sub.TierID = t.ID
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// Downgrade assigns the named tier directly, bypassing eligibility. The
// target level is not required to be lower than the current one.
func (s *Service) Downgrade(
	ctx context.Context,
	id string,
	targetLevel string,
) (*Subscription, error) {
	level, err := tier.ParseLevel(targetLevel)
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.Status != StatusActive {
		return nil, fmt.Errorf(
			"subscription %s is %s, not ACTIVE: %w",
			sub.ID, sub.Status, core.ErrInvalidState,
		)
	}

	t, err := s.tiers.GetByLevel(ctx, level)
	if err != nil {
		return nil, err
	}

	sub.TierID = t.ID
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// Cancel marks the subscription CANCELLED and clears auto-renew, whatever
// its prior status. Calling it again on a cancelled record is a no-op
// rewrite of the same state, so the operation is idempotent.
func (s *Service) Cancel(ctx context.Context, id string) (*Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sub.Status = StatusCancelled
	sub.AutoRenew = false
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// Renew expires the old record and opens a successor term for the same user
// and plan in one transaction. The successor's tier is resolved afresh and
// its auto-renew flag carries over.
func (s *Service) Renew(ctx context.Context, id string) (*Subscription, error) {
	old, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.plans.GetByID(ctx, old.PlanID)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.GetStats(ctx, old.UserID)
	if err != nil {
		return nil, err
	}

	t, err := s.resolver.Resolve(ctx, stats)
	if err != nil {
		return nil, err
	}

	var renewed *Subscription
	err = s.repo.Transact(ctx, func(r Repository) error {
		old.Status = StatusExpired
		if err := r.Update(ctx, old); err != nil {
			return err
		}

		renewed, err = s.insertActive(ctx, r, old.UserID, p, t, old.AutoRenew)
		return err
	})
	if err != nil {
		return nil, err
	}

	return renewed, nil
}

// SweepExpired transitions every ACTIVE subscription whose end date has
// passed: auto-renew records get a successor term, the rest become EXPIRED.
// Each record is its own atomic unit; one failure is logged and the sweep
// moves on.
func (s *Service) SweepExpired(ctx context.Context) (SweepReport, error) {
	asOf := s.now()

	due, err := s.repo.FindDue(ctx, asOf)
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{Scanned: len(due)}
	for i := range due {
		sub := &due[i]
		if sub.AutoRenew {
			if _, err := s.Renew(ctx, sub.ID); err != nil {
				report.Failed++
				s.logger.ErrorContext(ctx, "sweep: renew failed",
					"subscription_id", sub.ID,
					"user_id", sub.UserID,
					"error", err,
				)
				continue
			}
			report.Renewed++
			continue
		}

		sub.Status = StatusExpired
		if err := s.repo.Update(ctx, sub); err != nil {
			report.Failed++
			s.logger.ErrorContext(ctx, "sweep: expire failed",
				"subscription_id", sub.ID,
				"user_id", sub.UserID,
				"error", err,
			)
			continue
		}
		report.Expired++
	}

	return report, nil
}

// insertActive performs the check-then-act half of create/renew. It must
// run inside a transaction so two concurrent calls cannot both pass the
// active-subscription check.
func (s *Service) insertActive(
	ctx context.Context,
	r Repository,
	userID string,
	p *plan.Plan,
	t *tier.Tier,
	autoRenew bool,
) (*Subscription, error) {
	if !p.Active {
		return nil, fmt.Errorf(
			"plan %s is inactive: %w", p.ID, core.ErrInvalidState,
		)
	}

	_, err := r.FindActiveByUser(ctx, userID)
	if err == nil {
		return nil, fmt.Errorf(
			"user %s already has an active subscription: %w",
			userID, core.ErrConflict,
		)
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	now := s.now()
	sub := &Subscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		PlanID:    p.ID,
		TierID:    t.ID,
		Status:    StatusActive,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, p.DurationInDays),
		AutoRenew: autoRenew,
	}

	if err := r.Create(ctx, sub); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf(
				"user %s already has an active subscription: %w",
				userID, core.ErrConflict,
			)
		}
		return nil, err
	}

	return sub, nil
}
