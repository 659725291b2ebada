// AngelaMos | 2026
// service_test.go

package subscription_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firstclub/membership-api/internal/core"
	"github.com/firstclub/membership-api/internal/plan"
	"github.com/firstclub/membership-api/internal/subscription"
	"github.com/firstclub/membership-api/internal/tier"
	"github.com/firstclub/membership-api/internal/user"
)

type fakeRepo struct {
	subs map[string]*subscription.Subscription
	// updateErr makes Update fail for the given subscription id, for
	// exercising sweep isolation.
	updateErr map[string]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		subs:      make(map[string]*subscription.Subscription),
		updateErr: make(map[string]error),
	}
}

func (f *fakeRepo) Transact(
	_ context.Context,
	fn func(subscription.Repository) error,
) error {
	return fn(f)
}

func (f *fakeRepo) Create(_ context.Context, sub *subscription.Subscription) error {
	if sub.Status == subscription.StatusActive {
		for _, existing := range f.subs {
			if existing.UserID == sub.UserID &&
				existing.Status == subscription.StatusActive {
				return core.ErrDuplicateKey
			}
		}
	}
	cp := *sub
	f.subs[sub.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(
	_ context.Context,
	id string,
) (*subscription.Subscription, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, fmt.Errorf("get subscription: %w", core.ErrNotFound)
	}
	cp := *sub
	return &cp, nil
}

func (f *fakeRepo) Update(_ context.Context, sub *subscription.Subscription) error {
	if err := f.updateErr[sub.ID]; err != nil {
		return err
	}
	if _, ok := f.subs[sub.ID]; !ok {
		return fmt.Errorf("update subscription: %w", core.ErrNotFound)
	}
	cp := *sub
	f.subs[sub.ID] = &cp
	return nil
}

func (f *fakeRepo) FindActiveByUser(
	_ context.Context,
	userID string,
) (*subscription.Subscription, error) {
	for _, sub := range f.subs {
		if sub.UserID == userID && sub.Status == subscription.StatusActive {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("find active subscription: %w", core.ErrNotFound)
}

func (f *fakeRepo) ListByUser(
	_ context.Context,
	userID string,
) ([]subscription.Subscription, error) {
	var out []subscription.Subscription
	for _, sub := range f.subs {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (f *fakeRepo) List(
	_ context.Context,
	_ subscription.ListSubscriptionsParams,
) ([]subscription.Subscription, int, error) {
	var out []subscription.Subscription
	for _, sub := range f.subs {
		out = append(out, *sub)
	}
	return out, len(out), nil
}

func (f *fakeRepo) FindDue(
	_ context.Context,
	asOf time.Time,
) ([]subscription.Subscription, error) {
	var out []subscription.Subscription
	for _, sub := range f.subs {
		if sub.Status == subscription.StatusActive && !sub.EndDate.After(asOf) {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (f *fakeRepo) activeCount(userID string) int {
	n := 0
	for _, sub := range f.subs {
		if sub.UserID == userID && sub.Status == subscription.StatusActive {
			n++
		}
	}
	return n
}

type fakePlans struct {
	plans map[string]*plan.Plan
}

func (f *fakePlans) GetByID(_ context.Context, id string) (*plan.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, fmt.Errorf("get plan: %w", core.ErrNotFound)
	}
	return p, nil
}

type fakeStats struct {
	stats map[string]user.Stats
}

func (f *fakeStats) GetStats(_ context.Context, userID string) (user.Stats, error) {
	s, ok := f.stats[userID]
	if !ok {
		return user.Stats{}, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return s, nil
}

type fakeCatalog struct {
	tiers []tier.Tier
}

func (f *fakeCatalog) ListActive(_ context.Context) ([]tier.Tier, error) {
	active := make([]tier.Tier, 0, len(f.tiers))
	for _, t := range f.tiers {
		if t.Active {
			active = append(active, t)
		}
	}
	return active, nil
}

func (f *fakeCatalog) GetByLevel(
	_ context.Context,
	level tier.Level,
) (*tier.Tier, error) {
	for i := range f.tiers {
		if f.tiers[i].Level == level {
			return &f.tiers[i], nil
		}
	}
	return nil, fmt.Errorf("get tier by level: %w", core.ErrNotFound)
}

// fixture wires a service over in-memory collaborators with a frozen clock.
type fixture struct {
	repo  *fakeRepo
	plans *fakePlans
	stats *fakeStats
	svc   *subscription.Service
	now   time.Time
}

var baseTime = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo: newFakeRepo(),
		plans: &fakePlans{plans: map[string]*plan.Plan{
			"plan-monthly": {
				ID:             "plan-monthly",
				Name:           "Monthly Membership",
				PlanType:       plan.TypeMonthly,
				Price:          999,
				DurationInDays: 30,
				Active:         true,
			},
			"plan-retired": {
				ID:             "plan-retired",
				Name:           "Retired Plan",
				PlanType:       plan.TypeYearly,
				Price:          8999,
				DurationInDays: 365,
				Active:         false,
			},
		}},
		stats: &fakeStats{stats: map[string]user.Stats{
			"user-gold": {
				UserID:          "user-gold",
				TotalOrderCount: 12,
				TotalOrderValue: 60000,
			},
			"user-new": {
				UserID:          "user-new",
				TotalOrderCount: 0,
				TotalOrderValue: 0,
			},
		}},
		now: baseTime,
	}

	catalog := &fakeCatalog{tiers: []tier.Tier{
		{
			ID:            "tier-silver",
			Level:         tier.LevelSilver,
			MinOrderCount: intPtr(0),
			MinOrderValue: int64Ptr(0),
			Active:        true,
		},
		{
			ID:            "tier-gold",
			Level:         tier.LevelGold,
			MinOrderCount: intPtr(10),
			MinOrderValue: int64Ptr(50000),
			Active:        true,
		},
		{
			ID:            "tier-platinum",
			Level:         tier.LevelPlatinum,
			MinOrderCount: intPtr(25),
			MinOrderValue: int64Ptr(150000),
			Active:        true,
		},
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = subscription.NewService(f.repo, f.plans, f.stats, catalog, logger).
		WithClock(func() time.Time { return f.now })

	return f
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	t.Run("gold user gets a 30 day gold subscription", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		sub, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-gold",
				PlanID: "plan-monthly",
			})
		require.NoError(t, err)

		assert.Equal(t, subscription.StatusActive, sub.Status)
		assert.Equal(t, "tier-gold", sub.TierID)
		assert.Equal(t, baseTime, sub.StartDate)
		assert.Equal(t, baseTime.AddDate(0, 0, 30), sub.EndDate)
		assert.False(t, sub.AutoRenew)
	})

	t.Run("second create for same user conflicts", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		req := subscription.CreateSubscriptionRequest{
			UserID: "user-gold",
			PlanID: "plan-monthly",
		}

		_, err := f.svc.Create(context.Background(), req)
		require.NoError(t, err)

		_, err = f.svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, core.ErrConflict)
		assert.Equal(t, 1, f.repo.activeCount("user-gold"))
	})

	t.Run("inactive plan is rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-gold",
				PlanID: "plan-retired",
			})
		assert.ErrorIs(t, err, core.ErrInvalidState)
	})

	t.Run("unknown user and plan are not found", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-ghost",
				PlanID: "plan-monthly",
			})
		assert.ErrorIs(t, err, core.ErrNotFound)

		_, err = f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-gold",
				PlanID: "plan-ghost",
			})
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestService_Upgrade(t *testing.T) {
	t.Parallel()

	t.Run("recomputes tier from current stats", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		sub, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-gold",
				PlanID: "plan-monthly",
			})
		require.NoError(t, err)
		require.Equal(t, "tier-gold", sub.TierID)

		f.stats.stats["user-gold"] = user.Stats{
			UserID:          "user-gold",
			TotalOrderCount: 40,
			TotalOrderValue: 200000,
		}

		upgraded, err := f.svc.Upgrade(context.Background(), sub.ID)
		require.NoError(t, err)
		assert.Equal(t, "tier-platinum", upgraded.TierID)
	})

	t.Run("recompute may assign a lower tier", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		sub, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-gold",
				PlanID: "plan-monthly",
			})
		require.NoError(t, err)

		f.stats.stats["user-gold"] = user.Stats{
			UserID: "user-gold",
		}

		upgraded, err := f.svc.Upgrade(context.Background(), sub.ID)
		require.NoError(t, err)
		assert.Equal(t, "tier-silver", upgraded.TierID)
	})

	t.Run("rejects non active subscription", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		sub, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-gold",
				PlanID: "plan-monthly",
			})
		require.NoError(t, err)

		_, err = f.svc.Cancel(context.Background(), sub.ID)
		require.NoError(t, err)

		_, err = f.svc.Upgrade(context.Background(), sub.ID)
		assert.ErrorIs(t, err, core.ErrInvalidState)
	})
}

func TestService_Downgrade(t *testing.T) {
	t.Parallel()

	t.Run("assigns the named tier without eligibility", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		sub, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-new",
				PlanID: "plan-monthly",
			})
		require.NoError(t, err)
		require.Equal(t, "tier-silver", sub.TierID)

		// The target is not required to be lower than the current tier.
		moved, err := f.svc.Downgrade(context.Background(), sub.ID, "PLATINUM")
		require.NoError(t, err)
		assert.Equal(t, "tier-platinum", moved.TierID)
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		sub, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-gold",
				PlanID: "plan-monthly",
			})
		require.NoError(t, err)

		_, err = f.svc.Downgrade(context.Background(), sub.ID, "DIAMOND")
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	sub, err := f.svc.Create(context.Background(),
		subscription.CreateSubscriptionRequest{
			UserID:    "user-gold",
			PlanID:    "plan-monthly",
			AutoRenew: true,
		})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusCancelled, cancelled.Status)
	assert.False(t, cancelled.AutoRenew)

	// Idempotent: a second cancel succeeds and leaves the same state.
	again, err := f.svc.Cancel(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusCancelled, again.Status)
}

func TestService_Renew(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	sub, err := f.svc.Create(context.Background(),
		subscription.CreateSubscriptionRequest{
			UserID:    "user-gold",
			PlanID:    "plan-monthly",
			AutoRenew: true,
		})
	require.NoError(t, err)

	f.now = baseTime.AddDate(0, 0, 30)

	renewed, err := f.svc.Renew(context.Background(), sub.ID)
	require.NoError(t, err)

	assert.NotEqual(t, sub.ID, renewed.ID)
	assert.Equal(t, subscription.StatusActive, renewed.Status)
	assert.Equal(t, sub.UserID, renewed.UserID)
	assert.Equal(t, sub.PlanID, renewed.PlanID)
	assert.True(t, renewed.AutoRenew)
	assert.Equal(t, f.now, renewed.StartDate)
	assert.Equal(t, f.now.AddDate(0, 0, 30), renewed.EndDate)

	old, err := f.svc.GetByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusExpired, old.Status)

	assert.Equal(t, 1, f.repo.activeCount("user-gold"))
}

func TestService_SweepExpired(t *testing.T) {
	t.Parallel()

	t.Run("expires lapsed subscription without auto renew", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		sub, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-gold",
				PlanID: "plan-monthly",
			})
		require.NoError(t, err)

		f.now = baseTime.AddDate(0, 0, 31)

		report, err := f.svc.SweepExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Scanned)
		assert.Equal(t, 1, report.Expired)
		assert.Equal(t, 0, report.Renewed)

		got, err := f.svc.GetByID(context.Background(), sub.ID)
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusExpired, got.Status)
	})

	t.Run("renews lapsed subscription with auto renew", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		sub, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID:    "user-gold",
				PlanID:    "plan-monthly",
				AutoRenew: true,
			})
		require.NoError(t, err)

		f.now = baseTime.AddDate(0, 0, 31)

		report, err := f.svc.SweepExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Renewed)
		assert.Equal(t, 0, report.Expired)

		old, err := f.svc.GetByID(context.Background(), sub.ID)
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusExpired, old.Status)

		successor, err := f.svc.GetActiveByUser(context.Background(), "user-gold")
		require.NoError(t, err)
		assert.Equal(t, baseTime.AddDate(0, 0, 31), successor.StartDate)
		assert.Equal(t, baseTime.AddDate(0, 0, 61), successor.EndDate)
		assert.True(t, successor.AutoRenew)
	})

	t.Run("ignores subscriptions still in term", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-gold",
				PlanID: "plan-monthly",
			})
		require.NoError(t, err)

		f.now = baseTime.AddDate(0, 0, 29)

		report, err := f.svc.SweepExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, report.Scanned)
	})

	t.Run("one failing record does not abort the sweep", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		bad, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-gold",
				PlanID: "plan-monthly",
			})
		require.NoError(t, err)

		good, err := f.svc.Create(context.Background(),
			subscription.CreateSubscriptionRequest{
				UserID: "user-new",
				PlanID: "plan-monthly",
			})
		require.NoError(t, err)

		f.repo.updateErr[bad.ID] = errors.New("storage unavailable")
		f.now = baseTime.AddDate(0, 0, 31)

		report, err := f.svc.SweepExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, report.Scanned)
		assert.Equal(t, 1, report.Expired)
		assert.Equal(t, 1, report.Failed)

		got, err := f.svc.GetByID(context.Background(), good.ID)
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusExpired, got.Status)
	})
}

func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }
