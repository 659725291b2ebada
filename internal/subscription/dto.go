// AngelaMos | 2026
// dto.go

package subscription

import (
	"time"
)

type CreateSubscriptionRequest struct {
	UserID    string `json:"user_id"    validate:"required,uuid"`
	PlanID    string `json:"plan_id"    validate:"required,uuid"`
	AutoRenew bool   `json:"auto_renew"`
}

type DowngradeRequest struct {
	TierLevel string `json:"tier_level" validate:"required,oneof=SILVER GOLD PLATINUM"`
}

type ListSubscriptionsParams struct {
	Page     int
	PageSize int
	Status   Status
}

func (p *ListSubscriptionsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListSubscriptionsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type SubscriptionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PlanID    string    `json:"plan_id"`
	TierID    string    `json:"tier_id"`
	Status    Status    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	AutoRenew bool      `json:"auto_renew"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToSubscriptionResponse(s *Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		PlanID:    s.PlanID,
		TierID:    s.TierID,
		Status:    s.Status,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		AutoRenew: s.AutoRenew,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func ToSubscriptionResponseList(subs []Subscription) []SubscriptionResponse {
	responses := make([]SubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		responses = append(responses, ToSubscriptionResponse(&s))
	}
	return responses
}

// SweepReport summarizes one expiry sweep pass.
type SweepReport struct {
	Scanned int `json:"scanned"`
	Expired int `json:"expired"`
	Renewed int `json:"renewed"`
	Failed  int `json:"failed"`
}
