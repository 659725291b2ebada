// AngelaMos | 2026
// dto.go

package tier

import (
	"time"
)

type CreateTierRequest struct {
	Name            string  `json:"name"             validate:"required,min=1,max=100"`
	Level           string  `json:"tier_level"       validate:"required,oneof=SILVER GOLD PLATINUM"`
	MinOrderCount   *int    `json:"min_order_count"  validate:"omitempty,gte=0"`
	MinOrderValue   *int64  `json:"min_order_value"  validate:"omitempty,gte=0"`
	DiscountPercent int64   `json:"discount_percent" validate:"gte=0,lte=100"`
	FreeDelivery    bool    `json:"free_delivery"`
	PrioritySupport bool    `json:"priority_support"`
	ExclusiveDeals  bool    `json:"exclusive_deals"`
	Description     *string `json:"description"      validate:"omitempty,max=500"`
	Active          *bool   `json:"active"`
}

type UpdateTierRequest struct {
	Name            *string `json:"name,omitempty"             validate:"omitempty,min=1,max=100"`
	Level           *string `json:"tier_level,omitempty"       validate:"omitempty,oneof=SILVER GOLD PLATINUM"`
	MinOrderCount   *int    `json:"min_order_count,omitempty"  validate:"omitempty,gte=0"`
	MinOrderValue   *int64  `json:"min_order_value,omitempty"  validate:"omitempty,gte=0"`
	DiscountPercent *int64  `json:"discount_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	FreeDelivery    *bool   `json:"free_delivery,omitempty"`
	PrioritySupport *bool   `json:"priority_support,omitempty"`
	ExclusiveDeals  *bool   `json:"exclusive_deals,omitempty"`
	Description     *string `json:"description,omitempty"      validate:"omitempty,max=500"`
	Active          *bool   `json:"active,omitempty"`
}

type TierResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Level           Level     `json:"tier_level"`
	MinOrderCount   *int      `json:"min_order_count,omitempty"`
	MinOrderValue   *int64    `json:"min_order_value,omitempty"`
	DiscountPercent int64     `json:"discount_percent"`
	FreeDelivery    bool      `json:"free_delivery"`
	PrioritySupport bool      `json:"priority_support"`
	ExclusiveDeals  bool      `json:"exclusive_deals"`
	Description     *string   `json:"description,omitempty"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToTierResponse(t *Tier) TierResponse {
	return TierResponse{
		ID:              t.ID,
		Name:            t.Name,
		Level:           t.Level,
		MinOrderCount:   t.MinOrderCount,
		MinOrderValue:   t.MinOrderValue,
		DiscountPercent: t.DiscountPercent,
		FreeDelivery:    t.FreeDelivery,
		PrioritySupport: t.PrioritySupport,
		ExclusiveDeals:  t.ExclusiveDeals,
		Description:     t.Description,
		Active:          t.Active,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func ToTierResponseList(tiers []Tier) []TierResponse {
	responses := make([]TierResponse, 0, len(tiers))
	for _, t := range tiers {
		responses = append(responses, ToTierResponse(&t))
	}
	return responses
}
