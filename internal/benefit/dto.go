// AngelaMos | 2026
// dto.go

package benefit

import (
	"time"
)

type CreateBenefitRequest struct {
	TierID      string  `json:"tier_id"      validate:"required,uuid"`
	BenefitType string  `json:"benefit_type" validate:"required,oneof=DISCOUNT FREE_DELIVERY PRIORITY_SUPPORT EXCLUSIVE_DEALS EARLY_ACCESS CUSTOM"`
	Name        string  `json:"name"         validate:"required,min=1,max=100"`
	Description *string `json:"description"  validate:"omitempty,max=500"`
	Value       *string `json:"value"        validate:"omitempty,max=100"`
	Active      *bool   `json:"active"`
}

type UpdateBenefitRequest struct {
	BenefitType *string `json:"benefit_type,omitempty" validate:"omitempty,oneof=DISCOUNT FREE_DELIVERY PRIORITY_SUPPORT EXCLUSIVE_DEALS EARLY_ACCESS CUSTOM"`
	Name        *string `json:"name,omitempty"         validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"  validate:"omitempty,max=500"`
	Value       *string `json:"value,omitempty"        validate:"omitempty,max=100"`
	Active      *bool   `json:"active,omitempty"`
}

type BenefitResponse struct {
	ID          string    `json:"id"`
	TierID      string    `json:"tier_id"`
	BenefitType Type      `json:"benefit_type"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Value       *string   `json:"value,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToBenefitResponse(b *Benefit) BenefitResponse {
	return BenefitResponse{
		ID:          b.ID,
		TierID:      b.TierID,
		BenefitType: b.BenefitType,
		Name:        b.Name,
		Description: b.Description,
		Value:       b.Value,
		Active:      b.Active,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func ToBenefitResponseList(benefits []Benefit) []BenefitResponse {
	responses := make([]BenefitResponse, 0, len(benefits))
	for _, b := range benefits {
		responses = append(responses, ToBenefitResponse(&b))
	}
	return responses
}
