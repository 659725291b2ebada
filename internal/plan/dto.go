// AngelaMos | 2026
// dto.go

package plan

import (
	"time"
)

type CreatePlanRequest struct {
	Name           string  `json:"name"             validate:"required,min=1,max=100"`
	PlanType       string  `json:"plan_type"        validate:"required,oneof=MONTHLY QUARTERLY YEARLY"`
	Price          int64   `json:"price"            validate:"gte=0"`
	DurationInDays int     `json:"duration_in_days" validate:"required,gt=0"`
	Description    *string `json:"description"      validate:"omitempty,max=500"`
	Active         *bool   `json:"active"`
}

type UpdatePlanRequest struct {
	Name           *string `json:"name,omitempty"             validate:"omitempty,min=1,max=100"`
	PlanType       *string `json:"plan_type,omitempty"        validate:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
	Price          *int64  `json:"price,omitempty"            validate:"omitempty,gte=0"`
	DurationInDays *int    `json:"duration_in_days,omitempty" validate:"omitempty,gt=0"`
	Description    *string `json:"description,omitempty"      validate:"omitempty,max=500"`
	Active         *bool   `json:"active,omitempty"`
}

type PlanResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PlanType       Type      `json:"plan_type"`
	Price          int64     `json:"price"`
	DurationInDays int       `json:"duration_in_days"`
	Description    *string   `json:"description,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToPlanResponse(p *Plan) PlanResponse {
	return PlanResponse{
		ID:             p.ID,
		Name:           p.Name,
		PlanType:       p.PlanType,
		Price:          p.Price,
		DurationInDays: p.DurationInDays,
		Description:    p.Description,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToPlanResponseList(plans []Plan) []PlanResponse {
	responses := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		responses = append(responses, ToPlanResponse(&p))
	}
	return responses
}
