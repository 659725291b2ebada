// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Email       string  `json:"email"        validate:"required,email,max=255"`
	Name        string  `json:"name"         validate:"required,min=1,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=7,max=20"`
}

type UpdateUserRequest struct {
	Name        *string `json:"name,omitempty"         validate:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,min=7,max=20"`
}

type RecordOrderRequest struct {
	OrderValue int64 `json:"order_value" validate:"required,gt=0"`
}

type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	PhoneNumber     *string   `json:"phone_number,omitempty"`
	TotalOrderCount int       `json:"total_order_count"`
	TotalOrderValue int64     `json:"total_order_value"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ListUsersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

func (p *ListUsersParams) Normalize() {
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

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		PhoneNumber:     u.PhoneNumber,
		TotalOrderCount: u.TotalOrderCount,
		TotalOrderValue: u.TotalOrderValue,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
