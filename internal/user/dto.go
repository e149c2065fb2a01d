// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Name     string `json:"name"      validate:"required,min=1,max=100"`
	Username string `json:"username"  validate:"required,min=3,max=100"`
	Password string `json:"password"  validate:"required,min=8,max=128"`
	Tier     string `json:"tier"      validate:"omitempty,oneof=base silver gold"`
	IsActive *bool  `json:"is_active" validate:"omitempty"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"      validate:"omitempty,min=1,max=100"`
	Username *string `json:"username,omitempty"  validate:"omitempty,min=3,max=100"`
	Password *string `json:"password,omitempty"  validate:"omitempty,min=8,max=128"`
	Tier     *string `json:"tier,omitempty"      validate:"omitempty,oneof=base silver gold"`
	IsActive *bool   `json:"is_active,omitempty" validate:"omitempty"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar"`
	Tier      string    `json:"tier"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListParams struct {
	Page     int
	PageSize int
}

func (p *ListParams) Normalize(defaultPageSize int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Tier:      u.Tier.String(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
