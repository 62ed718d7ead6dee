package handler

import (
	"time"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

// --- Auth ---

type registerRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password"  validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Category string `json:"category" validate:"required,oneof=guest staff"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Category string `json:"category" validate:"required,oneof=guest staff"`
	Password string `json:"password" validate:"required,min=8"`
}

type authResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Principal domain.Principal `json:"principal"`
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{Token: r.Token, ExpiresAt: r.ExpiresAt, Principal: r.Principal}
}

// --- Staff administration ---

type createStaffRequest struct {
	FullName string   `json:"full_name" validate:"required"`
	Email    string   `json:"email"     validate:"required,email"`
	Phone    string   `json:"phone"`
	Password string   `json:"password"  validate:"required,min=8"`
	Role     string   `json:"role"      validate:"required"`
	Tasks    []string `json:"tasks"     validate:"dive,task"`
}

type updateStaffRequest struct {
	FullName *string   `json:"full_name"`
	Phone    *string   `json:"phone"`
	Role     *string   `json:"role"`
	Tasks    *[]string `json:"tasks"`
}

type accountQuery struct {
	PageQuery
	Search  string `query:"search"`
	Role    string `query:"role"`
	Blocked string `query:"blocked" validate:"omitempty,oneof=true false"`
}

func (q accountQuery) toFilter() ports.AccountFilter {
	f := ports.AccountFilter{Search: q.Search, Role: q.Role, Page: q.toPage()}
	if q.Blocked != "" {
		blocked := q.Blocked == "true"
		f.Blocked = &blocked
	}
	return f
}
