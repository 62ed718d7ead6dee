package ports

import (
	"context"
	"time"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

// AccountFilter narrows guest and staff listings.
type AccountFilter struct {
	Search  string // partial match on name or email
	Role    string // staff only
	Blocked *bool
	Page    Page
}

// GuestRepository persists guest accounts.
type GuestRepository interface {
	Create(ctx context.Context, g *domain.Guest) error
	FindByID(ctx context.Context, id string) (*domain.Guest, error)
	FindByEmail(ctx context.Context, email string) (*domain.Guest, error)
	List(ctx context.Context, f AccountFilter) ([]*domain.Guest, int64, error)
	Update(ctx context.Context, g *domain.Guest) error
	UpdatePassword(ctx context.Context, id, hash string) error
}

// StaffRepository persists staff accounts. Soft-deleted accounts are still
// returned by the finders.
type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) error
	FindByID(ctx context.Context, id string) (*domain.Staff, error)
	FindByEmail(ctx context.Context, email string) (*domain.Staff, error)
	List(ctx context.Context, f AccountFilter) ([]*domain.Staff, int64, error)
	Update(ctx context.Context, s *domain.Staff) error
	UpdatePassword(ctx context.Context, id, hash string) error
}

// Authenticator is the Identity Resolver contract used by the HTTP layer.
type Authenticator interface {
	Authenticate(ctx context.Context, credential, category string) (*domain.Principal, error)
}

// TokenIssuer mints and checks credentials.
type TokenIssuer interface {
	IssueAccess(p domain.Principal) (string, time.Time, error)
	IssueReset(p domain.Principal) (string, error)
	VerifyReset(token string, category domain.Category) (string, error)
}

// RegisterGuestInput carries sign-up data.
type RegisterGuestInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

// AuthResult is returned on successful sign-up or sign-in.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Principal domain.Principal
}

// AuthService covers sign-up, sign-in and password recovery.
type AuthService interface {
	RegisterGuest(ctx context.Context, in RegisterGuestInput) (*AuthResult, error)
	Login(ctx context.Context, category domain.Category, email, password string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, category domain.Category, email string) error
	ResetPassword(ctx context.Context, category domain.Category, token, password string) error
}

// CreateStaffInput carries the data for a new staff account.
type CreateStaffInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Role     string
	Tasks    []string
}

// UpdateStaffInput is a partial update; nil fields are left unchanged.
type UpdateStaffInput struct {
	FullName *string
	Phone    *string
	Role     *string
	Tasks    *[]string
}

// StaffService administers staff accounts under the owner-management rule.
type StaffService interface {
	Create(ctx context.Context, actor domain.Principal, in CreateStaffInput) (*domain.Staff, error)
	Get(ctx context.Context, id string) (*domain.Staff, error)
	List(ctx context.Context, f AccountFilter) (*ListResult[*domain.Staff], error)
	Update(ctx context.Context, actor domain.Principal, id string, in UpdateStaffInput) (*domain.Staff, error)
	SetBlocked(ctx context.Context, actor domain.Principal, id string, blocked bool) (*domain.Staff, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

// GuestService lets staff inspect and restrict guest accounts.
type GuestService interface {
	Get(ctx context.Context, id string) (*domain.Guest, error)
	List(ctx context.Context, f AccountFilter) (*ListResult[*domain.Guest], error)
	SetBlocked(ctx context.Context, id string, blocked bool) (*domain.Guest, error)
	Ban(ctx context.Context, id string) (*domain.Guest, error)
	Delete(ctx context.Context, id string) error
}
