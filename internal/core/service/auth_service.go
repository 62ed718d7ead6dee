package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

const minPasswordLength = 8

// Mail templates shared by the services.
const (
	TemplateWelcome         = "welcome.tmpl"
	TemplateStaffInvitation = "staff_invitation.tmpl"
	TemplateResetPassword   = "reset_password.tmpl"
	TemplateBookingStatus   = "booking_status.tmpl"
	TemplateLaundryStatus   = "laundry_status.tmpl"
	TemplateReservation     = "reservation_status.tmpl"
	TemplateDishOrderStatus = "dish_order_status.tmpl"
	TemplatePaymentReceived = "payment_received.tmpl"
)

// AuthService implements sign-up, sign-in and password recovery for guests
// and staff.
type AuthService struct {
	guests      ports.GuestRepository
	staff       ports.StaffRepository
	tokens      ports.TokenIssuer
	notifier    ports.Notifier
	frontendURL string
	log         zerolog.Logger
}

func NewAuthService(
	guests ports.GuestRepository,
	staff ports.StaffRepository,
	tokens ports.TokenIssuer,
	notifier ports.Notifier,
	frontendURL string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		guests:      guests,
		staff:       staff,
		tokens:      tokens,
		notifier:    notifier,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log,
	}
}

func (s *AuthService) RegisterGuest(ctx context.Context, in ports.RegisterGuestInput) (*ports.AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, fmt.Errorf("%w: full name and email are required", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.guests.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrGuestNotFound) {
		return nil, fmt.Errorf("register guest: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	g := &domain.Guest{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.guests.Create(ctx, g); err != nil {
		return nil, err
	}

	p := g.Principal()
	token, exp, err := s.tokens.IssueAccess(p)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ports.Notification{
		Key: g.Email,
		Email: &ports.Email{
			To:       g.Email,
			Name:     g.FullName,
			Subject:  "Welcome",
			Template: TemplateWelcome,
			Data:     map[string]any{"Name": g.FullName},
		},
	})
	s.log.Info().Str("guest_id", g.ID).Msg("guest registered")

	return &ports.AuthResult{Token: token, ExpiresAt: exp, Principal: p}, nil
}

// Login checks the password and returns an access credential. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, category domain.Category, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, p, err := s.lookup(ctx, category, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if reason := p.Restriction(); reason != "" {
		return nil, domain.Rejectf(domain.KindAccountRestricted, "%s", reason)
	}

	token, exp, err := s.tokens.IssueAccess(*p)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("principal_id", p.ID).Str("category", string(category)).Msg("signed in")
	return &ports.AuthResult{Token: token, ExpiresAt: exp, Principal: *p}, nil
}

// ForgotPassword emails a reset link. It reports success for unknown emails
// so that accounts cannot be enumerated.
func (s *AuthService) ForgotPassword(ctx context.Context, category domain.Category, email string) error {
	_, p, err := s.lookup(ctx, category, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.log.Debug().Str("category", string(category)).Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}
	if p.Deleted {
		return nil
	}

	token, err := s.tokens.IssueReset(*p)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s&category=%s", s.frontendURL, url.QueryEscape(token), category)
	s.notifier.Notify(ports.Notification{
		Key: p.Email,
		Email: &ports.Email{
			To:       p.Email,
			Name:     p.Name,
			Subject:  "Reset your password",
			Template: TemplateResetPassword,
			Data:     map[string]any{"Name": p.Name, "Link": link},
		},
	})
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, category domain.Category, token, password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	id, err := s.tokens.VerifyReset(token, category)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	switch category {
	case domain.CategoryGuest:
		err = s.guests.UpdatePassword(ctx, id, string(hash))
	case domain.CategoryStaff:
		err = s.staff.UpdatePassword(ctx, id, string(hash))
	default:
		return domain.Rejectf(domain.KindInvalidCategory, "caller category must be guest or staff")
	}
	if errors.Is(err, domain.ErrGuestNotFound) || errors.Is(err, domain.ErrStaffNotFound) {
		return domain.Rejectf(domain.KindPrincipalNotFound, "account no longer exists")
	}
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info().Str("principal_id", id).Str("category", string(category)).Msg("password reset")
	return nil
}

func (s *AuthService) lookup(ctx context.Context, category domain.Category, email string) (string, *domain.Principal, error) {
	switch category {
	case domain.CategoryGuest:
		g, err := s.guests.FindByEmail(ctx, email)
		if errors.Is(err, domain.ErrGuestNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		if err != nil {
			return "", nil, fmt.Errorf("find guest: %w", err)
		}
		p := g.Principal()
		return g.PasswordHash, &p, nil
	case domain.CategoryStaff:
		st, err := s.staff.FindByEmail(ctx, email)
		if errors.Is(err, domain.ErrStaffNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		if err != nil {
			return "", nil, fmt.Errorf("find staff: %w", err)
		}
		p := st.Principal()
		return st.PasswordHash, &p, nil
	}
	return "", nil, domain.Rejectf(domain.KindInvalidCategory, "caller category must be guest or staff")
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
