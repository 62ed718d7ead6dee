package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

const (
	audienceAccess = "access"
	audienceReset  = "reset:"
)

// IdentityConfig is fixed at construction and never read from the
// environment afterwards.
type IdentityConfig struct {
	Secret    string
	Issuer    string
	AccessTTL time.Duration
	ResetTTL  time.Duration
	// Now is the clock used for issuing and verifying; defaults to time.Now.
	Now func() time.Time
}

// IdentityResolver issues credentials and turns them back into principals.
type IdentityResolver struct {
	cfg    IdentityConfig
	guests ports.GuestRepository
	staff  ports.StaffRepository
}

// NewIdentityResolver returns an IdentityResolver.
func NewIdentityResolver(cfg IdentityConfig, guests ports.GuestRepository, staff ports.StaffRepository) *IdentityResolver {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 24 * time.Hour
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &IdentityResolver{cfg: cfg, guests: guests, staff: staff}
}

// IssueAccess signs an access credential for p.
func (r *IdentityResolver) IssueAccess(p domain.Principal) (string, time.Time, error) {
	return r.issue(p.ID, audienceAccess, r.cfg.AccessTTL)
}

// IssueReset signs a short-lived password reset credential bound to the
// principal's category.
func (r *IdentityResolver) IssueReset(p domain.Principal) (string, error) {
	tok, _, err := r.issue(p.ID, audienceReset+string(p.Category), r.cfg.ResetTTL)
	return tok, err
}

// VerifyReset returns the subject of a reset credential issued for category.
func (r *IdentityResolver) VerifyReset(token string, category domain.Category) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", domain.Rejectf(domain.KindMissingCredential, "reset token is required")
	}
	claims, err := r.parse(token, audienceReset+string(category))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Authenticate resolves a credential and a declared caller category into a
// principal. Expected rejections are returned as *domain.CredentialError;
// any other error is an infrastructure failure.
func (r *IdentityResolver) Authenticate(ctx context.Context, credential, category string) (*domain.Principal, error) {
	credential = strings.TrimSpace(credential)
	category = strings.TrimSpace(category)
	if credential == "" {
		return nil, domain.Rejectf(domain.KindMissingCredential, "no credential provided")
	}
	if category == "" {
		return nil, domain.Rejectf(domain.KindMissingCredential, "caller category is required in the From header")
	}

	cat, ok := domain.ParseCategory(category)
	if !ok {
		return nil, domain.Rejectf(domain.KindInvalidCategory, "caller category must be guest or staff, got %q", category)
	}

	claims, err := r.parse(credential, audienceAccess)
	if err != nil {
		return nil, err
	}

	switch cat {
	case domain.CategoryGuest:
		return r.resolveGuest(ctx, claims.Subject)
	default:
		return r.resolveStaff(ctx, claims.Subject)
	}
}

func (r *IdentityResolver) resolveGuest(ctx context.Context, id string) (*domain.Principal, error) {
	g, err := r.guests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrGuestNotFound) {
			return nil, domain.Rejectf(domain.KindPrincipalNotFound, "guest account not found")
		}
		return nil, fmt.Errorf("authenticate guest: %w", err)
	}
	p := g.Principal()
	return &p, nil
}

func (r *IdentityResolver) resolveStaff(ctx context.Context, id string) (*domain.Principal, error) {
	s, err := r.staff.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			return nil, domain.Rejectf(domain.KindPrincipalNotFound, "staff account not found")
		}
		return nil, fmt.Errorf("authenticate staff: %w", err)
	}
	if s.IsDeleted {
		return nil, domain.Rejectf(domain.KindAccountRestricted, "account has been deleted")
	}
	if s.IsBlocked {
		return nil, domain.Rejectf(domain.KindAccountRestricted, "account is blocked")
	}
	p := s.Principal()
	return &p, nil
}

func (r *IdentityResolver) issue(subject, audience string, ttl time.Duration) (string, time.Time, error) {
	// NumericDate has whole-second precision; the reported expiry must match
	// the one encoded in the token.
	now := r.cfg.Now().Truncate(time.Second)
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    r.cfg.Issuer,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(r.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign credential: %w", err)
	}
	return signed, exp, nil
}

func (r *IdentityResolver) parse(token, audience string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(r.cfg.Now),
	}
	if r.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(r.cfg.Issuer))
	}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(r.cfg.Secret), nil
	}, opts...)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domain.Rejectf(domain.KindCredentialExpired, "credential has expired")
	default:
		return nil, domain.Rejectf(domain.KindInvalidCredential, "credential is malformed or its signature does not match")
	}

	if claims.Subject == "" {
		return nil, domain.Rejectf(domain.KindInvalidCredential, "credential carries no subject")
	}
	return claims, nil
}
