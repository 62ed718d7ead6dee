package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

const testSecret = "test-secret"

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func newTestResolver(clock *fixedClock, guests *stubGuestRepo, staff *stubStaffRepo) *IdentityResolver {
	return NewIdentityResolver(IdentityConfig{
		Secret:    testSecret,
		Issuer:    "hotel",
		AccessTTL: time.Hour,
		ResetTTL:  10 * time.Minute,
		Now:       clock.Now,
	}, guests, staff)
}

func credentialKind(t *testing.T, err error) domain.CredentialKind {
	t.Helper()
	var ce *domain.CredentialError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *domain.CredentialError, got %T (%v)", err, err)
	}
	return ce.Kind
}

func TestIdentity_Authenticate_Guest(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	guests := newStubGuestRepo(&domain.Guest{ID: "g1", FullName: "Ada", Email: "ada@example.com"})
	r := newTestResolver(clock, guests, newStubStaffRepo())

	tok, exp, err := r.IssueAccess(domain.Principal{ID: "g1", Category: domain.CategoryGuest})
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if !exp.Equal(clock.t.Add(time.Hour)) {
		t.Errorf("expiry = %v, want %v", exp, clock.t.Add(time.Hour))
	}

	p, err := r.Authenticate(context.Background(), tok, "Guest")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if p.ID != "g1" || p.Role != domain.RoleGuest || p.Category != domain.CategoryGuest {
		t.Errorf("unexpected principal %+v", p)
	}
}

func TestIdentity_Authenticate_StaffCarriesRoleAndTasks(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	staff := newStubStaffRepo(&domain.Staff{
		ID: "s1", FullName: "Bo", Role: "staff",
		Tasks: []domain.Task{domain.TaskLaundry},
	})
	r := newTestResolver(clock, newStubGuestRepo(), staff)

	tok, _, _ := r.IssueAccess(domain.Principal{ID: "s1"})
	p, err := r.Authenticate(context.Background(), tok, "staff")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if p.Role != domain.RoleStaff || !p.HasTask(domain.TaskLaundry) {
		t.Errorf("unexpected principal %+v", p)
	}
}

func TestIdentity_Authenticate_IsIdempotent(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	guests := newStubGuestRepo(&domain.Guest{ID: "g1", FullName: "Ada"})
	r := newTestResolver(clock, guests, newStubStaffRepo())
	tok, _, _ := r.IssueAccess(domain.Principal{ID: "g1"})

	first, err1 := r.Authenticate(context.Background(), tok, "guest")
	second, err2 := r.Authenticate(context.Background(), tok, "guest")
	if err1 != nil || err2 != nil {
		t.Fatalf("errors: %v, %v", err1, err2)
	}
	if first.ID != second.ID || first.Name != second.Name || first.Role != second.Role {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestIdentity_Authenticate_Rejections(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	guests := newStubGuestRepo(&domain.Guest{ID: "g1"})
	staff := newStubStaffRepo(
		&domain.Staff{ID: "blocked", Role: domain.RoleStaff, IsBlocked: true},
		&domain.Staff{ID: "deleted", Role: domain.RoleAdmin, IsDeleted: true},
	)
	r := newTestResolver(clock, guests, staff)

	guestTok, _, _ := r.IssueAccess(domain.Principal{ID: "g1"})
	ghostTok, _, _ := r.IssueAccess(domain.Principal{ID: "ghost"})
	blockedTok, _, _ := r.IssueAccess(domain.Principal{ID: "blocked"})
	deletedTok, _, _ := r.IssueAccess(domain.Principal{ID: "deleted"})
	resetTok, _ := r.IssueReset(domain.Principal{ID: "g1", Category: domain.CategoryGuest})

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "g1",
		Issuer:    "hotel",
		Audience:  jwt.ClaimStrings{audienceAccess},
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
	})
	forged, _ := foreign.SignedString([]byte("another-secret"))

	tests := []struct {
		name     string
		token    string
		category string
		want     domain.CredentialKind
	}{
		{"empty credential", "", "guest", domain.KindMissingCredential},
		{"whitespace credential", "   ", "guest", domain.KindMissingCredential},
		{"missing category", guestTok, "", domain.KindMissingCredential},
		{"unknown category", guestTok, "vendor", domain.KindInvalidCategory},
		{"garbage token", "not-a-jwt", "guest", domain.KindInvalidCredential},
		{"wrong signature", forged, "guest", domain.KindInvalidCredential},
		{"reset token used as access", resetTok, "guest", domain.KindInvalidCredential},
		{"unknown subject", ghostTok, "guest", domain.KindPrincipalNotFound},
		{"guest token presented as staff", guestTok, "staff", domain.KindPrincipalNotFound},
		{"blocked staff", blockedTok, "staff", domain.KindAccountRestricted},
		{"deleted staff", deletedTok, "staff", domain.KindAccountRestricted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := r.Authenticate(context.Background(), tc.token, tc.category)
			if p != nil {
				t.Fatalf("expected no principal, got %+v", p)
			}
			if got := credentialKind(t, err); got != tc.want {
				t.Errorf("kind = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestIdentity_Authenticate_Expiry(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	guests := newStubGuestRepo(&domain.Guest{ID: "g1"})
	r := newTestResolver(clock, guests, newStubStaffRepo())
	tok, _, _ := r.IssueAccess(domain.Principal{ID: "g1"})
	issued := clock.t

	clock.t = issued.Add(time.Hour - time.Second)
	if _, err := r.Authenticate(context.Background(), tok, "guest"); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	clock.t = issued.Add(time.Hour + time.Second)
	_, err := r.Authenticate(context.Background(), tok, "guest")
	if got := credentialKind(t, err); got != domain.KindCredentialExpired {
		t.Errorf("kind = %s, want %s", got, domain.KindCredentialExpired)
	}
}

func TestIdentity_Authenticate_SubSecondIssueTime(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 700*int(time.Millisecond), time.UTC)}
	guests := newStubGuestRepo(&domain.Guest{ID: "g1"})
	r := newTestResolver(clock, guests, newStubStaffRepo())

	tok, exp, err := r.IssueAccess(domain.Principal{ID: "g1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.Equal(time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)) {
		t.Fatalf("expiry = %s, want whole-second 13:00:00", exp)
	}

	clock.t = exp.Add(-300 * time.Millisecond)
	if _, err := r.Authenticate(context.Background(), tok, "guest"); err != nil {
		t.Fatalf("token should be valid just before its reported expiry: %v", err)
	}

	clock.t = exp.Add(300 * time.Millisecond)
	_, err = r.Authenticate(context.Background(), tok, "guest")
	if got := credentialKind(t, err); got != domain.KindCredentialExpired {
		t.Errorf("kind = %s, want %s", got, domain.KindCredentialExpired)
	}
}

func TestIdentity_Authenticate_StoreFailureIsNotACredentialError(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	guests := newStubGuestRepo()
	guests.err = errors.New("connection reset")
	r := newTestResolver(clock, guests, newStubStaffRepo())
	tok, _, _ := r.IssueAccess(domain.Principal{ID: "g1"})

	_, err := r.Authenticate(context.Background(), tok, "guest")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *domain.CredentialError
	if errors.As(err, &ce) {
		t.Errorf("infrastructure failure surfaced as credential error %v", ce)
	}
}

func TestIdentity_ResetToken_BoundToCategory(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	r := newTestResolver(clock, newStubGuestRepo(), newStubStaffRepo())

	tok, err := r.IssueReset(domain.Principal{ID: "s1", Category: domain.CategoryStaff})
	if err != nil {
		t.Fatalf("IssueReset: %v", err)
	}

	id, err := r.VerifyReset(tok, domain.CategoryStaff)
	if err != nil || id != "s1" {
		t.Fatalf("VerifyReset = %q, %v", id, err)
	}
	if _, err := r.VerifyReset(tok, domain.CategoryGuest); err == nil {
		t.Error("staff reset token accepted for guest category")
	}

	clock.t = clock.t.Add(11 * time.Minute)
	_, err = r.VerifyReset(tok, domain.CategoryStaff)
	if got := credentialKind(t, err); got != domain.KindCredentialExpired {
		t.Errorf("kind = %s, want %s", got, domain.KindCredentialExpired)
	}
}
