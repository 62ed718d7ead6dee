package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

func newAuthSvc(guests *stubGuestRepo, staff *stubStaffRepo, n *stubNotifier) *AuthService {
	return NewAuthService(guests, staff, stubTokens{}, n, "https://hotel.example/", zerolog.Nop())
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

func TestAuthService_RegisterGuest_Success(t *testing.T) {
	guests := newStubGuestRepo()
	n := &stubNotifier{}
	svc := newAuthSvc(guests, newStubStaffRepo(), n)

	res, err := svc.RegisterGuest(context.Background(), ports.RegisterGuestInput{
		FullName: "Ada Obi",
		Email:    "  Ada@Example.com ",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("RegisterGuest: %v", err)
	}
	if res.Principal.Email != "ada@example.com" {
		t.Errorf("email = %q, want normalised", res.Principal.Email)
	}
	if res.Principal.Role != domain.RoleGuest {
		t.Errorf("role = %q", res.Principal.Role)
	}
	if res.Token != "access:"+res.Principal.ID {
		t.Errorf("token = %q", res.Token)
	}

	stored, _ := guests.FindByEmail(context.Background(), "ada@example.com")
	if stored == nil || bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")) != nil {
		t.Error("password not stored as bcrypt hash")
	}
	if len(n.sent) != 1 || n.sent[0].Email == nil || n.sent[0].Email.Template != TemplateWelcome {
		t.Errorf("expected one welcome email, got %+v", n.sent)
	}
}

func TestAuthService_RegisterGuest_Validation(t *testing.T) {
	svc := newAuthSvc(newStubGuestRepo(), newStubStaffRepo(), &stubNotifier{})

	cases := []ports.RegisterGuestInput{
		{FullName: "", Email: "a@b.c", Password: "password123"},
		{FullName: "A", Email: "", Password: "password123"},
		{FullName: "A", Email: "a@b.c", Password: "short"},
	}
	for _, in := range cases {
		if _, err := svc.RegisterGuest(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestAuthService_RegisterGuest_Duplicate(t *testing.T) {
	guests := newStubGuestRepo(&domain.Guest{ID: "g1", Email: "ada@example.com"})
	svc := newAuthSvc(guests, newStubStaffRepo(), &stubNotifier{})

	_, err := svc.RegisterGuest(context.Background(), ports.RegisterGuestInput{
		FullName: "Ada", Email: "ADA@example.com", Password: "password123",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	guests := newStubGuestRepo(
		&domain.Guest{ID: "g1", Email: "ada@example.com", PasswordHash: hashed(t, "password123")},
		&domain.Guest{ID: "g2", Email: "banned@example.com", PasswordHash: hashed(t, "password123"), IsBanned: true},
		&domain.Guest{ID: "g3", Email: "gone@example.com", PasswordHash: hashed(t, "password123"), IsDeleted: true},
	)
	staff := newStubStaffRepo(
		&domain.Staff{ID: "s1", Email: "bo@hotel.example", Role: domain.RoleAdmin, PasswordHash: hashed(t, "password123")},
	)
	svc := newAuthSvc(guests, staff, &stubNotifier{})
	ctx := context.Background()

	res, err := svc.Login(ctx, domain.CategoryGuest, "ada@example.com", "password123")
	if err != nil || res.Principal.ID != "g1" {
		t.Fatalf("guest login = %+v, %v", res, err)
	}

	res, err = svc.Login(ctx, domain.CategoryStaff, "BO@hotel.example", "password123")
	if err != nil || res.Principal.Role != domain.RoleAdmin {
		t.Fatalf("staff login = %+v, %v", res, err)
	}

	if _, err := svc.Login(ctx, domain.CategoryGuest, "ada@example.com", "wrong-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: %v", err)
	}
	if _, err := svc.Login(ctx, domain.CategoryGuest, "nobody@example.com", "password123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: %v", err)
	}
	if _, err := svc.Login(ctx, domain.CategoryStaff, "ada@example.com", "password123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("guest email under staff category: %v", err)
	}

	_, err = svc.Login(ctx, domain.CategoryGuest, "banned@example.com", "password123")
	var ce *domain.CredentialError
	if !errors.As(err, &ce) || ce.Kind != domain.KindAccountRestricted {
		t.Errorf("banned guest: expected AccountRestricted, got %v", err)
	}

	_, err = svc.Login(ctx, domain.CategoryGuest, "gone@example.com", "password123")
	if !errors.As(err, &ce) || ce.Kind != domain.KindAccountRestricted {
		t.Errorf("deleted guest: expected AccountRestricted, got %v", err)
	}
}

func TestAuthService_ForgotAndResetPassword(t *testing.T) {
	guests := newStubGuestRepo(&domain.Guest{ID: "g1", FullName: "Ada", Email: "ada@example.com", PasswordHash: hashed(t, "old-password")})
	n := &stubNotifier{}
	svc := newAuthSvc(guests, newStubStaffRepo(), n)
	ctx := context.Background()

	if err := svc.ForgotPassword(ctx, domain.CategoryGuest, "nobody@example.com"); err != nil {
		t.Fatalf("unknown email should succeed silently: %v", err)
	}
	if len(n.sent) != 0 {
		t.Fatalf("no email expected for unknown account, got %d", len(n.sent))
	}

	if err := svc.ForgotPassword(ctx, domain.CategoryGuest, "ada@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if len(n.sent) != 1 {
		t.Fatalf("expected reset email, got %d", len(n.sent))
	}
	link, _ := n.sent[0].Email.Data.(map[string]any)["Link"].(string)
	if !strings.HasPrefix(link, "https://hotel.example/reset-password?token=") || !strings.HasSuffix(link, "&category=guest") {
		t.Errorf("unexpected link %q", link)
	}

	if err := svc.ResetPassword(ctx, domain.CategoryGuest, "reset:guest:g1", "new-password"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, err := svc.Login(ctx, domain.CategoryGuest, "ada@example.com", "new-password"); err != nil {
		t.Errorf("login with new password: %v", err)
	}

	err := svc.ResetPassword(ctx, domain.CategoryGuest, "reset:guest:ghost", "new-password")
	var ce *domain.CredentialError
	if !errors.As(err, &ce) || ce.Kind != domain.KindPrincipalNotFound {
		t.Errorf("reset for missing account: %v", err)
	}
}
