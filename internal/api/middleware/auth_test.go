package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

type stubAuthenticator struct {
	credential string
	category   string
	principal  *domain.Principal
	err        error
}

func (s *stubAuthenticator) Authenticate(_ context.Context, credential, category string) (*domain.Principal, error) {
	s.credential, s.category = credential, category
	return s.principal, s.err
}

func TestAuthenticate_BearerToken(t *testing.T) {
	e := echo.New()
	stub := &stubAuthenticator{principal: &domain.Principal{ID: "s1", Category: domain.CategoryStaff, Role: domain.RoleAdmin}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	req.Header.Set("From", "staff")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authenticate(stub)(func(c echo.Context) error {
		called = true
		p, ok := Principal(c)
		if !ok || p.ID != "s1" {
			t.Fatalf("principal not set: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if stub.credential != "tok-123" || stub.category != "staff" {
		t.Fatalf("unexpected args: %q %q", stub.credential, stub.category)
	}
}

func TestAuthenticate_XAuthTokenFallback(t *testing.T) {
	e := echo.New()
	stub := &stubAuthenticator{principal: &domain.Principal{ID: "g1", Category: domain.CategoryGuest, Role: domain.RoleGuest}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-auth-token", "legacy-tok")
	req.Header.Set("From", "guest")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Authenticate(stub)(func(c echo.Context) error { return nil })
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.credential != "legacy-tok" {
		t.Fatalf("expected x-auth-token to be used, got %q", stub.credential)
	}
}

func TestAuthenticate_NonBearerSchemeIgnored(t *testing.T) {
	e := echo.New()
	stub := &stubAuthenticator{err: domain.Rejectf(domain.KindMissingCredential, "credential is required")}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	req.Header.Set("From", "staff")
	c := e.NewContext(req, httptest.NewRecorder())

	err := Authenticate(stub)(func(c echo.Context) error {
		t.Fatal("next must not be called")
		return nil
	})(c)

	var ce *domain.CredentialError
	if !errors.As(err, &ce) || ce.Kind != domain.KindMissingCredential {
		t.Fatalf("expected MissingCredential, got %v", err)
	}
	if stub.credential != "" {
		t.Errorf("basic credentials must not be forwarded, got %q", stub.credential)
	}
}

func TestAuthenticate_RejectionPropagates(t *testing.T) {
	e := echo.New()
	stub := &stubAuthenticator{err: domain.Rejectf(domain.KindCredentialExpired, "token expired")}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer old")
	req.Header.Set("From", "guest")
	c := e.NewContext(req, httptest.NewRecorder())

	err := Authenticate(stub)(func(c echo.Context) error { return nil })(c)
	var ce *domain.CredentialError
	if !errors.As(err, &ce) || ce.Kind != domain.KindCredentialExpired {
		t.Fatalf("expected CredentialExpired, got %v", err)
	}
}
