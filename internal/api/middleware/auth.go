package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

const (
	principalKey     = "principal"
	headerAuthToken  = "x-auth-token"
	headerCategory   = "From"
	bearerSchemeName = "bearer"
)

// Authenticate resolves the caller from "Authorization: Bearer <token>" (or
// x-auth-token) plus the From header and stores the principal on the context.
// Rejections are returned as *domain.CredentialError for the error handler.
func Authenticate(auth ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			credential := bearerToken(req.Header.Get(echo.HeaderAuthorization))
			if credential == "" {
				credential = strings.TrimSpace(req.Header.Get(headerAuthToken))
			}

			p, err := auth.Authenticate(req.Context(), credential, req.Header.Get(headerCategory))
			if err != nil {
				return err
			}

			c.Set(principalKey, *p)
			return next(c)
		}
	}
}

// Principal returns the caller stored by Authenticate.
func Principal(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerSchemeName) {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
