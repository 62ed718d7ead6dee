package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

// Require enforces rule against the authenticated principal. It must run
// after Authenticate.
func Require(rule domain.Rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := Principal(c)
			if !ok {
				return domain.Rejectf(domain.KindMissingCredential, "authentication required")
			}
			if err := domain.Authorize(p, rule).Err(); err != nil {
				return err
			}
			return next(c)
		}
	}
}
