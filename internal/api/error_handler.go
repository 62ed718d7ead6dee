package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/api/metrics"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Kind is
// only set for access and pricing rejections so clients can branch on it.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps credential, authorization and pricing rejections to 401/403/400 with their kind.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

var (
	notFound = []error{
		domain.ErrGuestNotFound, domain.ErrStaffNotFound, domain.ErrRoomNotFound,
		domain.ErrBookingNotFound, domain.ErrLaundryItemNotFound, domain.ErrLaundryOrderNotFound,
		domain.ErrHallNotFound, domain.ErrReservationNotFound, domain.ErrDishNotFound,
		domain.ErrDishOrderNotFound, domain.ErrInventoryItemNotFound, domain.ErrSupplierNotFound,
		domain.ErrServiceRequestNotFound, domain.ErrPaymentNotFound,
	}
	conflicts = []error{
		domain.ErrUserExists, domain.ErrDuplicate, domain.ErrRoomUnavailable,
		domain.ErrHallUnavailable, domain.ErrInsufficientStock, domain.ErrAlreadyPaid,
		domain.ErrOrderLocked, domain.ErrNotPayable,
	}
	badRequests = []error{
		domain.ErrInvalidInput, domain.ErrUnsupportedPurpose,
	}
	forbidden = []error{
		domain.ErrForbidden, domain.ErrSelfManagement,
	}
)

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ce *domain.CredentialError
	if errors.As(err, &ce) {
		metrics.AccessDeniedTotal.WithLabelValues(string(ce.Kind)).Inc()
		return credentialStatus(ce.Kind), errorResponse{Error: ce.Reason, Kind: string(ce.Kind)}
	}

	var ae *domain.AuthorizationError
	if errors.As(err, &ae) {
		metrics.AccessDeniedTotal.WithLabelValues(string(ae.Reason)).Inc()
		return http.StatusForbidden, errorResponse{Error: ae.Message, Kind: string(ae.Reason)}
	}

	var pe *domain.PricingError
	if errors.As(err, &pe) {
		return http.StatusBadRequest, errorResponse{Error: pe.Message, Kind: "PricingError"}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case isAny(err, notFound):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	case isAny(err, conflicts):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case isAny(err, badRequests):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case isAny(err, forbidden):
		return http.StatusForbidden, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrNothingToPay):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusUnauthorized, errorResponse{Error: "invalid signature"}
	case errors.Is(err, domain.ErrGatewayUnavailable):
		log.Warn().Err(err).Str("path", c.Path()).Msg("payment gateway unavailable")
		return http.StatusBadGateway, errorResponse{Error: "payment gateway unavailable"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func credentialStatus(kind domain.CredentialKind) int {
	switch kind {
	case domain.KindAccountRestricted:
		return http.StatusForbidden
	case domain.KindInvalidCategory:
		return http.StatusBadRequest
	default:
		return http.StatusUnauthorized
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
