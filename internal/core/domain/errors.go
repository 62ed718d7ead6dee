package domain

import (
	"errors"
	"fmt"
)

// CredentialKind classifies an Identity Resolver rejection.
type CredentialKind string

const (
	KindMissingCredential CredentialKind = "MissingCredential"
	KindInvalidCredential CredentialKind = "InvalidCredential"
	KindCredentialExpired CredentialKind = "CredentialExpired"
	KindPrincipalNotFound CredentialKind = "PrincipalNotFound"
	KindAccountRestricted CredentialKind = "AccountRestricted"
	KindInvalidCategory   CredentialKind = "InvalidCategory"
)

// CredentialError is an expected rejection of a credential. Reason is meant
// for display; clients branch on Kind.
type CredentialError struct {
	Kind   CredentialKind
	Reason string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Rejectf builds a CredentialError.
func Rejectf(kind CredentialKind, format string, args ...any) *CredentialError {
	return &CredentialError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// AuthorizationError is returned when a principal fails a Rule or the
// owner-management rule.
type AuthorizationError struct {
	Reason  DenyReason
	Message string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// PricingError reports malformed laundry pricing input.
type PricingError struct {
	Message string
}

func (e *PricingError) Error() string { return "pricing: " + e.Message }

var (
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("access forbidden")
	ErrDuplicate          = errors.New("already exists")

	ErrUserExists     = errors.New("user already exists")
	ErrGuestNotFound  = errors.New("guest not found")
	ErrStaffNotFound  = errors.New("staff not found")
	ErrSelfManagement = errors.New("staff cannot manage their own account here")

	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room is not available")
	ErrBookingNotFound = errors.New("booking not found")

	ErrLaundryItemNotFound  = errors.New("laundry item not found")
	ErrLaundryOrderNotFound = errors.New("laundry order not found")
	ErrOrderLocked          = errors.New("order can no longer be edited")

	ErrHallNotFound        = errors.New("hall not found")
	ErrHallUnavailable     = errors.New("hall is already reserved for that date")
	ErrReservationNotFound = errors.New("reservation not found")

	ErrDishNotFound      = errors.New("dish not found")
	ErrDishOrderNotFound = errors.New("dish order not found")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrSupplierNotFound      = errors.New("supplier not found")

	ErrServiceRequestNotFound = errors.New("service request not found")

	ErrPaymentNotFound    = errors.New("payment not found")
	ErrAlreadyPaid        = errors.New("target is already paid")
	ErrNotPayable         = errors.New("target can no longer be paid")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrUnsupportedPurpose = errors.New("unsupported payment purpose")
	ErrNothingToPay       = errors.New("amount due is zero")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
