package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterGuest creates a guest account and signs it in.
//
// @Summary      Register a guest
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Guest sign-up details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/guests/register [post]
func (h *AuthHandler) RegisterGuest(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.RegisterGuest(c.Request().Context(), ports.RegisterGuestInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAuthResponse(res))
}

// GuestLogin authenticates a guest and returns an access token.
//
// @Summary      Guest login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/auth/guests/login [post]
func (h *AuthHandler) GuestLogin(c echo.Context) error {
	return h.login(c, domain.CategoryGuest)
}

// StaffLogin authenticates a staff member and returns an access token.
//
// @Summary      Staff login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/auth/staff/login [post]
func (h *AuthHandler) StaffLogin(c echo.Context) error {
	return h.login(c, domain.CategoryStaff)
}

func (h *AuthHandler) login(c echo.Context, category domain.Category) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), category, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// ForgotPassword emails a reset link. The response does not reveal whether
// the account exists.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email and category"
// @Success      202   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/password/forgot [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, _ := domain.ParseCategory(req.Category)
	if err := h.authService.ForgotPassword(c.Request().Context(), category, req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, messageResponse{Message: "if the account exists, a reset link has been sent"})
}

// ResetPassword sets a new password using a reset token.
//
// @Summary      Reset a password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, _ := domain.ParseCategory(req.Category)
	if err := h.authService.ResetPassword(c.Request().Context(), category, req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}

// Me returns the authenticated principal.
//
// @Summary      Current principal
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        From  header    string  true  "Caller category (guest or staff)"
// @Success      200   {object}  domain.Principal
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
