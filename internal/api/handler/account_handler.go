package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type StaffHandler struct {
	staffService ports.StaffService
}

func NewStaffHandler(staffService ports.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// Create adds a staff account. The caller must be able to manage the new role.
//
// @Summary      Create a staff account
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStaffRequest  true  "Staff account"
// @Success      201   {object}  domain.Staff
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/staff [post]
func (h *StaffHandler) Create(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createStaffRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	staff, err := h.staffService.Create(c.Request().Context(), actor, ports.CreateStaffInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
		Tasks:    req.Tasks,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, staff)
}

// List returns a page of staff accounts.
//
// @Summary      List staff
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        search   query     string  false  "Partial name or email"
// @Param        role     query     string  false  "Role"
// @Param        blocked  query     bool    false  "Blocked accounts only"
// @Param        page     query     int     false  "Page number"
// @Param        limit    query     int     false  "Page size (max 100)"
// @Success      200      {object}  listResponse[domain.Staff]
// @Router       /v1/staff [get]
func (h *StaffHandler) List(c echo.Context) error {
	var q accountQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	res, err := h.staffService.List(c.Request().Context(), q.toFilter())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// Get returns one staff account.
//
// @Summary      Get a staff account
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Staff id"
// @Success      200  {object}  domain.Staff
// @Failure      404  {object}  errorResponse
// @Router       /v1/staff/{id} [get]
func (h *StaffHandler) Get(c echo.Context) error {
	staff, err := h.staffService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, staff)
}

// Update changes name, phone, role or tasks of a staff account.
//
// @Summary      Update a staff account
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Staff id"
// @Param        body  body      updateStaffRequest  true  "Fields to change"
// @Success      200   {object}  domain.Staff
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/staff/{id} [patch]
func (h *StaffHandler) Update(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateStaffRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	staff, err := h.staffService.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateStaffInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     req.Role,
		Tasks:    req.Tasks,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, staff)
}

// @Summary      Block a staff account
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Staff id"
// @Success      200  {object}  domain.Staff
// @Router       /v1/staff/{id}/block [patch]
func (h *StaffHandler) Block(c echo.Context) error {
	return h.setBlocked(c, true)
}

// @Summary      Unblock a staff account
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Staff id"
// @Success      200  {object}  domain.Staff
// @Router       /v1/staff/{id}/unblock [patch]
func (h *StaffHandler) Unblock(c echo.Context) error {
	return h.setBlocked(c, false)
}

func (h *StaffHandler) setBlocked(c echo.Context, blocked bool) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	staff, err := h.staffService.SetBlocked(c.Request().Context(), actor, c.Param("id"), blocked)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, staff)
}

// Delete soft-deletes a staff account.
//
// @Summary      Delete a staff account
// @Tags         staff
// @Security     BearerAuth
// @Param        id  path  string  true  "Staff id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /v1/staff/{id} [delete]
func (h *StaffHandler) Delete(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.staffService.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type GuestHandler struct {
	guestService ports.GuestService
}

func NewGuestHandler(guestService ports.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

// @Summary      List guests
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Param        search   query     string  false  "Partial name or email"
// @Param        blocked  query     bool    false  "Blocked accounts only"
// @Param        page     query     int     false  "Page number"
// @Param        limit    query     int     false  "Page size (max 100)"
// @Success      200      {object}  listResponse[domain.Guest]
// @Router       /v1/guests [get]
func (h *GuestHandler) List(c echo.Context) error {
	var q accountQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	q.Role = ""

	res, err := h.guestService.List(c.Request().Context(), q.toFilter())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// @Summary      Get a guest
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Guest id"
// @Success      200  {object}  domain.Guest
// @Failure      404  {object}  errorResponse
// @Router       /v1/guests/{id} [get]
func (h *GuestHandler) Get(c echo.Context) error {
	guest, err := h.guestService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, guest)
}

// @Summary      Block a guest
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Guest id"
// @Success      200  {object}  domain.Guest
// @Router       /v1/guests/{id}/block [patch]
func (h *GuestHandler) Block(c echo.Context) error {
	return h.respond(c)(h.guestService.SetBlocked(c.Request().Context(), c.Param("id"), true))
}

// @Summary      Unblock a guest
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Guest id"
// @Success      200  {object}  domain.Guest
// @Router       /v1/guests/{id}/unblock [patch]
func (h *GuestHandler) Unblock(c echo.Context) error {
	return h.respond(c)(h.guestService.SetBlocked(c.Request().Context(), c.Param("id"), false))
}

// Ban is permanent; banned guests cannot sign in again.
//
// @Summary      Ban a guest
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Guest id"
// @Success      200  {object}  domain.Guest
// @Router       /v1/guests/{id}/ban [patch]
func (h *GuestHandler) Ban(c echo.Context) error {
	return h.respond(c)(h.guestService.Ban(c.Request().Context(), c.Param("id")))
}

// Delete soft-deletes a guest; the guest can no longer sign in.
//
// @Summary      Delete a guest
// @Tags         guests
// @Security     BearerAuth
// @Param        id  path  string  true  "Guest id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/guests/{id} [delete]
func (h *GuestHandler) Delete(c echo.Context) error {
	if err := h.guestService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *GuestHandler) respond(c echo.Context) func(*domain.Guest, error) error {
	return func(g *domain.Guest, err error) error {
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, g)
	}
}
