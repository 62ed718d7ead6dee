package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type serviceRequestRequest struct {
	RoomNumber  string `json:"room_number" validate:"required"`
	Type        string `json:"type"        validate:"required"`
	Description string `json:"description" validate:"required,max=1000"`
}

type serviceRequestQuery struct {
	GuestOrderQuery
	Type string `query:"type"`
}

type ServiceRequestHandler struct {
	requestService ports.ServiceRequestService
}

func NewServiceRequestHandler(requestService ports.ServiceRequestService) *ServiceRequestHandler {
	return &ServiceRequestHandler{requestService: requestService}
}

// @Summary      Open a service request
// @Tags         service-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      serviceRequestRequest  true  "Request"
// @Success      201   {object}  domain.ServiceRequest
// @Router       /v1/service-requests [post]
func (h *ServiceRequestHandler) Create(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req serviceRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.requestService.Create(c.Request().Context(), guest, ports.CreateServiceRequestInput{
		RoomNumber:  req.RoomNumber,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// @Summary      My service requests
// @Tags         service-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Request status"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.ServiceRequest]
// @Router       /v1/service-requests/mine [get]
func (h *ServiceRequestHandler) Mine(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var q StatusQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	return h.list(c, ports.ServiceRequestFilter{GuestID: guest.ID, Status: q.Status, Page: q.toPage()})
}

// @Summary      List service requests
// @Tags         service-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Request status"
// @Param        type      query     string  false  "Request type"
// @Param        guest_id  query     string  false  "Guest id"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResponse[domain.ServiceRequest]
// @Router       /v1/service-requests [get]
func (h *ServiceRequestHandler) List(c echo.Context) error {
	var q serviceRequestQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	return h.list(c, ports.ServiceRequestFilter{
		GuestID: q.GuestID,
		Status:  q.Status,
		Type:    q.Type,
		Page:    q.toPage(),
	})
}

func (h *ServiceRequestHandler) list(c echo.Context, f ports.ServiceRequestFilter) error {
	res, err := h.requestService.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// @Summary      Get a service request
// @Tags         service-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.ServiceRequest
// @Failure      404  {object}  errorResponse
// @Router       /v1/service-requests/{id} [get]
func (h *ServiceRequestHandler) Get(c echo.Context) error {
	r, err := h.requestService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// UpdateStatus is shared by staff and guests; guests may only cancel their
// own requests.
//
// @Summary      Change service request status
// @Tags         service-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Request id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  domain.ServiceRequest
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/service-requests/{id}/status [patch]
func (h *ServiceRequestHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.requestService.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.ServiceRequestStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}
