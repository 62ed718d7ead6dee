package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/api/metrics"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type LaundryHandler struct {
	laundryService ports.LaundryService
}

func NewLaundryHandler(laundryService ports.LaundryService) *LaundryHandler {
	return &LaundryHandler{laundryService: laundryService}
}

// @Summary      List laundry items
// @Tags         laundry
// @Produce      json
// @Param        category  query     string  false  "Category"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResponse[domain.LaundryItem]
// @Router       /v1/laundry/items [get]
func (h *LaundryHandler) ListItems(c echo.Context) error {
	var q catalogQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	res, err := h.laundryService.ListItems(c.Request().Context(), q.Category, q.toPage())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// @Summary      Get a laundry item
// @Tags         laundry
// @Produce      json
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  domain.LaundryItem
// @Failure      404  {object}  errorResponse
// @Router       /v1/laundry/items/{id} [get]
func (h *LaundryHandler) GetItem(c echo.Context) error {
	item, err := h.laundryService.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// @Summary      Create a laundry item
// @Tags         laundry
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      laundryItemRequest  true  "Catalog item"
// @Success      201   {object}  domain.LaundryItem
// @Failure      422   {object}  errorResponse
// @Router       /v1/laundry/items [post]
func (h *LaundryHandler) CreateItem(c echo.Context) error {
	var req laundryItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.laundryService.CreateItem(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Updating an item never reprices existing orders.
//
// @Summary      Update a laundry item
// @Tags         laundry
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Item id"
// @Param        body  body      laundryItemRequest  true  "Catalog item"
// @Success      200   {object}  domain.LaundryItem
// @Router       /v1/laundry/items/{id} [patch]
func (h *LaundryHandler) UpdateItem(c echo.Context) error {
	var req laundryItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.laundryService.UpdateItem(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// @Summary      Delete a laundry item
// @Tags         laundry
// @Security     BearerAuth
// @Param        id  path  string  true  "Item id"
// @Success      204
// @Router       /v1/laundry/items/{id} [delete]
func (h *LaundryHandler) DeleteItem(c echo.Context) error {
	if err := h.laundryService.DeleteItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateOrder prices the requested lines against the catalog. Unknown item
// ids are listed in dropped_items.
//
// @Summary      Place a laundry order
// @Tags         laundry
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLaundryOrderRequest  true  "Order"
// @Success      201   {object}  laundryOrderResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/laundry/orders [post]
func (h *LaundryHandler) CreateOrder(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createLaundryOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.laundryService.CreateOrder(c.Request().Context(), guest, ports.CreateLaundryOrderInput{
		Lines:             toLineRequests(req.Items),
		UrgentFee:         req.UrgentFee,
		ServiceCharge:     req.ServiceCharge,
		DiscountRequested: req.DiscountRequested,
		RoomNumber:        req.RoomNumber,
		Notes:             req.Notes,
	})
	if err != nil {
		return err
	}
	metrics.BookingsCreatedTotal.WithLabelValues("laundry").Inc()
	return c.JSON(http.StatusCreated, toLaundryOrderResponse(res))
}

// @Summary      My laundry orders
// @Tags         laundry
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Order status"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.LaundryOrder]
// @Router       /v1/laundry/orders/mine [get]
func (h *LaundryHandler) MyOrders(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var q StatusQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	return h.listOrders(c, ports.LaundryOrderFilter{GuestID: guest.ID, Status: q.Status, Page: q.toPage()})
}

// @Summary      List laundry orders
// @Tags         laundry
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Order status"
// @Param        guest_id  query     string  false  "Guest id"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResponse[domain.LaundryOrder]
// @Router       /v1/laundry/orders [get]
func (h *LaundryHandler) ListOrders(c echo.Context) error {
	var q GuestOrderQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	return h.listOrders(c, ports.LaundryOrderFilter{GuestID: q.GuestID, Status: q.Status, Page: q.toPage()})
}

func (h *LaundryHandler) listOrders(c echo.Context, f ports.LaundryOrderFilter) error {
	res, err := h.laundryService.ListOrders(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// @Summary      Get a laundry order
// @Tags         laundry
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.LaundryOrder
// @Failure      404  {object}  errorResponse
// @Router       /v1/laundry/orders/{id} [get]
func (h *LaundryHandler) GetOrder(c echo.Context) error {
	order, err := h.laundryService.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrder edits a Pending or In Progress order. Sending items reprices
// from the catalog; sending only fees requotes the frozen lines.
//
// @Summary      Edit a laundry order
// @Tags         laundry
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Order id"
// @Param        body  body      updateLaundryOrderRequest  true  "Changes"
// @Success      200   {object}  laundryOrderResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/laundry/orders/{id} [patch]
func (h *LaundryHandler) UpdateOrder(c echo.Context) error {
	var req updateLaundryOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.laundryService.UpdateOrder(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLaundryOrderResponse(res))
}

// @Summary      Change laundry order status
// @Tags         laundry
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Order id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  domain.LaundryOrder
// @Failure      422   {object}  errorResponse
// @Router       /v1/laundry/orders/{id}/status [patch]
func (h *LaundryHandler) UpdateOrderStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.laundryService.UpdateOrderStatus(c.Request().Context(), c.Param("id"), domain.LaundryStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
