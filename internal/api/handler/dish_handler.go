package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/api/metrics"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type DishHandler struct {
	dishService ports.DishService
}

func NewDishHandler(dishService ports.DishService) *DishHandler {
	return &DishHandler{dishService: dishService}
}

// @Summary      List dishes
// @Tags         dishes
// @Produce      json
// @Param        category  query     string  false  "Category"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResponse[domain.Dish]
// @Router       /v1/dishes [get]
func (h *DishHandler) ListDishes(c echo.Context) error {
	var q catalogQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	res, err := h.dishService.List(c.Request().Context(), q.Category, q.toPage())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// @Summary      Get a dish
// @Tags         dishes
// @Produce      json
// @Param        id   path      string  true  "Dish id"
// @Success      200  {object}  domain.Dish
// @Failure      404  {object}  errorResponse
// @Router       /v1/dishes/{id} [get]
func (h *DishHandler) GetDish(c echo.Context) error {
	dish, err := h.dishService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dish)
}

// @Summary      Create a dish
// @Tags         dishes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dishRequest  true  "Dish"
// @Success      201   {object}  domain.Dish
// @Router       /v1/dishes [post]
func (h *DishHandler) CreateDish(c echo.Context) error {
	var req dishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	dish, err := h.dishService.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dish)
}

// @Summary      Update a dish
// @Tags         dishes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Dish id"
// @Param        body  body      dishRequest  true  "Dish"
// @Success      200   {object}  domain.Dish
// @Router       /v1/dishes/{id} [patch]
func (h *DishHandler) UpdateDish(c echo.Context) error {
	var req dishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	dish, err := h.dishService.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dish)
}

// @Summary      Delete a dish
// @Tags         dishes
// @Security     BearerAuth
// @Param        id  path  string  true  "Dish id"
// @Success      204
// @Router       /v1/dishes/{id} [delete]
func (h *DishHandler) DeleteDish(c echo.Context) error {
	if err := h.dishService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadDishImage replaces the dish photo with the first uploaded file.
//
// @Summary      Upload a dish image
// @Tags         dishes
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Dish id"
// @Param        image  formData  file    true  "Image"
// @Success      200    {object}  domain.Dish
// @Router       /v1/dishes/{id}/images [post]
func (h *DishHandler) UploadDishImage(c echo.Context) error {
	files, closeFiles, err := formUploads(c, "image")
	if err != nil {
		return err
	}
	defer closeFiles()

	dish, err := h.dishService.SetImage(c.Request().Context(), c.Param("id"), files[0])
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dish)
}

// PlaceOrder takes stock for every line inside one transaction.
//
// @Summary      Order dishes
// @Tags         dishes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dishOrderRequest  true  "Order"
// @Success      201   {object}  domain.DishOrder
// @Failure      409   {object}  errorResponse
// @Router       /v1/dishes/orders [post]
func (h *DishHandler) PlaceOrder(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req dishOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.dishService.PlaceOrder(c.Request().Context(), guest, req.toInput())
	if err != nil {
		return err
	}
	metrics.BookingsCreatedTotal.WithLabelValues("dish").Inc()
	return c.JSON(http.StatusCreated, order)
}

// @Summary      My dish orders
// @Tags         dishes
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Order status"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.DishOrder]
// @Router       /v1/dishes/orders/mine [get]
func (h *DishHandler) MyOrders(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var q StatusQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	return h.listOrders(c, ports.DishOrderFilter{GuestID: guest.ID, Status: q.Status, Page: q.toPage()})
}

// @Summary      List dish orders
// @Tags         dishes
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Order status"
// @Param        guest_id  query     string  false  "Guest id"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResponse[domain.DishOrder]
// @Router       /v1/dishes/orders [get]
func (h *DishHandler) ListOrders(c echo.Context) error {
	var q GuestOrderQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	return h.listOrders(c, ports.DishOrderFilter{GuestID: q.GuestID, Status: q.Status, Page: q.toPage()})
}

func (h *DishHandler) listOrders(c echo.Context, f ports.DishOrderFilter) error {
	res, err := h.dishService.ListOrders(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// @Summary      Get a dish order
// @Tags         dishes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.DishOrder
// @Router       /v1/dishes/orders/{id} [get]
func (h *DishHandler) GetOrder(c echo.Context) error {
	order, err := h.dishService.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Cancelling returns the ordered quantities to stock.
//
// @Summary      Change dish order status
// @Tags         dishes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Order id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  domain.DishOrder
// @Failure      422   {object}  errorResponse
// @Router       /v1/dishes/orders/{id}/status [patch]
func (h *DishHandler) UpdateOrderStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.dishService.UpdateOrderStatus(c.Request().Context(), c.Param("id"), domain.DishOrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
