package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type InventoryHandler struct {
	inventoryService ports.InventoryService
}

func NewInventoryHandler(inventoryService ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// @Summary      Create a supplier
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      supplierRequest  true  "Supplier"
// @Success      201   {object}  domain.Supplier
// @Router       /v1/inventory/suppliers [post]
func (h *InventoryHandler) CreateSupplier(c echo.Context) error {
	var req supplierRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	s, err := h.inventoryService.CreateSupplier(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s)
}

// @Summary      List suppliers
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listResponse[domain.Supplier]
// @Router       /v1/inventory/suppliers [get]
func (h *InventoryHandler) ListSuppliers(c echo.Context) error {
	var q PageQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	res, err := h.inventoryService.ListSuppliers(c.Request().Context(), q.toPage())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// @Summary      Get a supplier
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Supplier id"
// @Success      200  {object}  domain.Supplier
// @Failure      404  {object}  errorResponse
// @Router       /v1/inventory/suppliers/{id} [get]
func (h *InventoryHandler) GetSupplier(c echo.Context) error {
	s, err := h.inventoryService.GetSupplier(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// @Summary      Update a supplier
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Supplier id"
// @Param        body  body      supplierRequest  true  "Supplier"
// @Success      200   {object}  domain.Supplier
// @Router       /v1/inventory/suppliers/{id} [patch]
func (h *InventoryHandler) UpdateSupplier(c echo.Context) error {
	var req supplierRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	s, err := h.inventoryService.UpdateSupplier(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// @Summary      Delete a supplier
// @Tags         inventory
// @Security     BearerAuth
// @Param        id  path  string  true  "Supplier id"
// @Success      204
// @Router       /v1/inventory/suppliers/{id} [delete]
func (h *InventoryHandler) DeleteSupplier(c echo.Context) error {
	if err := h.inventoryService.DeleteSupplier(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary      Create an inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      inventoryItemRequest  true  "Item"
// @Success      201   {object}  domain.InventoryItem
// @Failure      404   {object}  errorResponse
// @Router       /v1/inventory/items [post]
func (h *InventoryHandler) CreateItem(c echo.Context) error {
	var req inventoryItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.inventoryService.CreateItem(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// @Summary      List inventory items
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        category     query     string  false  "Category"
// @Param        supplier_id  query     string  false  "Supplier id"
// @Param        page         query     int     false  "Page number"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200          {object}  listResponse[domain.InventoryItem]
// @Router       /v1/inventory/items [get]
func (h *InventoryHandler) ListItems(c echo.Context) error {
	return h.listItems(c, false)
}

// LowStock lists items at or below their reorder level.
//
// @Summary      Low-stock items
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        category     query     string  false  "Category"
// @Param        supplier_id  query     string  false  "Supplier id"
// @Param        page         query     int     false  "Page number"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200          {object}  listResponse[domain.InventoryItem]
// @Router       /v1/inventory/items/low-stock [get]
func (h *InventoryHandler) LowStock(c echo.Context) error {
	return h.listItems(c, true)
}

func (h *InventoryHandler) listItems(c echo.Context, lowStock bool) error {
	var q inventoryQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	res, err := h.inventoryService.ListItems(c.Request().Context(), ports.InventoryFilter{
		Category:   q.Category,
		SupplierID: q.SupplierID,
		LowStock:   lowStock,
		Page:       q.toPage(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// @Summary      Get an inventory item
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  domain.InventoryItem
// @Failure      404  {object}  errorResponse
// @Router       /v1/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c echo.Context) error {
	item, err := h.inventoryService.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// @Summary      Update an inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Item id"
// @Param        body  body      inventoryItemRequest  true  "Item"
// @Success      200   {object}  domain.InventoryItem
// @Router       /v1/inventory/items/{id} [patch]
func (h *InventoryHandler) UpdateItem(c echo.Context) error {
	var req inventoryItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.inventoryService.UpdateItem(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// @Summary      Delete an inventory item
// @Tags         inventory
// @Security     BearerAuth
// @Param        id  path  string  true  "Item id"
// @Success      204
// @Router       /v1/inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c echo.Context) error {
	if err := h.inventoryService.DeleteItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Adjust applies a signed stock change. Stock never drops below zero.
//
// @Summary      Adjust stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Item id"
// @Param        body  body      adjustStockRequest  true  "Delta and note"
// @Success      200   {object}  domain.InventoryItem
// @Failure      409   {object}  errorResponse
// @Router       /v1/inventory/items/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req adjustStockRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.inventoryService.Adjust(c.Request().Context(), actor, c.Param("id"), req.Delta, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}
