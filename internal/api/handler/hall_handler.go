package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/api/metrics"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type HallHandler struct {
	hallService ports.HallService
}

func NewHallHandler(hallService ports.HallService) *HallHandler {
	return &HallHandler{hallService: hallService}
}

// @Summary      List halls
// @Tags         halls
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listResponse[domain.Hall]
// @Router       /v1/halls [get]
func (h *HallHandler) ListHalls(c echo.Context) error {
	var q PageQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	res, err := h.hallService.List(c.Request().Context(), q.toPage())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// @Summary      Get a hall
// @Tags         halls
// @Produce      json
// @Param        id   path      string  true  "Hall id"
// @Success      200  {object}  domain.Hall
// @Failure      404  {object}  errorResponse
// @Router       /v1/halls/{id} [get]
func (h *HallHandler) GetHall(c echo.Context) error {
	hall, err := h.hallService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hall)
}

// @Summary      Create a hall
// @Tags         halls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      hallRequest  true  "Hall"
// @Success      201   {object}  domain.Hall
// @Router       /v1/halls [post]
func (h *HallHandler) CreateHall(c echo.Context) error {
	var req hallRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hall, err := h.hallService.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, hall)
}

// @Summary      Update a hall
// @Tags         halls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Hall id"
// @Param        body  body      hallRequest  true  "Hall"
// @Success      200   {object}  domain.Hall
// @Router       /v1/halls/{id} [patch]
func (h *HallHandler) UpdateHall(c echo.Context) error {
	var req hallRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	hall, err := h.hallService.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hall)
}

// @Summary      Delete a hall
// @Tags         halls
// @Security     BearerAuth
// @Param        id  path  string  true  "Hall id"
// @Success      204
// @Router       /v1/halls/{id} [delete]
func (h *HallHandler) DeleteHall(c echo.Context) error {
	if err := h.hallService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary      Upload hall images
// @Tags         halls
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Hall id"
// @Param        images  formData  file    true  "Images (up to 10)"
// @Success      200     {object}  domain.Hall
// @Router       /v1/halls/{id}/images [post]
func (h *HallHandler) UploadHallImages(c echo.Context) error {
	files, closeFiles, err := formUploads(c, "images")
	if err != nil {
		return err
	}
	defer closeFiles()

	hall, err := h.hallService.AddImages(c.Request().Context(), c.Param("id"), files)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hall)
}

// Reserve books a hall for one event day. A second active reservation for
// the same hall and day is rejected with 409.
//
// @Summary      Reserve a hall
// @Tags         halls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reservationRequest  true  "Reservation"
// @Success      201   {object}  domain.HallReservation
// @Failure      409   {object}  errorResponse
// @Router       /v1/halls/reservations [post]
func (h *HallHandler) Reserve(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req reservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.hallService.Reserve(c.Request().Context(), guest, req.toInput())
	if err != nil {
		return err
	}
	metrics.BookingsCreatedTotal.WithLabelValues("hall").Inc()
	return c.JSON(http.StatusCreated, res)
}

// @Summary      My hall reservations
// @Tags         halls
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Reservation status"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.HallReservation]
// @Router       /v1/halls/reservations/mine [get]
func (h *HallHandler) MyReservations(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var q StatusQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	return h.listReservations(c, ports.ReservationFilter{GuestID: guest.ID, Status: q.Status, Page: q.toPage()})
}

// @Summary      List hall reservations
// @Tags         halls
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Reservation status"
// @Param        guest_id  query     string  false  "Guest id"
// @Param        hall_id   query     string  false  "Hall id"
// @Param        from      query     string  false  "Earliest event date (YYYY-MM-DD)"
// @Param        to        query     string  false  "Latest event date (YYYY-MM-DD)"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResponse[domain.HallReservation]
// @Router       /v1/halls/reservations [get]
func (h *HallHandler) ListReservations(c echo.Context) error {
	var q reservationQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	return h.listReservations(c, q.toFilter())
}

func (h *HallHandler) listReservations(c echo.Context, f ports.ReservationFilter) error {
	res, err := h.hallService.ListReservations(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// @Summary      Get a hall reservation
// @Tags         halls
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reservation id"
// @Success      200  {object}  domain.HallReservation
// @Failure      404  {object}  errorResponse
// @Router       /v1/halls/reservations/{id} [get]
func (h *HallHandler) GetReservation(c echo.Context) error {
	res, err := h.hallService.GetReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// @Summary      Change reservation status
// @Tags         halls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Reservation id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  domain.HallReservation
// @Failure      422   {object}  errorResponse
// @Router       /v1/halls/reservations/{id}/status [patch]
func (h *HallHandler) UpdateReservationStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.hallService.UpdateReservationStatus(c.Request().Context(), c.Param("id"), domain.ReservationStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
