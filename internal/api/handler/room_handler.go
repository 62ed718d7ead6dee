package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/api/metrics"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

type RoomHandler struct {
	roomService    ports.RoomService
	bookingService ports.BookingService
}

func NewRoomHandler(roomService ports.RoomService, bookingService ports.BookingService) *RoomHandler {
	return &RoomHandler{roomService: roomService, bookingService: bookingService}
}

// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Param        status  query     string  false  "Available, Booked or Maintenance"
// @Param        type    query     string  false  "Room type"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.Room]
// @Router       /v1/rooms [get]
func (h *RoomHandler) ListRooms(c echo.Context) error {
	var q roomQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	res, err := h.roomService.List(c.Request().Context(), ports.RoomFilter{
		Status: q.Status,
		Type:   q.Type,
		Page:   q.toPage(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Param        id   path      string  true  "Room id"
// @Success      200  {object}  domain.Room
// @Failure      404  {object}  errorResponse
// @Router       /v1/rooms/{id} [get]
func (h *RoomHandler) GetRoom(c echo.Context) error {
	room, err := h.roomService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roomRequest  true  "Room"
// @Success      201   {object}  domain.Room
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/rooms [post]
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req roomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	room, err := h.roomService.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, room)
}

// @Summary      Update a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Room id"
// @Param        body  body      roomRequest  true  "Room"
// @Success      200   {object}  domain.Room
// @Failure      404   {object}  errorResponse
// @Router       /v1/rooms/{id} [patch]
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	var req roomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	room, err := h.roomService.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// @Summary      Delete a room
// @Tags         rooms
// @Security     BearerAuth
// @Param        id  path  string  true  "Room id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	if err := h.roomService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary      Upload room images
// @Tags         rooms
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Room id"
// @Param        images  formData  file    true  "Images (up to 10)"
// @Success      200     {object}  domain.Room
// @Router       /v1/rooms/{id}/images [post]
func (h *RoomHandler) UploadRoomImages(c echo.Context) error {
	files, closeFiles, err := formUploads(c, "images")
	if err != nil {
		return err
	}
	defer closeFiles()

	room, err := h.roomService.AddImages(c.Request().Context(), c.Param("id"), files)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// CreateBooking reserves a room for the calling guest.
//
// @Summary      Book a room
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking"
// @Success      201   {object}  domain.RoomBooking
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/bookings [post]
func (h *RoomHandler) CreateBooking(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.bookingService.Create(c.Request().Context(), guest, req.toInput())
	if err != nil {
		return err
	}
	metrics.BookingsCreatedTotal.WithLabelValues("room").Inc()
	return c.JSON(http.StatusCreated, booking)
}

// @Summary      My bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Booking status"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.RoomBooking]
// @Router       /v1/bookings/mine [get]
func (h *RoomHandler) MyBookings(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var q StatusQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	return h.listBookings(c, ports.BookingFilter{GuestID: guest.ID, Status: q.Status, Page: q.toPage()})
}

// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Booking status"
// @Param        guest_id  query     string  false  "Guest id"
// @Param        room_id   query     string  false  "Room id"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResponse[domain.RoomBooking]
// @Router       /v1/bookings [get]
func (h *RoomHandler) ListBookings(c echo.Context) error {
	var q bookingQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	return h.listBookings(c, ports.BookingFilter{
		GuestID: q.GuestID,
		RoomID:  q.RoomID,
		Status:  q.Status,
		Page:    q.toPage(),
	})
}

func (h *RoomHandler) listBookings(c echo.Context, f ports.BookingFilter) error {
	res, err := h.bookingService.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.RoomBooking
// @Failure      404  {object}  errorResponse
// @Router       /v1/bookings/{id} [get]
func (h *RoomHandler) GetBooking(c echo.Context) error {
	booking, err := h.bookingService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// UpdateBookingStatus moves a booking through its lifecycle. Checking out or
// cancelling releases the room.
//
// @Summary      Change booking status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Booking id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  domain.RoomBooking
// @Failure      422   {object}  errorResponse
// @Router       /v1/bookings/{id}/status [patch]
func (h *RoomHandler) UpdateBookingStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.bookingService.UpdateStatus(c.Request().Context(), c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// @Summary      Cancel my booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.RoomBooking
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/bookings/{id}/cancel [patch]
func (h *RoomHandler) CancelBooking(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	booking, err := h.bookingService.Cancel(c.Request().Context(), guest, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}
