package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/api/metrics"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

const (
	signatureHeader = "x-paystack-signature"
	maxWebhookBody  = 1 << 20
)

type initializePaymentRequest struct {
	Purpose  string `json:"purpose"   validate:"required,oneof=room_booking hall_reservation laundry_order dish_order"`
	TargetID string `json:"target_id" validate:"required"`
}

type paymentQuery struct {
	StatusQuery
	GuestID string `query:"guest_id"`
	Purpose string `query:"purpose"`
}

type PaymentHandler struct {
	paymentService ports.PaymentService
	log            zerolog.Logger
}

func NewPaymentHandler(paymentService ports.PaymentService, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, log: log}
}

// Initialize opens a gateway checkout for a document owned by the guest. The
// amount is read from the document.
//
// @Summary      Start a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      initializePaymentRequest  true  "Purpose and target document"
// @Success      201   {object}  domain.Payment
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/payments/initialize [post]
func (h *PaymentHandler) Initialize(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req initializePaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.paymentService.Initialize(c.Request().Context(), guest, ports.InitializePaymentInput{
		Purpose:  domain.PaymentPurpose(req.Purpose),
		TargetID: req.TargetID,
	})
	if err != nil {
		return err
	}
	metrics.PaymentsInitializedTotal.WithLabelValues(req.Purpose).Inc()
	return c.JSON(http.StatusCreated, p)
}

// Verify asks the gateway for the transaction state and settles it.
//
// @Summary      Verify a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Payment reference"
// @Success      200        {object}  domain.Payment
// @Failure      404        {object}  errorResponse
// @Router       /v1/payments/verify/{reference} [get]
func (h *PaymentHandler) Verify(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	p, err := h.paymentService.Verify(c.Request().Context(), guest, c.Param("reference"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Webhook receives gateway notifications. The raw body is checked against
// the HMAC signature before parsing.
//
// @Summary      Payment gateway webhook
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        x-paystack-signature  header    string  true  "HMAC-SHA512 of the body"
// @Success      200                   {object}  messageResponse
// @Failure      401                   {object}  errorResponse
// @Router       /v1/payments/webhook [post]
func (h *PaymentHandler) Webhook(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		metrics.PaymentWebhooksTotal.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read body")
	}

	err = h.paymentService.HandleWebhook(c.Request().Context(), body, c.Request().Header.Get(signatureHeader))
	switch {
	case errors.Is(err, domain.ErrInvalidSignature):
		metrics.PaymentWebhooksTotal.WithLabelValues("rejected_signature").Inc()
		h.log.Warn().Str("ip", c.RealIP()).Msg("webhook rejected: bad signature")
		return err
	case err != nil:
		metrics.PaymentWebhooksTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.PaymentWebhooksTotal.WithLabelValues("accepted").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "ok"})
}

// @Summary      My payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Payment state"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.Payment]
// @Router       /v1/payments/mine [get]
func (h *PaymentHandler) Mine(c echo.Context) error {
	guest, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var q paymentQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	return h.list(c, ports.PaymentFilter{GuestID: guest.ID, State: q.Status, Purpose: q.Purpose, Page: q.toPage()})
}

// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Payment state"
// @Param        purpose   query     string  false  "Payment purpose"
// @Param        guest_id  query     string  false  "Guest id"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResponse[domain.Payment]
// @Router       /v1/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	var q paymentQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	return h.list(c, ports.PaymentFilter{GuestID: q.GuestID, State: q.Status, Purpose: q.Purpose, Page: q.toPage()})
}

func (h *PaymentHandler) list(c echo.Context, f ports.PaymentFilter) error {
	res, err := h.paymentService.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}
