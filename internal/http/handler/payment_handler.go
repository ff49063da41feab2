package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/hotel-booking-platform/internal/service"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type chargeIn struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method"`
}

// Charge — POST /bookings/:id/payments.
func (h *PaymentHandler) Charge(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in chargeIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	payment, err := h.payments.Charge(c.Request.Context(), bookingID, in.Amount, in.Method)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// Refund — POST /payments/:id/refund.
func (h *PaymentHandler) Refund(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	payment, err := h.payments.Refund(c.Request.Context(), paymentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// ListByBooking — GET /bookings/:id/payments.
func (h *PaymentHandler) ListByBooking(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	payments, err := h.payments.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
