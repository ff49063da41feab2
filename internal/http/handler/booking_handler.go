package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/hotel-booking-platform/internal/http/middleware"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
	"github.com/Leganyst/hotel-booking-platform/internal/service"
)

type BookingHandler struct {
	bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingIn struct {
	RoomID       uint   `json:"roomId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
	Guests       int    `json:"guests" binding:"required"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var in createBookingIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	checkIn, err := time.Parse(dateLayout, in.CheckInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkInDate must be in format " + dateLayout})
		return
	}
	checkOut, err := time.Parse(dateLayout, in.CheckOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkOutDate must be in format " + dateLayout})
		return
	}

	claims := middleware.Claims(c)
	booking, err := h.bookings.Create(c.Request.Context(), service.CreateBookingParams{
		UserID:   claims.UserID,
		RoomID:   in.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   in.Guests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	// Гость видит только свои бронирования.
	claims := middleware.Claims(c)
	if claims.Role == string(model.UserRoleGuest) && booking.UserID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	claims := middleware.Claims(c)
	limit, offset := parsePage(c)

	bookings, total, err := h.bookings.ListByUser(c.Request.Context(), claims.UserID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": bookings, "total": total})
}

func (h *BookingHandler) ListByRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookings, err := h.bookings.ListByRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	claims := middleware.Claims(c)
	if claims.Role == string(model.UserRoleGuest) && booking.UserID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := h.bookings.Cancel(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": model.BookingStatusCancelled})
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.bookings.Confirm(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": model.BookingStatusConfirmed})
}

func (h *BookingHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.bookings.Complete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": model.BookingStatusCompleted})
}
