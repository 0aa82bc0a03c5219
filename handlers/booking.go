package handlers

import (
	"net/http"

	"chargesphere/models"
	"chargesphere/services/booking"
	"chargesphere/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the caller's own bookings.
type BookingHandler struct {
	BookingService booking.BookingService
}

func NewBookingHandler(bs booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingService: bs}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.BookingService.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Booking created", zap.String("bookingID", b.ID.Hex()), zap.String("station", b.Station.Name))
	c.JSON(http.StatusCreated, b)
}

// ListBookingsHandler handles GET /api/bookings?status&page&limit.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, err := h.BookingService.ListBookings(c.Request.Context(), userID, c.Query("status"), pageFromQuery(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// StatsHandler handles GET /api/bookings/stats/summary.
func (h *BookingHandler) StatsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := h.BookingService.GetStats(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	b, err := h.BookingService.GetBooking(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBookingHandler handles PUT /api/bookings/:id.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.BookingService.UpdateBooking(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler handles DELETE /api/bookings/:id. The booking is kept as cancelled.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	b, err := h.BookingService.CancelBooking(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Booking cancelled", zap.String("bookingID", b.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "booking": b})
}
