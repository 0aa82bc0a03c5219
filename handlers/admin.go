package handlers

import (
	"net/http"

	"chargesphere/services/booking"
	"chargesphere/services/user"
	"chargesphere/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	UserService    user.UserService
	BookingService booking.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(us user.UserService, bs booking.BookingService) *AdminHandler {
	return &AdminHandler{UserService: us, BookingService: bs}
}

// ListBookingsHandler returns every booking with its owner attached.
func (ah *AdminHandler) ListBookingsHandler(c *gin.Context) {
	page, err := ah.BookingService.AdminListBookings(c.Request.Context(), c.Query("status"), pageFromQuery(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ah *AdminHandler) ApproveBookingHandler(c *gin.Context) {
	b, err := ah.BookingService.ApproveBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Booking approved", zap.String("bookingID", b.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{"message": "Booking approved successfully", "booking": b})
}

func (ah *AdminHandler) RejectBookingHandler(c *gin.Context) {
	b, err := ah.BookingService.RejectBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Booking rejected", zap.String("bookingID", b.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{"message": "Booking rejected successfully", "booking": b})
}

// StatsHandler returns global user and booking counts.
func (ah *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := ah.BookingService.AdminStats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetAllUsersHandler returns all users (with sensitive fields excluded).
func (ah *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := ah.UserService.ListUsers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
