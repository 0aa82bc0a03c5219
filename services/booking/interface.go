package booking

import (
	"context"
	"time"

	bookingRepo "chargesphere/database/repository/booking"
	userRepo "chargesphere/database/repository/user"
	"chargesphere/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService covers the booking lifecycle for owners and administrators.
type BookingService interface {
	// Owner operations
	CreateBooking(ctx context.Context, userID primitive.ObjectID, req models.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, userID primitive.ObjectID, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, userID primitive.ObjectID, status string, page models.Page) (*models.BookingPage, error)
	UpdateBooking(ctx context.Context, userID primitive.ObjectID, bookingID string, req models.UpdateBookingRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, userID primitive.ObjectID, bookingID string) (*models.Booking, error)
	GetStats(ctx context.Context, userID primitive.ObjectID) (*models.BookingStats, error)
	StationVisits(ctx context.Context, userID primitive.ObjectID) (map[string]int, error)

	// Admin operations
	AdminListBookings(ctx context.Context, status string, page models.Page) (*models.AdminBookingPage, error)
	ApproveBooking(ctx context.Context, bookingID string) (*models.BookingWithOwner, error)
	RejectBooking(ctx context.Context, bookingID string) (*models.BookingWithOwner, error)
	AdminStats(ctx context.Context) (*models.AdminStats, error)

	// Scheduled
	CompletePastBookings(ctx context.Context, now time.Time) (int64, error)
}

// AdminDefaultLimit is the admin listing page size.
const AdminDefaultLimit = 20

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo  bookingRepo.BookingRepository
	Users userRepo.UserRepository
	// Now is overridable in tests.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
