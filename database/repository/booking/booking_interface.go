package bookingRepo

import (
	"context"
	"time"

	"chargesphere/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	// List returns one page, newest first, and the total matching count.
	List(ctx context.Context, filter models.BookingFilter, page models.Page) ([]models.Booking, int64, error)
	Count(ctx context.Context, filter models.BookingFilter) (int64, error)
	CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error)

	// Update applies the set fields, status included, only while the booking is still
	// in expected. repository.ErrNotFound means the booking is missing or its status moved.
	Update(ctx context.Context, id primitive.ObjectID, expected models.BookingStatus, changes models.BookingChanges) (*models.Booking, error)
	// TransitionStatus sets status only while the booking is still in from.
	// repository.ErrNotFound means the booking is missing or its status moved.
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to models.BookingStatus) (*models.Booking, error)

	// CompleteFinished marks confirmed bookings whose slot ended before now as completed.
	CompleteFinished(ctx context.Context, now time.Time) (int64, error)
	// StationVisits counts a user's non-cancelled bookings per station id.
	StationVisits(ctx context.Context, user primitive.ObjectID) (map[string]int, error)
}
