package booking

import (
	"context"

	"chargesphere/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *DefaultBookingService) AdminListBookings(ctx context.Context, status string, page models.Page) (*models.AdminBookingPage, error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	page = page.Normalize(AdminDefaultLimit)

	bookings, total, err := s.Repo.List(ctx, models.BookingFilter{Status: st}, page)
	if err != nil {
		return nil, storeError("admin list bookings", err)
	}

	withOwners, err := s.attachOwners(ctx, bookings)
	if err != nil {
		return nil, err
	}
	return &models.AdminBookingPage{Bookings: withOwners, PageMeta: models.NewPageMeta(total, page)}, nil
}

func (s *DefaultBookingService) ApproveBooking(ctx context.Context, bookingID string) (*models.BookingWithOwner, error) {
	return s.adminTransition(ctx, bookingID, models.BookingConfirmed)
}

func (s *DefaultBookingService) RejectBooking(ctx context.Context, bookingID string) (*models.BookingWithOwner, error) {
	return s.adminTransition(ctx, bookingID, models.BookingCancelled)
}

func (s *DefaultBookingService) adminTransition(ctx context.Context, bookingID string, target models.BookingStatus) (*models.BookingWithOwner, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get booking", err)
	}
	if b, err = s.transition(ctx, b, target); err != nil {
		return nil, err
	}

	withOwners, err := s.attachOwners(ctx, []models.Booking{*b})
	if err != nil {
		return nil, err
	}
	return &withOwners[0], nil
}

func (s *DefaultBookingService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	users, err := s.Users.Count(ctx)
	if err != nil {
		return nil, storeError("count users", err)
	}
	byStatus, err := s.Repo.CountByStatus(ctx)
	if err != nil {
		return nil, storeError("count bookings", err)
	}

	counts := models.BookingCounts{
		Pending:   byStatus[models.BookingPending],
		Confirmed: byStatus[models.BookingConfirmed],
		Completed: byStatus[models.BookingCompleted],
		Cancelled: byStatus[models.BookingCancelled],
	}
	for _, n := range byStatus {
		counts.Total += n
	}
	return &models.AdminStats{Users: users, Bookings: counts}, nil
}

// attachOwners joins owner name, email and phone. Owners that no longer resolve are left nil.
func (s *DefaultBookingService) attachOwners(ctx context.Context, bookings []models.Booking) ([]models.BookingWithOwner, error) {
	ids := make([]primitive.ObjectID, 0, len(bookings))
	seen := map[primitive.ObjectID]bool{}
	for _, b := range bookings {
		if !seen[b.User] {
			seen[b.User] = true
			ids = append(ids, b.User)
		}
	}

	owners, err := s.Users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, storeError("resolve booking owners", err)
	}

	out := make([]models.BookingWithOwner, 0, len(bookings))
	for _, b := range bookings {
		entry := models.BookingWithOwner{Booking: b}
		if owner, ok := owners[b.User]; ok {
			o := owner
			entry.Owner = &o
		}
		out = append(out, entry)
	}
	return out, nil
}
