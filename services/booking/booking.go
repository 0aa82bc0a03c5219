package booking

import (
	"context"
	"errors"

	"chargesphere/database/repository"
	"chargesphere/models"
	"chargesphere/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID primitive.ObjectID, req models.CreateBookingRequest) (*models.Booking, error) {
	req.Normalize()
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}
	date, err := utils.ParseDate(req.BookingDate)
	if err != nil {
		return nil, utils.NewValidationError("bookingDate", "must be an ISO-8601 date")
	}

	b := &models.Booking{
		User: userID,
		Station:       req.Station,
		Vehicle:       req.Vehicle,
		BookingDate:   date,
		StartTime:     req.StartTime,
		Duration:      req.Duration,
		ChargerType:   req.ChargerType,
		EstimatedCost: req.EstimatedCost,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
		Notes:         req.Notes,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, storeError("create booking", err)
	}
	return b, nil
}

// loadOwned checks existence before ownership.
func (s *DefaultBookingService) loadOwned(ctx context.Context, userID primitive.ObjectID, bookingID string) (*models.Booking, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get booking", err)
	}
	if b.User != userID {
		return nil, utils.NewForbiddenError("Not authorized to access this booking")
	}
	return b, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, userID primitive.ObjectID, bookingID string) (*models.Booking, error) {
	return s.loadOwned(ctx, userID, bookingID)
}

func parseStatusFilter(raw string) (models.BookingStatus, error) {
	if raw == "" {
		return "", nil
	}
	status, err := models.ParseBookingStatus(raw)
	if err != nil {
		return "", utils.NewValidationError("status", "must be one of: pending confirmed completed cancelled")
	}
	return status, nil
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, userID primitive.ObjectID, status string, page models.Page) (*models.BookingPage, error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	page = page.Normalize(models.DefaultLimit)

	bookings, total, err := s.Repo.List(ctx, models.BookingFilter{User: &userID, Status: st}, page)
	if err != nil {
		return nil, storeError("list bookings", err)
	}
	return &models.BookingPage{Bookings: bookings, PageMeta: models.NewPageMeta(total, page)}, nil
}

func (s *DefaultBookingService) UpdateBooking(ctx context.Context, userID primitive.ObjectID, bookingID string, req models.UpdateBookingRequest) (*models.Booking, error) {
	req.Normalize()
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}

	var changes models.BookingChanges
	if req.BookingDate != nil {
		date, err := utils.ParseDate(*req.BookingDate)
		if err != nil {
			return nil, utils.NewValidationError("bookingDate", "must be an ISO-8601 date")
		}
		changes.BookingDate = &date
	}
	changes.StartTime = req.StartTime
	changes.Duration = req.Duration
	changes.Notes = req.Notes

	b, err := s.loadOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		target := models.BookingStatus(*req.Status)
		if target != b.Status && target != models.BookingCancelled {
			return nil, utils.NewForbiddenError("Only administrators can set a booking to " + string(target))
		}
		if !b.Status.CanTransitionTo(target) {
			return nil, illegalTransition(b.Status, target)
		}
		if target != b.Status {
			changes.Status = &target
		}
	}
	if b.Status.IsTerminal() && changes.EditsFields() {
		return nil, utils.NewConflictError("cannot edit a " + string(b.Status) + " booking")
	}
	if changes.IsEmpty() {
		return b, nil
	}

	updated, err := s.Repo.Update(ctx, b.ID, b.Status, changes)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errStatusMoved
	}
	if err != nil {
		return nil, storeError("update booking", err)
	}
	return updated, nil
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, userID primitive.ObjectID, bookingID string) (*models.Booking, error) {
	b, err := s.loadOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, b, models.BookingCancelled)
}

// transition applies the state machine with a compare-and-set on the current status.
func (s *DefaultBookingService) transition(ctx context.Context, b *models.Booking, target models.BookingStatus) (*models.Booking, error) {
	if !b.Status.CanTransitionTo(target) {
		return nil, illegalTransition(b.Status, target)
	}
	if b.Status == target {
		return b, nil
	}

	updated, err := s.Repo.TransitionStatus(ctx, b.ID, b.Status, target)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errStatusMoved
	}
	if err != nil {
		return nil, storeError("transition booking", err)
	}
	return updated, nil
}
