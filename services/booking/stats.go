package booking

import (
	"context"
	"time"

	"chargesphere/models"
	"chargesphere/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) GetStats(ctx context.Context, userID primitive.ObjectID) (*models.BookingStats, error) {
	total, err := s.Repo.Count(ctx, models.BookingFilter{User: &userID})
	if err != nil {
		return nil, storeError("count bookings", err)
	}
	completed, err := s.Repo.Count(ctx, models.BookingFilter{User: &userID, Status: models.BookingCompleted})
	if err != nil {
		return nil, storeError("count completed bookings", err)
	}
	now := s.now()
	upcoming, err := s.Repo.Count(ctx, models.BookingFilter{User: &userID, Status: models.BookingConfirmed, DateFrom: &now})
	if err != nil {
		return nil, storeError("count upcoming bookings", err)
	}
	return &models.BookingStats{Total: total, Completed: completed, Upcoming: upcoming}, nil
}

func (s *DefaultBookingService) StationVisits(ctx context.Context, userID primitive.ObjectID) (map[string]int, error) {
	visits, err := s.Repo.StationVisits(ctx, userID)
	if err != nil {
		return nil, storeError("station visits", err)
	}
	return visits, nil
}

func (s *DefaultBookingService) CompletePastBookings(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.Repo.CompleteFinished(ctx, now)
	if err != nil {
		return 0, storeError("complete bookings", err)
	}
	if n > 0 {
		utils.GetLogger().Info("completed finished bookings", zap.Int64("count", n), zap.Time("cutoff", now))
	}
	return n, nil
}
