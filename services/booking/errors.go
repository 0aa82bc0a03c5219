package booking

import (
	"errors"
	"fmt"

	"chargesphere/database/repository"
	"chargesphere/models"
	"chargesphere/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	errBookingNotFound = utils.NewNotFoundError("Booking")
	errStatusMoved     = utils.NewConflictError("booking status changed concurrently, please retry")
)

// parseBookingID treats a malformed id as a missing booking.
func parseBookingID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errBookingNotFound
	}
	return id, nil
}

// storeError maps a repository failure onto the service error taxonomy.
func storeError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errBookingNotFound
	}
	utils.GetLogger().Error("booking store failure", zap.String("op", op), zap.Error(err))
	return utils.NewServerError(op, err)
}

func illegalTransition(from, to models.BookingStatus) error {
	return utils.NewConflictError(fmt.Sprintf("cannot change booking from %s to %s", from, to))
}
