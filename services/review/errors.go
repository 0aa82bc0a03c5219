package review

import (
	"errors"
	"net/http"

	"chargesphere/database/repository"
	"chargesphere/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateReview is returned for a second review of the same station by the same user,
	// whether caught by the pre-check or by the unique index.
	ErrDuplicateReview = utils.NewConflictError("You have already reviewed this station")
	// ErrAlreadyMarkedHelpful is answered with 400 for client compatibility.
	ErrAlreadyMarkedHelpful = &utils.ConflictError{Message: "Already marked as helpful", Status: http.StatusBadRequest}

	errReviewNotFound  = utils.NewNotFoundError("Review")
	errStorageDisabled = errors.New("photo storage is not configured")
)

func parseReviewID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errReviewNotFound
	}
	return id, nil
}

func storeError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errReviewNotFound
	}
	utils.GetLogger().Error("review store failure", zap.String("op", op), zap.Error(err))
	return utils.NewServerError(op, err)
}

// duplicateOr collapses a unique-index violation into ErrDuplicateReview.
func duplicateOr(op string, err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrDuplicateReview
	}
	return storeError(op, err)
}
