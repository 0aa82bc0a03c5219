package user

import (
	"errors"

	"chargesphere/database/repository"
	"chargesphere/utils"

	"go.uber.org/zap"
)

var (
	ErrEmailTaken         = utils.NewConflictError("A user with this email already exists")
	ErrInvalidCredentials = utils.NewUnauthenticatedError("Invalid email or password")
	ErrWrongPassword      = utils.NewUnauthenticatedError("Current password is incorrect")
	ErrFavoriteExists     = utils.NewConflictError("Station is already in favorites")

	errUserNotFound = utils.NewNotFoundError("User")
)

func storeError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errUserNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrEmailTaken
	}
	utils.GetLogger().Error("user store failure", zap.String("op", op), zap.Error(err))
	return utils.NewServerError(op, err)
}
