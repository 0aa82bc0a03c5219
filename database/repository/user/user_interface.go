package userRepo

import (
	"context"

	"chargesphere/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines methods for user data access.
// Lookups return repository.ErrNotFound; unique email violations return repository.ErrDuplicate.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetAll returns users newest first without credential fields.
	GetAll(ctx context.Context) ([]models.User, error)
	// GetSummaries resolves owner display data for a set of ids.
	GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error)
	Count(ctx context.Context) (int64, error)

	UpdateProfile(ctx context.Context, id primitive.ObjectID, changes models.ProfileUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) error
	SetTokenHash(ctx context.Context, id primitive.ObjectID, tokenHash string) error

	// AddFavorite appends atomically; repository.ErrDuplicate if the station is already a favorite.
	AddFavorite(ctx context.Context, id primitive.ObjectID, fav models.Favorite) ([]models.Favorite, error)
	RemoveFavorite(ctx context.Context, id primitive.ObjectID, stationID string) ([]models.Favorite, error)
}
