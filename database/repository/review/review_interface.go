package reviewRepo

import (
	"context"

	"chargesphere/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create returns repository.ErrDuplicate when (user, station.id) already exists.
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindByUserAndStation(ctx context.Context, user primitive.ObjectID, stationID string) (*models.Review, error)
	ListByStation(ctx context.Context, stationID string, sort models.ReviewSort, page models.Page) ([]models.Review, int64, error)
	ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.Review, error)
	// RatingCounts returns the number of reviews per rating for a station.
	RatingCounts(ctx context.Context, stationID string) (map[int]int64, error)

	Update(ctx context.Context, id primitive.ObjectID, changes models.ReviewChanges) (*models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AddHelpful records one vote per user; repository.ErrDuplicate if user already voted.
	AddHelpful(ctx context.Context, id, user primitive.ObjectID) (*models.Review, error)
	AddPhoto(ctx context.Context, id primitive.ObjectID, photo models.Photo) (*models.Review, error)
}
