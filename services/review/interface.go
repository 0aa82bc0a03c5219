package review

import (
	"context"
	"io"

	reviewRepo "chargesphere/database/repository/review"
	userRepo "chargesphere/database/repository/user"
	"chargesphere/models"
	"chargesphere/services/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService covers station reviews, their aggregates and helpful votes.
type ReviewService interface {
	CreateReview(ctx context.Context, userID primitive.ObjectID, req models.CreateReviewRequest) (*models.ReviewWithAuthor, error)
	ListStationReviews(ctx context.Context, stationID, sort string, page models.Page) (*models.StationReviewPage, error)
	ListUserReviews(ctx context.Context, userID primitive.ObjectID) ([]models.Review, error)
	UpdateReview(ctx context.Context, userID primitive.ObjectID, reviewID string, req models.UpdateReviewRequest) (*models.ReviewWithAuthor, error)
	DeleteReview(ctx context.Context, userID primitive.ObjectID, reviewID string) error
	MarkHelpful(ctx context.Context, userID primitive.ObjectID, reviewID string) (int, error)
	AddPhoto(ctx context.Context, userID primitive.ObjectID, reviewID string, file io.Reader, filename string) (*models.Review, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Repo  reviewRepo.ReviewRepository
	Users userRepo.UserRepository
	// Photos may be nil when no storage backend is configured.
	Photos storage.StorageService
}
