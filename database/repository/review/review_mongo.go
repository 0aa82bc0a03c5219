package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"chargesphere/database/repository"
	"chargesphere/models"
	"chargesphere/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

func NewMongoReviewRepo(db *mongo.Database) ReviewRepository {
	repo := &MongoReviewRepo{coll: db.Collection("reviews")}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create review indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	if review.Issues == nil {
		review.Issues = []string{}
	}
	if review.Photos == nil {
		review.Photos = []models.Photo{}
	}
	if review.HelpfulBy == nil {
		review.HelpfulBy = []primitive.ObjectID{}
	}

	res, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", repository.Translate(err))
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}

func (r *MongoReviewRepo) findOne(ctx context.Context, filter bson.M) (*models.Review, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, filter).Decode(&review); err != nil {
		return nil, fmt.Errorf("failed to fetch review: %w", repository.Translate(err))
	}
	return &review, nil
}

func (r *MongoReviewRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoReviewRepo) FindByUserAndStation(ctx context.Context, user primitive.ObjectID, stationID string) (*models.Review, error) {
	return r.findOne(ctx, bson.M{"user": user, "station.id": stationID})
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// sortFor orders by the requested key; ties fall back to newest first, then insertion order.
func sortFor(s models.ReviewSort) bson.D {
	switch s {
	case models.SortHighest:
		return append(bson.D{{Key: "rating", Value: -1}}, newestFirst...)
	case models.SortLowest:
		return append(bson.D{{Key: "rating", Value: 1}}, newestFirst...)
	default:
		return newestFirst
	}
}

func (r *MongoReviewRepo) ListByStation(ctx context.Context, stationID string, sort models.ReviewSort, page models.Page) ([]models.Review, int64, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"station.id": stationID}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(sortFor(sort)).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *MongoReviewRepo) ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.Review, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(newestFirst)
	cursor, err := r.coll.Find(ctx, bson.M{"user": user}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list user reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *MongoReviewRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
