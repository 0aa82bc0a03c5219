package reviewRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chargesphere/database/repository"
	"chargesphere/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoReviewRepo) updateAndReturn(ctx context.Context, filter, update bson.M) (*models.Review, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var review models.Review
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&review); err != nil {
		return nil, repository.Translate(err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) Update(ctx context.Context, id primitive.ObjectID, changes models.ReviewChanges) (*models.Review, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if changes.Rating != nil {
		set["rating"] = *changes.Rating
	}
	if changes.ReviewText != nil {
		set["reviewText"] = *changes.ReviewText
	}
	if changes.Issues != nil {
		set["issues"] = *changes.Issues
	}

	review, err := r.updateAndReturn(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update review %s: %w", id.Hex(), err)
	}
	return review, nil
}

// AddHelpful guards on helpfulBy so the vote and the counter move together.
func (r *MongoReviewRepo) AddHelpful(ctx context.Context, id, user primitive.ObjectID) (*models.Review, error) {
	filter := bson.M{"_id": id, "helpfulBy": bson.M{"$ne": user}}
	update := bson.M{
		"$addToSet": bson.M{"helpfulBy": user},
		"$inc":      bson.M{"helpfulCount": 1},
	}

	review, err := r.updateAndReturn(ctx, filter, update)
	if err == nil {
		return review, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to record helpful vote: %w", err)
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, repository.ErrDuplicate
}

func (r *MongoReviewRepo) AddPhoto(ctx context.Context, id primitive.ObjectID, photo models.Photo) (*models.Review, error) {
	update := bson.M{
		"$push": bson.M{"photos": photo},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	review, err := r.updateAndReturn(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to attach photo: %w", err)
	}
	return review, nil
}
