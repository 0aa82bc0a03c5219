package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"chargesphere/database/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "station.id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("one_review_per_station"),
		},
		{Keys: bson.D{{Key: "station.id", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
