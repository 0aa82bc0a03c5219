package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"chargesphere/database/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoReviewRepo) RatingCounts(ctx context.Context, stationID string) (map[int]int64, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"station.id": stationID}}},
		{{Key: "$group", Value: bson.M{"_id": "$rating", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Rating int   `bson:"_id"`
		Count  int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}

	out := make(map[int]int64, len(rows))
	for _, row := range rows {
		out[row.Rating] = row.Count
	}
	return out, nil
}
