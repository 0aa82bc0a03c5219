package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"chargesphere/database/repository"
	"chargesphere/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoBookingRepo) CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking statuses: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.BookingStatus `bson:"_id"`
		Count  int64                `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode booking statuses: %w", err)
	}

	out := make(map[models.BookingStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *MongoBookingRepo) StationVisits(ctx context.Context, user primitive.ObjectID) (map[string]int, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user":       user,
			"status":     bson.M{"$ne": models.BookingCancelled},
			"station.id": bson.M{"$nin": bson.A{nil, ""}},
		}}},
		{{Key: "$group", Value: bson.M{"_id": "$station.id", "visits": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate station visits: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		StationID string `bson:"_id"`
		Visits    int    `bson:"visits"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode station visits: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.StationID] = row.Visits
	}
	return out, nil
}
