package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", repository.Translate(err))
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id.Hex(), repository.Translate(err))
	}
	return &booking, nil
}

func buildFilter(f models.BookingFilter) bson.M {
	filter := bson.M{}
	if f.User != nil {
		filter["user"] = *f.User
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.DateFrom != nil {
		filter["bookingDate"] = bson.M{"$gte": *f.DateFrom}
	}
	return filter
}

func (r *MongoBookingRepo) List(ctx context.Context, f models.BookingFilter, page models.Page) ([]models.Booking, int64, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	filter := buildFilter(f)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *MongoBookingRepo) Count(ctx context.Context, f models.BookingFilter) (int64, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, buildFilter(f))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}
