package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"chargesphere/database/repository"
	"chargesphere/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) updateAndReturn(ctx context.Context, filter, update bson.M) (*models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking); err != nil {
		return nil, repository.Translate(err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) Update(ctx context.Context, id primitive.ObjectID, expected models.BookingStatus, changes models.BookingChanges) (*models.Booking, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if changes.BookingDate != nil {
		set["bookingDate"] = *changes.BookingDate
	}
	if changes.StartTime != nil {
		set["startTime"] = *changes.StartTime
	}
	if changes.Duration != nil {
		set["duration"] = *changes.Duration
	}
	if changes.Notes != nil {
		set["notes"] = *changes.Notes
	}
	if changes.Status != nil {
		set["status"] = *changes.Status
	}

	booking, err := r.updateAndReturn(ctx, bson.M{"_id": id, "status": expected}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", id.Hex(), err)
	}
	return booking, nil
}

func (r *MongoBookingRepo) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to models.BookingStatus) (*models.Booking, error) {
	filter := bson.M{"_id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}}

	booking, err := r.updateAndReturn(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to move booking %s to %s: %w", id.Hex(), to, err)
	}
	return booking, nil
}

// CompleteFinished treats a booking as over one day plus its duration after bookingDate,
// since startTime is a free-form clock string.
func (r *MongoBookingRepo) CompleteFinished(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := repository.NewContext(ctx, 30*time.Second)
	defer cancel()

	endExpr := bson.M{"$add": bson.A{
		"$bookingDate",
		int64(24 * time.Hour / time.Millisecond),
		bson.M{"$multiply": bson.A{"$duration", int64(time.Minute / time.Millisecond)}},
	}}
	filter := bson.M{
		"status": models.BookingConfirmed,
		"$expr":  bson.M{"$lt": bson.A{endExpr, now}},
	}
	update := bson.M{"$set": bson.M{"status": models.BookingCompleted, "updatedAt": now.UTC()}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to complete bookings: %w", err)
	}
	return res.ModifiedCount, nil
}
