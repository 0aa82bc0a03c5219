package userRepo

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

// updateAndReturn applies update to the user and returns the stored document.
func (r *MongoUserRepo) updateAndReturn(ctx context.Context, filter, update bson.M) (*models.User, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, repository.Translate(err)
	}
	return &user, nil
}

func (r *MongoUserRepo) setFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return repository.Translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, changes models.ProfileUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if changes.Name != nil {
		set["name"] = *changes.Name
	}
	if changes.Email != nil {
		set["email"] = *changes.Email
	}
	if changes.Phone != nil {
		set["phone"] = *changes.Phone
	}

	user, err := r.updateAndReturn(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (r *MongoUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	if err := r.setFields(ctx, id, bson.M{"password": passwordHash}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	if err := r.setFields(ctx, id, bson.M{"role": role}); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) SetTokenHash(ctx context.Context, id primitive.ObjectID, tokenHash string) error {
	if err := r.setFields(ctx, id, bson.M{"tokenHash": tokenHash}); err != nil {
		return fmt.Errorf("failed to store token hash: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) AddFavorite(ctx context.Context, id primitive.ObjectID, fav models.Favorite) ([]models.Favorite, error) {
	filter := bson.M{"_id": id, "favorites.stationId": bson.M{"$ne": fav.StationID}}
	update := bson.M{
		"$push": bson.M{"favorites": fav},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	user, err := r.updateAndReturn(ctx, filter, update)
	if err == nil {
		return user.Favorites, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	// The guard failed: either the user is gone or the station is already there.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, repository.ErrDuplicate
}

func (r *MongoUserRepo) RemoveFavorite(ctx context.Context, id primitive.ObjectID, stationID string) ([]models.Favorite, error) {
	update := bson.M{
		"$pull": bson.M{"favorites": bson.M{"stationId": stationID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	user, err := r.updateAndReturn(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return user.Favorites, nil
}
