package userRepo

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

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// safeProjection strips credential fields from listings.
var safeProjection = bson.M{"password": 0, "tokenHash": 0}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(db *mongo.Database) UserRepository {
	repo := &MongoUserRepo{coll: db.Collection("users")}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to create user indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.MemberSince.IsZero() {
		user.MemberSince = now
	}
	if user.Favorites == nil {
		user.Favorites = []models.Favorite{}
	}

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", repository.Translate(err))
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", repository.Translate(err))
	}
	return &user, nil
}

func (r *MongoUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(safeProjection).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepo) GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1, "phone": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user summaries: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var s models.UserSummary
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode user summary: %w", err)
		}
		out[s.ID] = s
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user summaries: %w", err)
	}
	return out, nil
}

func (r *MongoUserRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
