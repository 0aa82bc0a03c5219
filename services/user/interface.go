package user

import (
	"context"
	"time"

	userRepo "chargesphere/database/repository/user"
	"chargesphere/models"
	"chargesphere/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, userID primitive.ObjectID) error

	// Profile
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, req models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, req models.ChangePasswordRequest) error

	// Favorites
	ListFavorites(ctx context.Context, userID primitive.ObjectID) ([]models.Favorite, error)
	AddFavorite(ctx context.Context, userID primitive.ObjectID, req models.AddFavoriteRequest) ([]models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID primitive.ObjectID, stationID string) ([]models.Favorite, error)

	// Admin / Utility
	ListUsers(ctx context.Context) ([]models.User, error)
	EnsureAdmin(ctx context.Context, email, password, name string) error
}

// DefaultTokenTTL applies when TokenTTL is unset.
const DefaultTokenTTL = 7 * 24 * time.Hour

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
	// Cache is optional; session hashes are then checked against the database only.
	Cache    utils.AuthCache
	TokenTTL time.Duration
}
