package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"chargesphere/database/repository"
	"chargesphere/models"
	"chargesphere/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *DefaultUserService) ListFavorites(ctx context.Context, userID primitive.ObjectID) ([]models.Favorite, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError("get user", err)
	}
	if u.Favorites == nil {
		return []models.Favorite{}, nil
	}
	return u.Favorites, nil
}

func (s *DefaultUserService) AddFavorite(ctx context.Context, userID primitive.ObjectID, req models.AddFavoriteRequest) ([]models.Favorite, error) {
	req.StationID = strings.TrimSpace(req.StationID)
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}

	favs, err := s.Repo.AddFavorite(ctx, userID, models.Favorite{
		StationID:   req.StationID,
		StationName: strings.TrimSpace(req.StationName),
		AddedAt:     time.Now().UTC(),
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrFavoriteExists
	}
	if err != nil {
		return nil, storeError("add favorite", err)
	}
	return favs, nil
}

// RemoveFavorite is a no-op for stations that are not favorites.
func (s *DefaultUserService) RemoveFavorite(ctx context.Context, userID primitive.ObjectID, stationID string) ([]models.Favorite, error) {
	stationID = strings.TrimSpace(stationID)
	if stationID == "" {
		return nil, utils.NewValidationError("stationId", "is required")
	}
	favs, err := s.Repo.RemoveFavorite(ctx, userID, stationID)
	if err != nil {
		return nil, storeError("remove favorite", err)
	}
	return favs, nil
}
