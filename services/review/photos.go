package review

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"chargesphere/models"
	"chargesphere/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxPhotosPerReview = 10

var allowedPhotoExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// AddPhoto uploads an image for the author and appends its URL to the review.
func (s *DefaultReviewService) AddPhoto(ctx context.Context, userID primitive.ObjectID, reviewID string, file io.Reader, filename string) (*models.Review, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedPhotoExt[ext] {
		return nil, utils.NewValidationError("photo", "must be a jpg, png or webp image")
	}

	r, err := s.loadOwned(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}
	if len(r.Photos) >= maxPhotosPerReview {
		return nil, utils.NewConflictError("review already has the maximum number of photos")
	}
	if s.Photos == nil {
		return nil, utils.NewServerError("upload review photo", errStorageDisabled)
	}

	url, err := s.Photos.Upload(ctx, file, r.ID.Hex()+"-"+primitive.NewObjectID().Hex())
	if err != nil {
		return nil, storeError("upload review photo", err)
	}

	updated, err := s.Repo.AddPhoto(ctx, r.ID, models.Photo{URL: url, UploadedAt: time.Now().UTC()})
	if err != nil {
		return nil, storeError("attach review photo", err)
	}
	return updated, nil
}
