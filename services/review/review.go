package review

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

func (s *DefaultReviewService) CreateReview(ctx context.Context, userID primitive.ObjectID, req models.CreateReviewRequest) (*models.ReviewWithAuthor, error) {
	req.Normalize()
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}
	stationID := req.Station.ID

	_, err := s.Repo.FindByUserAndStation(ctx, userID, stationID)
	switch {
	case err == nil:
		return nil, ErrDuplicateReview
	case !errors.Is(err, repository.ErrNotFound):
		return nil, storeError("find review", err)
	}

	now := time.Now().UTC()
	photos := make([]models.Photo, 0, len(req.Photos))
	for _, p := range req.Photos {
		photos = append(photos, models.Photo{URL: p.URL, UploadedAt: now})
	}
	issues := req.Issues
	if issues == nil {
		issues = []string{}
	}

	r := &models.Review{
		User:       userID,
		Station:    req.Station,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
		Issues:     issues,
		Photos:     photos,
		HelpfulBy:  []primitive.ObjectID{},
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, duplicateOr("create review", err)
	}

	withAuthors, err := s.attachAuthors(ctx, []models.Review{*r})
	if err != nil {
		return nil, err
	}
	return &withAuthors[0], nil
}

func (s *DefaultReviewService) ListStationReviews(ctx context.Context, stationID, sort string, page models.Page) (*models.StationReviewPage, error) {
	stationID = strings.TrimSpace(stationID)
	if stationID == "" {
		return nil, utils.NewValidationError("stationId", "is required")
	}
	page = page.Normalize(models.DefaultLimit)

	reviews, total, err := s.Repo.ListByStation(ctx, stationID, models.ParseReviewSort(sort), page)
	if err != nil {
		return nil, storeError("list station reviews", err)
	}
	counts, err := s.Repo.RatingCounts(ctx, stationID)
	if err != nil {
		return nil, storeError("rating counts", err)
	}
	withAuthors, err := s.attachAuthors(ctx, reviews)
	if err != nil {
		return nil, err
	}

	avg, count, dist := ComputeStats(counts)
	return &models.StationReviewPage{
		Reviews:  withAuthors,
		Stats:    models.RatingStats{AverageRating: avg, TotalReviews: count, Distribution: dist},
		PageMeta: models.NewPageMeta(total, page),
	}, nil
}

func (s *DefaultReviewService) ListUserReviews(ctx context.Context, userID primitive.ObjectID) ([]models.Review, error) {
	reviews, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list user reviews", err)
	}
	return reviews, nil
}

// loadOwned checks existence before ownership.
func (s *DefaultReviewService) loadOwned(ctx context.Context, userID primitive.ObjectID, reviewID string) (*models.Review, error) {
	id, err := parseReviewID(reviewID)
	if err != nil {
		return nil, err
	}
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get review", err)
	}
	if r.User != userID {
		return nil, utils.NewForbiddenError("Not authorized to modify this review")
	}
	return r, nil
}

func (s *DefaultReviewService) UpdateReview(ctx context.Context, userID primitive.ObjectID, reviewID string, req models.UpdateReviewRequest) (*models.ReviewWithAuthor, error) {
	if req.ReviewText != nil {
		trimmed := strings.TrimSpace(*req.ReviewText)
		req.ReviewText = &trimmed
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}

	r, err := s.loadOwned(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	changes := models.ReviewChanges{Rating: req.Rating, ReviewText: req.ReviewText, Issues: req.Issues}
	if changes.Rating != nil || changes.ReviewText != nil || changes.Issues != nil {
		if r, err = s.Repo.Update(ctx, r.ID, changes); err != nil {
			return nil, storeError("update review", err)
		}
	}

	withAuthors, err := s.attachAuthors(ctx, []models.Review{*r})
	if err != nil {
		return nil, err
	}
	return &withAuthors[0], nil
}

func (s *DefaultReviewService) DeleteReview(ctx context.Context, userID primitive.ObjectID, reviewID string) error {
	r, err := s.loadOwned(ctx, userID, reviewID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, r.ID); err != nil {
		return storeError("delete review", err)
	}
	return nil
}

// MarkHelpful records one vote per user and returns the new count. Authors may vote on their own reviews.
func (s *DefaultReviewService) MarkHelpful(ctx context.Context, userID primitive.ObjectID, reviewID string) (int, error) {
	id, err := parseReviewID(reviewID)
	if err != nil {
		return 0, err
	}
	r, err := s.Repo.AddHelpful(ctx, id, userID)
	if errors.Is(err, repository.ErrDuplicate) {
		return 0, ErrAlreadyMarkedHelpful
	}
	if err != nil {
		return 0, storeError("mark helpful", err)
	}
	return r.HelpfulCount, nil
}

// attachAuthors joins the author name onto each review.
func (s *DefaultReviewService) attachAuthors(ctx context.Context, reviews []models.Review) ([]models.ReviewWithAuthor, error) {
	ids := make([]primitive.ObjectID, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.User)
	}
	authors, err := s.Users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, storeError("resolve review authors", err)
	}

	out := make([]models.ReviewWithAuthor, 0, len(reviews))
	for _, r := range reviews {
		entry := models.ReviewWithAuthor{Review: r}
		if a, ok := authors[r.User]; ok {
			entry.Author = &models.UserSummary{ID: a.ID, Name: a.Name}
		}
		out = append(out, entry)
	}
	return out, nil
}
