package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"chargesphere/database/repository"
	"chargesphere/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Reviews struct {
	mu      sync.Mutex
	reviews map[primitive.ObjectID]models.Review
	seq     int64
	order   map[primitive.ObjectID]int64

	// StaleLookups makes FindByUserAndStation miss, so only the unique constraint on Create
	// catches a duplicate. It reproduces two creates racing past the pre-check.
	StaleLookups bool
}

func NewReviews() *Reviews {
	return &Reviews{
		reviews: map[primitive.ObjectID]models.Review{},
		order:   map[primitive.ObjectID]int64{},
	}
}

func (r *Reviews) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.User == review.User && existing.Station.ID == review.Station.ID {
			return repository.ErrDuplicate
		}
	}
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	review.CreatedAt, review.UpdatedAt = now, now
	if review.Issues == nil {
		review.Issues = []string{}
	}
	if review.Photos == nil {
		review.Photos = []models.Photo{}
	}
	if review.HelpfulBy == nil {
		review.HelpfulBy = []primitive.ObjectID{}
	}
	r.seq++
	r.order[review.ID] = r.seq
	r.reviews[review.ID] = cloneReview(*review)
	return nil
}

func (r *Reviews) GetByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneReview(review)
	return &out, nil
}

func (r *Reviews) FindByUserAndStation(_ context.Context, user primitive.ObjectID, stationID string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.StaleLookups {
		return nil, repository.ErrNotFound
	}
	for _, review := range r.reviews {
		if review.User == user && review.Station.ID == stationID {
			out := cloneReview(review)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Reviews) ListByStation(_ context.Context, stationID string, s models.ReviewSort, page models.Page) ([]models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := []models.Review{}
	for _, review := range r.reviews {
		if review.Station.ID == stationID {
			all = append(all, cloneReview(review))
		}
	}
	newer := func(i, j int) bool { return r.order[all[i].ID] > r.order[all[j].ID] }
	sort.Slice(all, func(i, j int) bool {
		switch s {
		case models.SortHighest:
			if all[i].Rating != all[j].Rating {
				return all[i].Rating > all[j].Rating
			}
		case models.SortLowest:
			if all[i].Rating != all[j].Rating {
				return all[i].Rating < all[j].Rating
			}
		}
		return newer(i, j)
	})

	total := int64(len(all))
	start := int(page.Skip())
	if start >= len(all) {
		return []models.Review{}, total, nil
	}
	end := start + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *Reviews) ListByUser(_ context.Context, user primitive.ObjectID) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Review{}
	for _, review := range r.reviews {
		if review.User == user {
			out = append(out, cloneReview(review))
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] > r.order[out[j].ID] })
	return out, nil
}

func (r *Reviews) RatingCounts(_ context.Context, stationID string) (map[int]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := map[int]int64{}
	for _, review := range r.reviews {
		if review.Station.ID == stationID {
			out[review.Rating]++
		}
	}
	return out, nil
}

func (r *Reviews) mutate(id primitive.ObjectID, fn func(*models.Review) error) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	review = cloneReview(review)
	if err := fn(&review); err != nil {
		return nil, err
	}
	review.UpdatedAt = time.Now().UTC()
	r.reviews[id] = review
	out := cloneReview(review)
	return &out, nil
}

func (r *Reviews) Update(_ context.Context, id primitive.ObjectID, changes models.ReviewChanges) (*models.Review, error) {
	return r.mutate(id, func(review *models.Review) error {
		if changes.Rating != nil {
			review.Rating = *changes.Rating
		}
		if changes.ReviewText != nil {
			review.ReviewText = *changes.ReviewText
		}
		if changes.Issues != nil {
			review.Issues = append([]string{}, (*changes.Issues)...)
		}
		return nil
	})
}

func (r *Reviews) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.reviews, id)
	delete(r.order, id)
	return nil
}

func (r *Reviews) AddHelpful(_ context.Context, id, user primitive.ObjectID) (*models.Review, error) {
	return r.mutate(id, func(review *models.Review) error {
		for _, voter := range review.HelpfulBy {
			if voter == user {
				return repository.ErrDuplicate
			}
		}
		review.HelpfulBy = append(review.HelpfulBy, user)
		review.HelpfulCount++
		return nil
	})
}

func (r *Reviews) AddPhoto(_ context.Context, id primitive.ObjectID, photo models.Photo) (*models.Review, error) {
	return r.mutate(id, func(review *models.Review) error {
		review.Photos = append(review.Photos, photo)
		return nil
	})
}

func cloneReview(r models.Review) models.Review {
	r.Issues = append([]string{}, r.Issues...)
	r.Photos = append([]models.Photo{}, r.Photos...)
	r.HelpfulBy = append([]primitive.ObjectID{}, r.HelpfulBy...)
	return r
}
