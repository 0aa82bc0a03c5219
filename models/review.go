package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StationRef is the denormalized station a review is about.
type StationRef struct {
	ID   string `bson:"id" json:"id" validate:"required,max=100"`
	Name string `bson:"name" json:"name" validate:"required,max=200"`
}

type Photo struct {
	URL        string    `bson:"url" json:"url"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// Review is a user's rating of a station. One per (user, station).
type Review struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	User         primitive.ObjectID   `bson:"user" json:"user"`
	Station      StationRef           `bson:"station" json:"station"`
	Rating       int                  `bson:"rating" json:"rating"`
	ReviewText   string               `bson:"reviewText,omitempty" json:"reviewText,omitempty"`
	Issues       []string             `bson:"issues" json:"issues"`
	Photos       []Photo              `bson:"photos" json:"photos"`
	HelpfulCount int                  `bson:"helpfulCount" json:"helpfulCount"`
	HelpfulBy    []primitive.ObjectID `bson:"helpfulBy" json:"helpfulBy"`
	IsVerified   bool                 `bson:"isVerified" json:"isVerified"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ReviewWithAuthor carries the author's display name.
type ReviewWithAuthor struct {
	Review `bson:",inline"`
	Author *UserSummary `json:"author,omitempty"`
}

type ReviewSort string

const (
	SortRecent  ReviewSort = "recent"
	SortHighest ReviewSort = "highest"
	SortLowest  ReviewSort = "lowest"
)

// ParseReviewSort falls back to recent for unknown values.
func ParseReviewSort(raw string) ReviewSort {
	switch ReviewSort(raw) {
	case SortHighest:
		return SortHighest
	case SortLowest:
		return SortLowest
	default:
		return SortRecent
	}
}

// ReviewChanges is a partial update; nil fields are left untouched.
type ReviewChanges struct {
	Rating     *int
	ReviewText *string
	Issues     *[]string
}

// RatingStats aggregates every review of a station.
type RatingStats struct {
	AverageRating float64       `json:"averageRating"`
	TotalReviews  int64         `json:"totalReviews"`
	Distribution  map[int]int64 `json:"distribution"`
}

type StationReviewPage struct {
	Reviews []ReviewWithAuthor `json:"reviews"`
	Stats   RatingStats        `json:"stats"`
	PageMeta
}

type PhotoInput struct {
	URL string `json:"url" validate:"required,url"`
}

type CreateReviewRequest struct {
	Station    StationRef   `json:"station"`
	Rating     int          `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string       `json:"reviewText" validate:"max=500"`
	Issues     []string     `json:"issues" validate:"omitempty,max=6,dive,review_issue"`
	Photos     []PhotoInput `json:"photos" validate:"omitempty,max=10,dive"`
}

func (r *CreateReviewRequest) Normalize() {
	r.Station.ID = strings.TrimSpace(r.Station.ID)
	r.Station.Name = strings.TrimSpace(r.Station.Name)
	r.ReviewText = strings.TrimSpace(r.ReviewText)
}

type UpdateReviewRequest struct {
	Rating     *int      `json:"rating" validate:"omitnil,min=1,max=5"`
	ReviewText *string   `json:"reviewText" validate:"omitnil,max=500"`
	Issues     *[]string `json:"issues" validate:"omitnil,max=6,dive,review_issue"`
}
