// Package stations looks up charging and fuel stations and geocodes addresses.
package stations

import (
	"context"
	"time"

	"chargesphere/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultRadiusKm   = 25
	DefaultMaxResults = 50
)

// Directory returns stations around a point. Distances need not be set.
type Directory interface {
	Nearby(ctx context.Context, q models.StationQuery) ([]models.Station, error)
}

// Geocoder resolves free-text places and coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*models.GeoLocation, error)
	Reverse(ctx context.Context, lat, lng float64) (*models.GeoLocation, error)
}

// Cache stores raw directory responses. utils.RedisCache implements it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// VisitCounter reports how often a user has booked each station.
type VisitCounter interface {
	StationVisits(ctx context.Context, userID primitive.ObjectID) (map[string]int, error)
}

type StationService interface {
	Nearby(ctx context.Context, q models.StationQuery) (*models.NearbyResult, error)
	Recommendations(ctx context.Context, userID primitive.ObjectID, q models.StationQuery, timeAware bool) ([]models.Recommendation, error)
}

// DefaultStationService merges directory results with the fuel catalog and ranks them.
type DefaultStationService struct {
	Directory *FallbackDirectory
	Fuel      []models.Station
	Visits    VisitCounter
	Now       func() time.Time
}

func normalizeQuery(q models.StationQuery) models.StationQuery {
	if q.RadiusKm <= 0 {
		q.RadiusKm = DefaultRadiusKm
	}
	if q.MaxResults <= 0 {
		q.MaxResults = DefaultMaxResults
	}
	return q
}
