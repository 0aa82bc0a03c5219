package stations

import (
	"context"
	"time"

	"chargesphere/models"
	"chargesphere/services/recommend"
	"chargesphere/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func NewStationService(directory *FallbackDirectory, visits VisitCounter) *DefaultStationService {
	return &DefaultStationService{Directory: directory, Fuel: FuelCatalog(), Visits: visits, Now: time.Now}
}

// Nearby merges charging stations with the fuel catalog, nearest first, within the radius.
func (s *DefaultStationService) Nearby(ctx context.Context, q models.StationQuery) (*models.NearbyResult, error) {
	if err := utils.ValidateStruct(&q); err != nil {
		return nil, err
	}
	q = normalizeQuery(q)

	var (
		charging []models.Station
		fallback bool
	)
	if q.Type != models.StationFuel {
		charging, fallback = s.Directory.Lookup(ctx, q)
	}

	combined := charging
	if q.Type != models.StationCharging {
		combined = append(combined, s.Fuel...)
	}
	list := recommend.WithinRadius(recommend.AddDistances(combined, models.GeoPoint{Lat: q.Lat, Lng: q.Lng}), q.RadiusKm)
	list = recommend.SortByDistance(list)
	if q.Hour != nil {
		list = recommend.TimeBasedFilter(*q.Hour, list)
	}

	return &models.NearbyResult{Stations: list, Count: len(list), Fallback: fallback}, nil
}

// Recommendations ranks nearby charging stations for the user, optionally narrowed by time of day.
func (s *DefaultStationService) Recommendations(ctx context.Context, userID primitive.ObjectID, q models.StationQuery, timeAware bool) ([]models.Recommendation, error) {
	q.Type = models.StationCharging
	if timeAware && q.Hour == nil {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		h := now().Hour()
		q.Hour = &h
	}
	nearby, err := s.Nearby(ctx, q)
	if err != nil {
		return nil, err
	}
	candidates := nearby.Stations

	history := map[string]int{}
	if s.Visits != nil && !userID.IsZero() {
		visits, err := s.Visits.StationVisits(ctx, userID)
		if err != nil {
			// Ranking still works without history.
			utils.GetLogger().Warn("Failed to load station visits", zap.String("userID", userID.Hex()), zap.Error(err))
		} else {
			history = visits
		}
	}
	return recommend.Recommend(candidates, history), nil
}
