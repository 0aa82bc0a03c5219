package recommend

import (
	"math"
	"sort"
	"strings"

	"chargesphere/models"
)

const (
	// MaxRecommendations caps the ranked list.
	MaxRecommendations = 5

	averagePricePerKWh = 0.35
)

// Score computes the recommendation score of one station and the reasons behind it.
// visits is how many times the user has booked this station before.
func Score(st models.Station, visits int) (int, []string) {
	distanceScore := math.Max(0, 40-st.Distance*2)
	score := distanceScore

	switch strings.ToLower(st.Availability) {
	case "available":
		score += 25
	case "limited":
		score += 10
	}

	score += st.Rating / 5 * 20

	if st.PricePerKWh != nil {
		score += math.Max(0, 15-(*st.PricePerKWh-averagePricePerKWh)*50)
	}
	if visits > 0 {
		score += math.Min(20, float64(visits*5))
	}
	if len(st.Amenities) > 0 {
		score += 10
	}
	if st.PowerKW > 50 {
		score += 10
	}

	return int(math.Floor(score + 0.5)), reasons(st, distanceScore, visits)
}

func reasons(st models.Station, distanceScore float64, visits int) []string {
	out := []string{}
	switch {
	case distanceScore >= 30:
		out = append(out, "Very close to you")
	case distanceScore >= 20:
		out = append(out, "Nearby location")
	}
	if strings.EqualFold(st.Availability, "available") {
		out = append(out, "Currently available")
	}
	if st.Rating >= 4.5 {
		out = append(out, "Highly rated")
	}
	if st.PricePerKWh != nil && *st.PricePerKWh < 0.30 {
		out = append(out, "Great price")
	}
	if visits > 0 {
		out = append(out, "You've visited before")
	}
	switch {
	case st.PowerKW > 100:
		out = append(out, "Ultra-fast charging")
	case st.PowerKW > 50:
		out = append(out, "Fast charging")
	}
	return out
}

// Recommend ranks charging stations by score, highest first, keeping input order on ties.
// history maps station id to the user's visit count.
func Recommend(stations []models.Station, history map[string]int) []models.Recommendation {
	ranked := make([]models.Recommendation, 0, len(stations))
	for _, st := range stations {
		if st.Type != models.StationCharging {
			continue
		}
		score, why := Score(st, history[st.ID])
		ranked = append(ranked, models.Recommendation{Station: st, Score: score, Reasons: why})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > MaxRecommendations {
		ranked = ranked[:MaxRecommendations]
	}
	return ranked
}
