// Package recommend ranks stations for a driver and plans charging stops.
package recommend

import (
	"math"
	"sort"

	"chargesphere/models"
)

const earthRadiusKm = 6371

// Distance returns the great-circle distance in kilometres, rounded to one decimal.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*10) / 10
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// AddDistances sets Distance on every station relative to origin. The input is not modified.
func AddDistances(stations []models.Station, origin models.GeoPoint) []models.Station {
	out := make([]models.Station, len(stations))
	for i, st := range stations {
		st.Distance = Distance(origin.Lat, origin.Lng, st.Location.Lat, st.Location.Lng)
		out[i] = st
	}
	return out
}

// SortByDistance returns a copy ordered nearest first.
func SortByDistance(stations []models.Station) []models.Station {
	out := append([]models.Station(nil), stations...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// WithinRadius keeps stations no further than radiusKm.
func WithinRadius(stations []models.Station, radiusKm float64) []models.Station {
	out := make([]models.Station, 0, len(stations))
	for _, st := range stations {
		if st.Distance <= radiusKm {
			out = append(out, st)
		}
	}
	return out
}
