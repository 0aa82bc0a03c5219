package recommend

import (
	"fmt"
	"testing"

	"chargesphere/models"
	"chargesphere/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestDistance(t *testing.T) {
	assert.Equal(t, 0.0, Distance(-1.2864, 36.8172, -1.2864, 36.8172))
	assert.Equal(t, 111.2, Distance(0, 0, 0, 1))
	assert.Equal(t, 111.2, Distance(0, 0, 1, 0))
	assert.Equal(t, Distance(-1.28, 36.81, -1.31, 36.92), Distance(-1.31, 36.92, -1.28, 36.81))
}

func TestAddDistancesAndSort(t *testing.T) {
	stations := []models.Station{
		{ID: "far", Location: models.GeoPoint{Lat: 0, Lng: 1}},
		{ID: "near", Location: models.GeoPoint{Lat: 0, Lng: 0.01}},
		{ID: "here", Location: models.GeoPoint{Lat: 0, Lng: 0}},
	}
	withDist := AddDistances(stations, models.GeoPoint{})
	assert.Zero(t, stations[0].Distance, "input is left untouched")
	assert.Equal(t, 111.2, withDist[0].Distance)

	sorted := SortByDistance(withDist)
	ids := []string{}
	for _, st := range sorted {
		ids = append(ids, st.ID)
	}
	assert.Equal(t, []string{"here", "near", "far"}, ids)

	assert.Len(t, WithinRadius(sorted, 25), 2)
}

func TestScoreEveryTerm(t *testing.T) {
	st := models.Station{
		Distance:     2,
		Availability: "Available",
		Rating:       4.5,
		PricePerKWh:  price(0.25),
		Amenities:    []string{"WiFi"},
		PowerKW:      150,
	}
	score, why := Score(st, 2)
	// 36 distance + 25 available + 18 rating + 20 price + 10 history + 10 amenities + 10 power
	assert.Equal(t, 129, score)
	assert.Equal(t, []string{
		"Very close to you",
		"Currently available",
		"Highly rated",
		"Great price",
		"You've visited before",
		"Ultra-fast charging",
	}, why)
}

func TestScoreBounds(t *testing.T) {
	score, why := Score(models.Station{Distance: 30, Availability: "Offline"}, 0)
	assert.Zero(t, score)
	assert.Empty(t, why)

	score, why = Score(models.Station{Distance: 8, Availability: "Limited", PowerKW: 60}, 10)
	// 24 + 10 + history capped at 20 + 10 power
	assert.Equal(t, 64, score)
	assert.Equal(t, []string{"Nearby location", "You've visited before", "Fast charging"}, why)

	busy, _ := Score(models.Station{Distance: 30, Availability: "busy"}, 0)
	assert.Zero(t, busy, "busy earns no availability points")

	score, _ = Score(models.Station{Distance: 30, PricePerKWh: price(0.80)}, 0)
	assert.Zero(t, score, "expensive price contributes nothing")
}

func TestRecommendRanksChargingOnly(t *testing.T) {
	stations := []models.Station{
		{ID: "fuel", Type: models.StationFuel, Distance: 0, Availability: "Available", Rating: 5},
	}
	for i := 0; i < 6; i++ {
		stations = append(stations, models.Station{
			ID:       fmt.Sprintf("ev-%d", i),
			Type:     models.StationCharging,
			Distance: 10,
		})
	}
	stations[3].Availability = "Available"
	stations[3].Rating = 5

	recs := Recommend(stations, map[string]int{"ev-4": 1})
	require.Len(t, recs, MaxRecommendations)
	assert.Equal(t, "ev-2", recs[0].ID)
	assert.Equal(t, 65, recs[0].Score)
	assert.Equal(t, "ev-4", recs[1].ID)
	assert.Equal(t, 25, recs[1].Score)

	// Equal scores keep input order.
	assert.Equal(t, []string{"ev-0", "ev-1", "ev-3"}, []string{recs[2].ID, recs[3].ID, recs[4].ID})
	for _, r := range recs {
		assert.Equal(t, models.StationCharging, r.Type)
	}
}

func TestTimeBasedFilter(t *testing.T) {
	stations := []models.Station{
		{ID: "allday", Hours: "24/7"},
		{ID: "cafe", Hours: "6am-10pm", Amenities: []string{"Restaurant"}},
		{ID: "plain", Hours: "8am-6pm"},
	}
	ids := func(in []models.Station) []string {
		out := []string{}
		for _, st := range in {
			out = append(out, st.ID)
		}
		return out
	}

	assert.Equal(t, []string{"allday"}, ids(TimeBasedFilter(22, stations)))
	assert.Equal(t, []string{"allday"}, ids(TimeBasedFilter(3, stations)))
	assert.Equal(t, []string{"cafe"}, ids(TimeBasedFilter(12, stations)))
	assert.Len(t, TimeBasedFilter(9, stations), 3)
	assert.Len(t, TimeBasedFilter(14, stations), 3)
}

func TestOptimalChargingTime(t *testing.T) {
	plan, err := OptimalChargingTime(models.ChargingPlanRequest{
		CurrentBattery:      20,
		DestinationDistance: 150,
		BatteryCapacity:     50,
		ChargingPower:       60,
	})
	require.NoError(t, err)
	assert.InDelta(t, 30, plan.EnergyNeeded, 1e-9)
	assert.InDelta(t, 30, plan.EnergyToCharge, 1e-9)
	assert.Equal(t, 30, plan.ChargingTime)
	assert.Equal(t, plan.ChargingTime, plan.RecommendedDuration)
	assert.InDelta(t, 80, plan.FinalBatteryPercent, 1e-9)

	plan, err = OptimalChargingTime(models.ChargingPlanRequest{
		CurrentBattery:      90,
		DestinationDistance: 400,
		BatteryCapacity:     50,
		ChargingPower:       50,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, plan.FinalBatteryPercent)

	plan, err = OptimalChargingTime(models.ChargingPlanRequest{
		CurrentBattery:      100,
		DestinationDistance: 10,
		BatteryCapacity:     50,
		ChargingPower:       50,
	})
	require.NoError(t, err)
	assert.Zero(t, plan.EnergyToCharge)
	assert.Zero(t, plan.ChargingTime)
}

func TestOptimalChargingTimeRejectsInvalidInput(t *testing.T) {
	_, err := OptimalChargingTime(models.ChargingPlanRequest{CurrentBattery: 50, DestinationDistance: 10, BatteryCapacity: 0, ChargingPower: 50})
	assert.Equal(t, 400, utils.HTTPStatus(err))

	_, err = OptimalChargingTime(models.ChargingPlanRequest{CurrentBattery: 50, DestinationDistance: 10, BatteryCapacity: 60, ChargingPower: -1})
	assert.Equal(t, 400, utils.HTTPStatus(err))

	_, err = OptimalChargingTime(models.ChargingPlanRequest{CurrentBattery: 120, DestinationDistance: 10, BatteryCapacity: 60, ChargingPower: 50})
	assert.Equal(t, 400, utils.HTTPStatus(err))
}
