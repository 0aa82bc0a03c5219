package recommend

import (
	"math"

	"chargesphere/models"
	"chargesphere/utils"
)

const (
	energyPerKm   = 0.2 // kWh
	reserveFactor = 0.2
)

// TimeBasedFilter narrows stations by time of day: only 24/7 stations at night,
// only stations with amenities over lunch.
func TimeBasedFilter(hour int, stations []models.Station) []models.Station {
	var keep func(models.Station) bool
	switch {
	case hour >= 20 || hour < 6:
		keep = func(st models.Station) bool { return st.Hours == "24/7" }
	case hour >= 12 && hour < 14:
		keep = func(st models.Station) bool { return len(st.Amenities) > 0 }
	default:
		return stations
	}

	out := make([]models.Station, 0, len(stations))
	for _, st := range stations {
		if keep(st) {
			out = append(out, st)
		}
	}
	return out
}

// OptimalChargingTime estimates how long to charge before a trip,
// keeping a reserve of a fifth of the battery on arrival.
func OptimalChargingTime(req models.ChargingPlanRequest) (*models.ChargingPlan, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}

	needed := req.DestinationDistance * energyPerKm
	current := req.CurrentBattery / 100 * req.BatteryCapacity
	toCharge := math.Max(0, needed-current+req.BatteryCapacity*reserveFactor)
	minutes := int(math.Ceil(toCharge / req.ChargingPower * 60))

	return &models.ChargingPlan{
		EnergyNeeded:        needed,
		EnergyToCharge:      toCharge,
		ChargingTime:        minutes,
		RecommendedDuration: minutes,
		FinalBatteryPercent: math.Min(100, req.CurrentBattery+toCharge/req.BatteryCapacity*100),
	}, nil
}
