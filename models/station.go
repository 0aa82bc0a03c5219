package models

type StationType string

const (
	StationCharging StationType = "charging"
	StationFuel     StationType = "fuel"
)

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Station is a directory entry. It is never persisted.
type Station struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Type           StationType `json:"type"`
	Location       GeoPoint    `json:"location"`
	Address        string      `json:"address"`
	ChargerTypes   []string    `json:"chargerTypes,omitempty"`
	ConnectorTypes []string    `json:"connectorTypes,omitempty"`
	FuelTypes      []string    `json:"fuelTypes,omitempty"`
	Availability   string      `json:"availability"`
	TotalSlots     int         `json:"totalSlots,omitempty"`
	AvailableSlots int         `json:"availableSlots,omitempty"`
	Pricing        string      `json:"pricing,omitempty"`
	PricePerKWh    *float64    `json:"pricePerKwh,omitempty"`
	Rating         float64     `json:"rating"`
	Amenities      []string    `json:"amenities"`
	PowerKW        float64     `json:"powerKw,omitempty"`
	Operator       string      `json:"operator,omitempty"`
	Hours          string      `json:"hours,omitempty"`
	Distance       float64     `json:"distance"`
}

// Recommendation is a scored station.
type Recommendation struct {
	Station
	Score   int      `json:"recommendationScore"`
	Reasons []string `json:"reasons"`
}

type Address struct {
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

// GeoLocation is a geocoding result. Lat and Lng are zero for reverse lookups.
type GeoLocation struct {
	Lat         float64 `json:"lat,omitempty"`
	Lng         float64 `json:"lng,omitempty"`
	DisplayName string  `json:"displayName"`
	Address     Address `json:"address"`
}

type ChargingPlanRequest struct {
	CurrentBattery      float64 `json:"currentBattery" validate:"gte=0,lte=100"`
	DestinationDistance float64 `json:"destinationDistance" validate:"gte=0"`
	BatteryCapacity     float64 `json:"batteryCapacity" validate:"gt=0"`
	ChargingPower       float64 `json:"chargingPower" validate:"gt=0"`
}

// ChargingPlan is the outcome of an optimal charging time calculation.
type ChargingPlan struct {
	EnergyNeeded        float64 `json:"energyNeeded"`
	EnergyToCharge      float64 `json:"energyToCharge"`
	ChargingTime        int     `json:"chargingTime"`
	RecommendedDuration int     `json:"recommendedDuration"`
	FinalBatteryPercent float64 `json:"finalBatteryPercent"`
}

// StationQuery is a nearby-station search.
type StationQuery struct {
	Lat        float64     `form:"lat" validate:"latitude"`
	Lng        float64     `form:"lng" validate:"longitude"`
	RadiusKm   float64     `form:"radius" validate:"gte=0,lte=500"`
	MaxResults int         `form:"limit" validate:"gte=0,lte=200"`
	Type       StationType `form:"type" validate:"omitempty,oneof=charging fuel"`
	// Hour narrows results to stations suited to that time of day.
	Hour *int `form:"hour" validate:"omitnil,gte=0,lte=23"`
}

// NearbyResult is a distance-sorted station list. Fallback is set when the live directory was unavailable.
type NearbyResult struct {
	Stations []Station `json:"stations"`
	Count    int       `json:"count"`
	Fallback bool      `json:"fallback"`
}
