package stations

import "chargesphere/models"

func kwh(v float64) *float64 { return &v }

// ChargingCatalog is served when the live directory is unavailable.
func ChargingCatalog() []models.Station {
	return []models.Station{
		{
			ID: "1", Name: "ChargeSphere Downtown Hub", Type: models.StationCharging,
			Location: models.GeoPoint{Lat: 40.7128, Lng: -74.0060}, Address: "123 Main St, New York, NY 10001",
			ChargerTypes: []string{"Fast DC", "Level 2 AC"}, ConnectorTypes: []string{"CCS", "CHAdeMO", "Type 2"},
			Availability: "available", TotalSlots: 8, AvailableSlots: 5,
			Pricing: "$0.35/kWh", PricePerKWh: kwh(0.35), Rating: 4.8, PowerKW: 150,
			Amenities: []string{"WiFi", "Restroom", "Cafe"},
		},
		{
			ID: "2", Name: "PowerCharge Station", Type: models.StationCharging,
			Location: models.GeoPoint{Lat: 40.7589, Lng: -73.9851}, Address: "456 Broadway, New York, NY 10013",
			ChargerTypes: []string{"Fast DC", "Ultra-Fast DC"}, ConnectorTypes: []string{"CCS", "Type 2"},
			Availability: "available", TotalSlots: 6, AvailableSlots: 2,
			Pricing: "$0.42/kWh", PricePerKWh: kwh(0.42), Rating: 4.6, PowerKW: 350,
			Amenities: []string{"WiFi", "Shopping"},
		},
		{
			ID: "3", Name: "GreenCharge Plaza", Type: models.StationCharging,
			Location: models.GeoPoint{Lat: 40.7580, Lng: -73.9855}, Address: "789 Times Square, New York, NY 10036",
			ChargerTypes: []string{"Level 2 AC"}, ConnectorTypes: []string{"Type 2", "Type 1"},
			Availability: "busy", TotalSlots: 4, AvailableSlots: 1,
			Pricing: "$0.28/kWh", PricePerKWh: kwh(0.28), Rating: 4.5, PowerKW: 22,
			Amenities: []string{"Covered Parking", "Security"},
		},
		{
			ID: "4", Name: "EcoCharge Center", Type: models.StationCharging,
			Location: models.GeoPoint{Lat: 40.7614, Lng: -73.9776}, Address: "321 Park Ave, New York, NY 10022",
			ChargerTypes: []string{"Fast DC", "Level 2 AC"}, ConnectorTypes: []string{"CCS", "CHAdeMO", "Type 2"},
			Availability: "available", TotalSlots: 10, AvailableSlots: 8,
			Pricing: "$0.38/kWh", PricePerKWh: kwh(0.38), Rating: 4.9, PowerKW: 150,
			Amenities: []string{"WiFi", "Restroom", "Cafe", "Shopping"},
		},
		{
			ID: "5", Name: "VoltHub Station", Type: models.StationCharging,
			Location: models.GeoPoint{Lat: 40.7489, Lng: -73.9680}, Address: "555 5th Ave, New York, NY 10017",
			ChargerTypes: []string{"Fast DC"}, ConnectorTypes: []string{"CCS"},
			Availability: "full", TotalSlots: 5, AvailableSlots: 0,
			Pricing: "$0.40/kWh", PricePerKWh: kwh(0.40), Rating: 4.4, PowerKW: 120,
			Amenities: []string{"WiFi", "Security"},
		},
		{
			ID: "6", Name: "ChargePoint Express", Type: models.StationCharging,
			Location: models.GeoPoint{Lat: 40.7411, Lng: -74.0047}, Address: "888 Hudson St, New York, NY 10014",
			ChargerTypes: []string{"Ultra-Fast DC", "Fast DC"}, ConnectorTypes: []string{"CCS", "Type 2"},
			Availability: "available", TotalSlots: 12, AvailableSlots: 9,
			Pricing: "$0.45/kWh", PricePerKWh: kwh(0.45), Rating: 4.7, PowerKW: 350,
			Amenities: []string{"WiFi", "Restroom", "Shopping", "Restaurant"},
		},
		{
			ID: "7", Name: "Tesla Supercharger", Type: models.StationCharging,
			Location: models.GeoPoint{Lat: 40.7580, Lng: -74.0020}, Address: "999 West Side Hwy, New York, NY 10001",
			ChargerTypes: []string{"Tesla Supercharger V3"}, ConnectorTypes: []string{"Tesla"},
			Availability: "available", TotalSlots: 16, AvailableSlots: 12,
			Pricing: "$0.48/kWh", PricePerKWh: kwh(0.48), Rating: 4.9, PowerKW: 250,
			Amenities: []string{"WiFi", "Lounge", "Restroom"},
		},
		{
			ID: "8", Name: "EV Station Plus", Type: models.StationCharging,
			Location: models.GeoPoint{Lat: 40.7305, Lng: -73.9925}, Address: "147 Canal St, New York, NY 10013",
			ChargerTypes: []string{"Level 2 AC", "Fast DC"}, ConnectorTypes: []string{"CCS", "Type 2", "Type 1"},
			Availability: "available", TotalSlots: 6, AvailableSlots: 4,
			Pricing: "$0.32/kWh", PricePerKWh: kwh(0.32), Rating: 4.3, PowerKW: 50,
			Amenities: []string{"Covered Parking"},
		},
	}
}

// FuelCatalog lists the fuel stations merged into every nearby search.
func FuelCatalog() []models.Station {
	return []models.Station{
		{
			ID: "101", Name: "Shell Gas Station", Type: models.StationFuel,
			Location: models.GeoPoint{Lat: 40.7282, Lng: -74.0776}, Address: "234 Liberty St, Jersey City, NJ 07302",
			FuelTypes: []string{"Unleaded", "Premium", "Diesel"}, Availability: "available",
			Pricing: "Unleaded $3.45/gal, Premium $3.89/gal, Diesel $3.95/gal", Rating: 4.2,
			Amenities: []string{"Convenience Store", "Car Wash", "ATM"}, Hours: "24/7",
		},
		{
			ID: "102", Name: "BP Energy Station", Type: models.StationFuel,
			Location: models.GeoPoint{Lat: 40.7450, Lng: -73.9880}, Address: "567 E 34th St, New York, NY 10016",
			FuelTypes: []string{"Unleaded", "Premium", "Diesel", "E85"}, Availability: "available",
			Pricing: "Unleaded $3.52/gal, Premium $3.95/gal, Diesel $4.05/gal, E85 $2.89/gal", Rating: 4.4,
			Amenities: []string{"Convenience Store", "Restroom", "Air Pump"}, Hours: "24/7",
		},
		{
			ID: "103", Name: "Mobil Gas & Go", Type: models.StationFuel,
			Location: models.GeoPoint{Lat: 40.7614, Lng: -73.9642}, Address: "890 Lexington Ave, New York, NY 10065",
			FuelTypes: []string{"Unleaded", "Premium", "Diesel"}, Availability: "available",
			Pricing: "Unleaded $3.48/gal, Premium $3.92/gal, Diesel $3.98/gal", Rating: 4.1,
			Amenities: []string{"Convenience Store", "Car Wash", "Vacuum"}, Hours: "6 AM - 11 PM",
		},
		{
			ID: "104", Name: "Chevron Service Center", Type: models.StationFuel,
			Location: models.GeoPoint{Lat: 40.7223, Lng: -73.9890}, Address: "123 Delancey St, New York, NY 10002",
			FuelTypes: []string{"Unleaded", "Premium", "Diesel"}, Availability: "available",
			Pricing: "Unleaded $3.50/gal, Premium $3.93/gal, Diesel $4.00/gal", Rating: 4.3,
			Amenities: []string{"Convenience Store", "ATM", "Air Pump", "Restroom"}, Hours: "24/7",
		},
		{
			ID: "105", Name: "Exxon Express", Type: models.StationFuel,
			Location: models.GeoPoint{Lat: 40.7690, Lng: -73.9810}, Address: "456 Amsterdam Ave, New York, NY 10024",
			FuelTypes: []string{"Unleaded", "Premium"}, Availability: "available",
			Pricing: "Unleaded $3.55/gal, Premium $3.99/gal", Rating: 4.0,
			Amenities: []string{"Convenience Store", "Car Wash"}, Hours: "24/7",
		},
		{
			ID: "106", Name: "Sunoco Fuel Stop", Type: models.StationFuel,
			Location: models.GeoPoint{Lat: 40.7350, Lng: -74.0028}, Address: "789 Washington St, New York, NY 10014",
			FuelTypes: []string{"Unleaded", "Premium", "Diesel"}, Availability: "available",
			Pricing: "Unleaded $3.46/gal, Premium $3.88/gal, Diesel $3.96/gal", Rating: 4.5,
			Amenities: []string{"Convenience Store", "Restroom", "ATM", "Air Pump"}, Hours: "24/7",
		},
	}
}
