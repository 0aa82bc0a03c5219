package stations

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"chargesphere/models"
)

type ocmTitled struct {
	Title string `json:"Title"`
}

type ocmConnection struct {
	ConnectionType *ocmTitled `json:"ConnectionType"`
	Level          *ocmTitled `json:"Level"`
	PowerKW        *float64   `json:"PowerKW"`
	Quantity       *int       `json:"Quantity"`
}

type ocmAddress struct {
	Title           string  `json:"Title"`
	AddressLine1    string  `json:"AddressLine1"`
	Town            string  `json:"Town"`
	StateOrProvince string  `json:"StateOrProvince"`
	Postcode        string  `json:"Postcode"`
	Latitude        float64 `json:"Latitude"`
	Longitude       float64 `json:"Longitude"`
	AccessComments  string  `json:"AccessComments"`
}

type ocmStatus struct {
	Title         string `json:"Title"`
	IsOperational *bool  `json:"IsOperational"`
}

type ocmPOI struct {
	ID              int             `json:"ID"`
	UsageCost       string          `json:"UsageCost"`
	GeneralComments string          `json:"GeneralComments"`
	AddressInfo     *ocmAddress     `json:"AddressInfo"`
	Connections     []ocmConnection `json:"Connections"`
	OperatorInfo    *ocmTitled      `json:"OperatorInfo"`
	UsageType       *ocmTitled      `json:"UsageType"`
	StatusType      *ocmStatus      `json:"StatusType"`
}

var pricePerKWhPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:/|per)\s*kwh`)

func decodePOIs(data []byte) ([]models.Station, error) {
	var pois []ocmPOI
	if err := json.Unmarshal(data, &pois); err != nil {
		return nil, fmt.Errorf("failed to decode stations: %w", err)
	}
	out := make([]models.Station, 0, len(pois))
	for i, p := range pois {
		out = append(out, p.toStation(i))
	}
	return out, nil
}

// toStation maps a directory record. The directory has no live occupancy or ratings,
// so availability derives from the operational status and rating stays zero.
func (p ocmPOI) toStation(index int) models.Station {
	addr := p.AddressInfo
	if addr == nil {
		addr = &ocmAddress{}
	}

	st := models.Station{
		ID:             "station-" + strconv.Itoa(index),
		Name:           addr.Title,
		Type:           models.StationCharging,
		Location:       models.GeoPoint{Lat: addr.Latitude, Lng: addr.Longitude},
		Address:        formatAddress(addr),
		ChargerTypes:   chargerTypes(p.Connections),
		ConnectorTypes: connectorTypes(p.Connections),
		Pricing:        p.UsageCost,
		Amenities:      amenities(p),
		Operator:       "Independent",
	}
	if p.ID != 0 {
		st.ID = strconv.Itoa(p.ID)
	}
	if st.Name == "" {
		st.Name = "Charging Station " + strconv.Itoa(index+1)
	}
	if st.Pricing == "" {
		st.Pricing = "Pricing varies"
	}
	if m := pricePerKWhPattern.FindStringSubmatch(p.UsageCost); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			st.PricePerKWh = &v
		}
	}
	if p.OperatorInfo != nil && p.OperatorInfo.Title != "" {
		st.Operator = p.OperatorInfo.Title
	}
	if len(p.Connections) > 0 && p.Connections[0].PowerKW != nil {
		st.PowerKW = *p.Connections[0].PowerKW
	}
	for _, a := range st.Amenities {
		if a == "24/7 Access" {
			st.Hours = "24/7"
		}
	}

	for _, c := range p.Connections {
		if c.Quantity != nil && *c.Quantity > 0 {
			st.TotalSlots += *c.Quantity
		} else {
			st.TotalSlots++
		}
	}
	if st.TotalSlots == 0 {
		st.TotalSlots = 1
	}

	switch {
	case p.StatusType != nil && p.StatusType.IsOperational != nil && !*p.StatusType.IsOperational:
		st.Availability = "full"
		st.AvailableSlots = 0
	case p.StatusType == nil && len(p.Connections) == 0:
		st.Availability = "unknown"
	default:
		st.AvailableSlots = max(1, st.TotalSlots*55/100)
		st.Availability = "available"
	}
	return st
}

func formatAddress(a *ocmAddress) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.AddressLine1, a.Town, a.StateOrProvince, a.Postcode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "Address not available"
	}
	return strings.Join(parts, ", ")
}

func chargerTypes(conns []ocmConnection) []string {
	out := make([]string, 0, 3)
	for _, c := range conns {
		if len(out) == 3 {
			break
		}
		level := ""
		if c.Level != nil {
			level = c.Level.Title
		}
		power := ""
		if c.PowerKW != nil && *c.PowerKW > 0 {
			power = strconv.FormatFloat(*c.PowerKW, 'f', -1, 64) + "kW"
		}
		switch {
		case level != "" && power != "":
			out = append(out, level+" ("+power+")")
		case level != "":
			out = append(out, level)
		case power != "":
			out = append(out, power)
		default:
			out = append(out, "Standard")
		}
	}
	if len(out) == 0 {
		return []string{"Standard Charger"}
	}
	return out
}

func connectorTypes(conns []ocmConnection) []string {
	seen := map[string]bool{}
	out := make([]string, 0, 3)
	for _, c := range conns {
		if c.ConnectionType == nil || c.ConnectionType.Title == "" || seen[c.ConnectionType.Title] {
			continue
		}
		seen[c.ConnectionType.Title] = true
		out = append(out, c.ConnectionType.Title)
		if len(out) == 3 {
			break
		}
	}
	if len(out) == 0 {
		return []string{"Type 2"}
	}
	return out
}

func amenities(p ocmPOI) []string {
	out := []string{}
	comments := strings.ToLower(p.GeneralComments)
	if strings.Contains(comments, "wifi") {
		out = append(out, "WiFi")
	}
	if strings.Contains(comments, "restroom") {
		out = append(out, "Restroom")
	}
	if p.UsageType != nil && p.UsageType.Title == "24/7" {
		out = append(out, "24/7 Access")
	}
	if p.AddressInfo != nil && strings.Contains(strings.ToLower(p.AddressInfo.AccessComments), "covered") {
		out = append(out, "Covered Parking")
	}
	return out
}
