package stations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"chargesphere/models"
	"chargesphere/utils"
)

const DefaultPhotonURL = "https://photon.komoot.io"

type photonResponse struct {
	Features []struct {
		Geometry struct {
			// [lng, lat]
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Name     string `json:"name"`
			City     string `json:"city"`
			State    string `json:"state"`
			Country  string `json:"country"`
			Postcode string `json:"postcode"`
		} `json:"properties"`
	} `json:"features"`
}

// PhotonGeocoder queries a Photon (Komoot) instance.
type PhotonGeocoder struct {
	baseURL string
	client  *http.Client
}

func NewPhotonGeocoder(baseURL string) *PhotonGeocoder {
	return NewPhotonGeocoderWithOptions(baseURL, &http.Client{Timeout: 10 * time.Second})
}

func NewPhotonGeocoderWithOptions(baseURL string, client *http.Client) *PhotonGeocoder {
	if baseURL == "" {
		baseURL = DefaultPhotonURL
	}
	return &PhotonGeocoder{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (g *PhotonGeocoder) Geocode(ctx context.Context, query string) (*models.GeoLocation, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.NewValidationError("q", "is required")
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")

	resp, err := g.get(ctx, "/api", params)
	if err != nil {
		return nil, err
	}
	if len(resp.Features) == 0 || len(resp.Features[0].Geometry.Coordinates) < 2 {
		return nil, utils.NewNotFoundError("Location")
	}

	loc := toLocation(resp)
	coords := resp.Features[0].Geometry.Coordinates
	loc.Lng, loc.Lat = coords[0], coords[1]
	return loc, nil
}

func (g *PhotonGeocoder) Reverse(ctx context.Context, lat, lng float64) (*models.GeoLocation, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	resp, err := g.get(ctx, "/reverse", params)
	if err != nil {
		return nil, err
	}
	if len(resp.Features) == 0 {
		return nil, utils.NewNotFoundError("Address")
	}
	return toLocation(resp), nil
}

func (g *PhotonGeocoder) get(ctx context.Context, path string, params url.Values) (*photonResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding failed: status %d", res.StatusCode)
	}

	var out photonResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	return &out, nil
}

func toLocation(resp *photonResponse) *models.GeoLocation {
	p := resp.Features[0].Properties
	region := firstNonEmpty(p.City, p.State, p.Country)

	display := region
	switch {
	case p.Name != "" && region != "":
		display = p.Name + ", " + region
	case p.Name != "":
		display = p.Name
	case region == "":
		display = "Unknown location"
	}
	return &models.GeoLocation{
		DisplayName: display,
		Address:     models.Address{City: p.City, State: p.State, Country: p.Country, Postcode: p.Postcode},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
