package stations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"chargesphere/models"
	"chargesphere/utils"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	DefaultOpenChargeMapURL = "https://api.openchargemap.io/v3/poi"
	DefaultAttemptTimeout   = 10 * time.Second
	DefaultCacheTTL         = 15 * time.Minute

	maxResponseBytes = 8 << 20
)

// OpenChargeMapOptions configures the live directory client.
type OpenChargeMapOptions struct {
	BaseURL string
	APIKey  string
	// Relays are URL prefixes tried in order; the escaped API URL is appended to each.
	// An empty prefix calls the API directly.
	Relays     []string
	Timeout    time.Duration
	HTTPClient *http.Client
	Cache      Cache
	CacheTTL   time.Duration
}

// OpenChargeMapClient fetches stations from Open Charge Map through an ordered relay chain.
type OpenChargeMapClient struct {
	opts    OpenChargeMapOptions
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewOpenChargeMapClient(opts OpenChargeMapOptions) *OpenChargeMapClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultOpenChargeMapURL
	}
	if len(opts.Relays) == 0 {
		opts.Relays = []string{""}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultAttemptTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}

	settings := gobreaker.Settings{
		Name:        "open-charge-map",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			utils.GetLogger().Warn("Circuit breaker state changed",
				zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	}
	return &OpenChargeMapClient{opts: opts, breaker: gobreaker.NewCircuitBreaker[[]byte](settings)}
}

// Nearby serves from cache when possible; otherwise walks the relays behind the breaker.
func (c *OpenChargeMapClient) Nearby(ctx context.Context, q models.StationQuery) ([]models.Station, error) {
	q = normalizeQuery(q)
	key := cacheKey(q)

	if c.opts.Cache != nil {
		data, ok, err := c.opts.Cache.Get(ctx, key)
		if err != nil {
			utils.GetLogger().Warn("Station cache read failed", zap.Error(err))
		} else if ok {
			if list, err := decodePOIs(data); err == nil {
				return list, nil
			}
		}
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, c.requestURL(q))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stations: %w", err)
	}
	list, err := decodePOIs(body)
	if err != nil {
		return nil, err
	}

	if c.opts.Cache != nil {
		if err := c.opts.Cache.Set(ctx, key, body, c.opts.CacheTTL); err != nil {
			utils.GetLogger().Warn("Station cache write failed", zap.Error(err))
		}
	}
	return list, nil
}

func (c *OpenChargeMapClient) requestURL(q models.StationQuery) string {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(q.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(q.Lng, 'f', -1, 64))
	params.Set("distance", strconv.FormatFloat(q.RadiusKm, 'f', -1, 64))
	params.Set("distanceunit", "KM")
	params.Set("maxresults", strconv.Itoa(q.MaxResults))
	params.Set("compact", "true")
	params.Set("verbose", "false")
	params.Set("output", "json")
	if c.opts.APIKey != "" {
		params.Set("key", c.opts.APIKey)
	}
	return c.opts.BaseURL + "?" + params.Encode()
}

// fetch fails only after every relay has failed.
func (c *OpenChargeMapClient) fetch(ctx context.Context, apiURL string) ([]byte, error) {
	errs := make([]error, 0, len(c.opts.Relays))
	for i, relay := range c.opts.Relays {
		target := apiURL
		if relay != "" {
			target = relay + url.QueryEscape(apiURL)
		}
		body, err := c.attempt(ctx, target)
		if err == nil {
			return body, nil
		}
		utils.GetLogger().Warn("Station relay failed",
			zap.Int("attempt", i+1), zap.Int("of", len(c.opts.Relays)), zap.Error(err))
		errs = append(errs, fmt.Errorf("relay %d: %w", i+1, err))
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("all %d relays failed: %w", len(c.opts.Relays), errors.Join(errs...))
}

func (c *OpenChargeMapClient) attempt(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	var probe []json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("response is not a JSON array: %w", err)
	}
	return body, nil
}

func cacheKey(q models.StationQuery) string {
	return fmt.Sprintf("%.3f:%.3f:%g:%d", q.Lat, q.Lng, q.RadiusKm, q.MaxResults)
}
