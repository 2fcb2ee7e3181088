package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"utsavdarshan/pkg/location"

	"github.com/patrickmn/go-cache"
)

// ErrNotFound is returned when the address resolves to nothing.
var ErrNotFound = errors.New("address not found")

// Result is a resolved address.
type Result struct {
	Point            location.Point `json:"point"`
	FormattedAddress string         `json:"formatted_address"`
}

type Config struct {
	APIKey   string
	BaseURL  string
	Region   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client talks to the Google Geocoding API and caches answers in memory.
type Client struct {
	cfg   Config
	http  *http.Client
	cache *cache.Cache
}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://maps.googleapis.com/maps/api/geocode/json"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		cfg:   cfg,
		http:  httpClient,
		cache: cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

type apiResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func cacheKey(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// Geocode resolves address to its first match. Misses are cached too.
func (c *Client) Geocode(ctx context.Context, address string) (Result, error) {
	key := cacheKey(address)
	if key == "" {
		return Result{}, ErrNotFound
	}
	if v, ok := c.cache.Get(key); ok {
		if r, ok := v.(Result); ok {
			return r, nil
		}
		return Result{}, ErrNotFound
	}

	q := url.Values{}
	q.Set("address", address)
	if c.cfg.APIKey != "" {
		q.Set("key", c.cfg.APIKey)
	}
	if c.cfg.Region != "" {
		q.Set("region", c.cfg.Region)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Result{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}
	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("geocode: decode response: %w", err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		c.cache.SetDefault(key, false)
		return Result{}, ErrNotFound
	default:
		return Result{}, fmt.Errorf("geocode: status %s: %s", body.Status, body.ErrorMessage)
	}
	if len(body.Results) == 0 {
		c.cache.SetDefault(key, false)
		return Result{}, ErrNotFound
	}
	first := body.Results[0]
	p, err := location.NewPoint(first.Geometry.Location.Lat, first.Geometry.Location.Lng)
	if err != nil {
		return Result{}, fmt.Errorf("geocode: %w", err)
	}
	r := Result{Point: p, FormattedAddress: first.FormattedAddress}
	c.cache.SetDefault(key, r)
	return r, nil
}
