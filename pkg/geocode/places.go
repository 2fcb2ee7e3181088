package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"utsavdarshan/pkg/location"
)

// DefaultPlaceTypes are the amenities looked up around a pandal.
var DefaultPlaceTypes = []string{"hospital", "police", "pharmacy", "restaurant"}

// placesPerType caps how many results are kept for each type.
const placesPerType = 3

// Place is a point of interest near a location.
type Place struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Rating   *float64       `json:"rating,omitempty"`
	Point    location.Point `json:"point"`
	Vicinity string         `json:"vicinity,omitempty"`
	OpenNow  *bool          `json:"open_now,omitempty"`
}

type placesResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		PlaceID  string   `json:"place_id"`
		Name     string   `json:"name"`
		Rating   *float64 `json:"rating"`
		Vicinity string   `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		OpeningHours *struct {
			OpenNow *bool `json:"open_now"`
		} `json:"opening_hours"`
	} `json:"results"`
}

// placesURL derives the Places nearby-search endpoint from the geocoder base URL.
func (c *Client) placesURL() string {
	return strings.Replace(c.cfg.BaseURL, "/geocode/json", "/place/nearbysearch/json", 1)
}

// NearbyPlaces returns up to three places per type within radiusMeters of
// center. A type whose lookup fails is skipped; the first such error is
// returned only when nothing was found at all.
func (c *Client) NearbyPlaces(ctx context.Context, center location.Point, radiusMeters int, types []string) ([]Place, error) {
	if len(types) == 0 {
		types = DefaultPlaceTypes
	}
	out := []Place{}
	var firstErr error
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		places, err := c.placesOfType(ctx, center, radiusMeters, t)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out = append(out, places...)
	}
	if len(out) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (c *Client) placesOfType(ctx context.Context, center location.Point, radiusMeters int, placeType string) ([]Place, error) {
	key := fmt.Sprintf("places|%.4f,%.4f|%d|%s", center.Lat, center.Lon, radiusMeters, placeType)
	if v, ok := c.cache.Get(key); ok {
		if places, ok := v.([]Place); ok {
			return places, nil
		}
	}

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lon))
	q.Set("radius", strconv.Itoa(radiusMeters))
	q.Set("type", placeType)
	if c.cfg.APIKey != "" {
		q.Set("key", c.cfg.APIKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.placesURL()+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places: unexpected status %d", resp.StatusCode)
	}
	var body placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("places: decode response: %w", err)
	}
	if body.Status != "OK" && body.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places: status %s: %s", body.Status, body.ErrorMessage)
	}

	places := make([]Place, 0, placesPerType)
	for _, r := range body.Results {
		if len(places) == placesPerType {
			break
		}
		p := Place{
			ID:       r.PlaceID,
			Name:     r.Name,
			Type:     placeType,
			Rating:   r.Rating,
			Point:    location.Point{Lat: r.Geometry.Location.Lat, Lon: r.Geometry.Location.Lng},
			Vicinity: r.Vicinity,
		}
		if r.OpeningHours != nil {
			p.OpenNow = r.OpeningHours.OpenNow
		}
		places = append(places, p)
	}
	c.cache.SetDefault(key, places)
	return places, nil
}
