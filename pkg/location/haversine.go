package location

import (
	"errors"
	"math"
)

// EarthRadiusKm is the Earth radius in kilometers for Haversine.
const EarthRadiusKm = 6371.0

// EarthRadiusMeters is EarthRadiusKm in meters.
const EarthRadiusMeters = EarthRadiusKm * 1000

var (
	ErrLatitudeRange  = errors.New("latitude must be between -90 and 90")
	ErrLongitudeRange = errors.New("longitude must be between -180 and 180")
)

// Point is a WGS84 coordinate pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewPoint builds a Point after checking both coordinates.
func NewPoint(lat, lon float64) (Point, error) {
	p := Point{Lat: lat, Lon: lon}
	return p, p.Validate()
}

// Validate rejects out-of-range or non-finite coordinates. Values are never clamped.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return ErrLatitudeRange
	}
	if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) || p.Lon < -180 || p.Lon > 180 {
		return ErrLongitudeRange
	}
	return nil
}

// HaversineKm returns distance in km between two points (lat/lng in degrees).
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	φ1, φ2 := rad(lat1), rad(lat2)
	Δφ := rad(lat2 - lat1)
	Δλ := rad(lng2 - lng1)
	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DistanceMeters is the great-circle distance between p and q in meters.
func (p Point) DistanceMeters(q Point) float64 {
	return HaversineKm(p.Lat, p.Lon, q.Lat, q.Lon) * 1000
}
