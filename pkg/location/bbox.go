package location

import "math"

// coarseSlack widens coarse search areas so they never cut inside the exact radius.
const coarseSlack = 1.01

// Box is a latitude/longitude rectangle in degrees.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// BoundingBox returns a rectangle that contains every point within radiusMeters
// of center. When the circle reaches a pole or crosses the antimeridian the
// longitude range opens to the full [-180, 180].
func BoundingBox(center Point, radiusMeters float64) Box {
	angular := radiusMeters * coarseSlack / EarthRadiusMeters
	dLat := angular * 180 / math.Pi

	b := Box{
		MinLat: math.Max(center.Lat-dLat, -90),
		MaxLat: math.Min(center.Lat+dLat, 90),
		MinLon: -180,
		MaxLon: 180,
	}
	if b.MinLat == -90 || b.MaxLat == 90 {
		return b
	}
	// Widest longitude offset of the circle: asin(sin(angular) / cos(lat)).
	cosLat := math.Cos(center.Lat * math.Pi / 180)
	sinAng := math.Sin(angular)
	if angular >= math.Pi/2 || sinAng >= cosLat {
		return b
	}
	dLon := math.Asin(sinAng/cosLat) * 180 / math.Pi
	if center.Lon-dLon < -180 || center.Lon+dLon > 180 {
		return b
	}
	b.MinLon = center.Lon - dLon
	b.MaxLon = center.Lon + dLon
	return b
}

// Contains reports whether p lies inside the box, edges included.
func (b Box) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// AngularRadius converts a ground distance to radians on a sphere of the
// given radius, widened by the coarse slack. Pass EarthRadiusMeters so the
// angle matches the Haversine distances used for ranking.
func AngularRadius(radiusMeters, sphereRadiusMeters float64) float64 {
	return radiusMeters * coarseSlack / sphereRadiusMeters
}
