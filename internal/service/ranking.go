package service

import (
	"context"
	"math"
	"sort"

	"utsavdarshan/internal/models"
	"utsavdarshan/pkg/location"
	"utsavdarshan/pkg/proximity"
)

// NearbyQuery is a proximity search. RadiusMeters 0 means the configured default.
type NearbyQuery struct {
	Lat          float64 `json:"lat" validate:"latitude"`
	Lon          float64 `json:"lon" validate:"longitude"`
	RadiusMeters float64 `json:"radius" validate:"gte=0"`
}

// RankedPandal is a pandal annotated with its great-circle distance from the
// query point.
type RankedPandal struct {
	models.Pandal
	DistanceMeters float64 `json:"distance_m"`
	DistanceKm     float64 `json:"distance_km"`
	Proximity      string  `json:"proximity"`
}

// RankByDistance is the exact proximity stage. It drops candidates without a
// valid location, computes Haversine distances from center, keeps those
// within radiusMeters and sorts ascending by distance. Equal distances keep
// their candidate order.
func RankByDistance(center location.Point, radiusMeters float64, candidates []models.Pandal) []RankedPandal {
	out := make([]RankedPandal, 0, len(candidates))
	for _, p := range candidates {
		if !p.HasLocation() {
			continue
		}
		d := center.DistanceMeters(*p.Location)
		if d > radiusMeters {
			continue
		}
		out = append(out, RankedPandal{
			Pandal:         p,
			DistanceMeters: d,
			DistanceKm:     math.Round(d/10) / 100,
			Proximity:      proximity.Label(proximity.Closeness(d, radiusMeters)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceMeters < out[j].DistanceMeters
	})
	return out
}

// resolve validates q and returns the center and the effective radius.
func (s *DirectoryService) resolve(q NearbyQuery) (location.Point, float64, error) {
	if err := check(q); err != nil {
		return location.Point{}, 0, err
	}
	radius := q.RadiusMeters
	if radius == 0 {
		radius = s.cfg.DefaultRadiusMeters
	}
	if radius > s.cfg.MaxRadiusMeters {
		return location.Point{}, 0, invalid("radius", "must be at most "+formatMeters(s.cfg.MaxRadiusMeters))
	}
	return location.Point{Lat: q.Lat, Lon: q.Lon}, radius, nil
}

// Nearby returns located pandals within the query radius, nearest first.
// The store does the coarse cut; distances come from RankByDistance.
func (s *DirectoryService) Nearby(ctx context.Context, q NearbyQuery) ([]RankedPandal, error) {
	center, radius, err := s.resolve(q)
	if err != nil {
		return nil, err
	}
	candidates, err := s.pandals.PandalsWithinRadius(ctx, center, radius)
	if err != nil {
		return nil, storeErr("pandals within radius", err)
	}
	return RankByDistance(center, radius, candidates), nil
}

func formatMeters(m float64) string {
	return trimFloat(m) + "m"
}
