package service

import (
	"context"
	"strconv"
	"strings"

	"utsavdarshan/internal/models"
)

// Filter holds independent text predicates. Empty fields do not constrain.
type Filter struct {
	Theme    string `json:"theme"`
	IdolType string `json:"idol_type"`
	Area     string `json:"area"`
}

func (f Filter) normalized() Filter {
	return Filter{
		Theme:    strings.ToLower(strings.TrimSpace(f.Theme)),
		IdolType: strings.ToLower(strings.TrimSpace(f.IdolType)),
		Area:     strings.ToLower(strings.TrimSpace(f.Area)),
	}
}

func containsFold(value, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(value), needle)
}

// match expects an already normalized filter. Each set predicate is a
// case-insensitive substring test.
func (f Filter) match(p *models.Pandal) bool {
	return containsFold(p.Theme, f.Theme) &&
		containsFold(p.IdolType, f.IdolType) &&
		containsFold(p.Area, f.Area)
}

// Apply keeps the pandals matching f, preserving order.
func (f Filter) Apply(pandals []models.Pandal) []models.Pandal {
	n := f.normalized()
	out := make([]models.Pandal, 0, len(pandals))
	for i := range pandals {
		if n.match(&pandals[i]) {
			out = append(out, pandals[i])
		}
	}
	return out
}

// Filter returns pandals matching every set predicate, in store order.
func (s *DirectoryService) Filter(ctx context.Context, f Filter) ([]models.Pandal, error) {
	all, err := s.pandals.ListPandals(ctx, 0)
	if err != nil {
		return nil, storeErr("list pandals", err)
	}
	return f.Apply(all), nil
}

// FilterNearby combines the text predicates with a proximity constraint.
// Results are ordered by distance.
func (s *DirectoryService) FilterNearby(ctx context.Context, f Filter, q NearbyQuery) ([]RankedPandal, error) {
	ranked, err := s.Nearby(ctx, q)
	if err != nil {
		return nil, err
	}
	n := f.normalized()
	out := ranked[:0]
	for i := range ranked {
		if n.match(&ranked[i].Pandal) {
			out = append(out, ranked[i])
		}
	}
	return out, nil
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
