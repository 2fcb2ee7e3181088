package service

import (
	"context"
	"sort"
	"strings"

	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/models"
)

// AreaGroup is one locality and its pandals. Groups are computed on every
// read and never stored.
type AreaGroup struct {
	Area    string          `json:"area"`
	Count   int             `json:"count"`
	Pandals []models.Pandal `json:"pandals"`
}

// GroupByArea groups pandals by their area label. Blank areas are left out;
// groups are sorted byte-wise ascending and members keep input order.
func GroupByArea(pandals []models.Pandal) []AreaGroup {
	index := make(map[string]int)
	var groups []AreaGroup
	for _, p := range pandals {
		if strings.TrimSpace(p.Area) == "" {
			continue
		}
		i, ok := index[p.Area]
		if !ok {
			i = len(groups)
			index[p.Area] = i
			groups = append(groups, AreaGroup{Area: p.Area})
		}
		groups[i].Pandals = append(groups[i].Pandals, p)
		groups[i].Count++
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Area < groups[j].Area })
	if groups == nil {
		groups = []AreaGroup{}
	}
	return groups
}

func (s *DirectoryService) GroupByArea(ctx context.Context) ([]AreaGroup, error) {
	all, err := s.pandals.ListPandals(ctx, 0)
	if err != nil {
		return nil, storeErr("list pandals", err)
	}
	return GroupByArea(all), nil
}

// AreaPandals returns the pandals of one area, matched case-insensitively.
// An area with no pandals is not found.
func (s *DirectoryService) AreaPandals(ctx context.Context, name string) (*AreaGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNotFound
	}
	all, err := s.pandals.ListPandals(ctx, 0)
	if err != nil {
		return nil, storeErr("list pandals", err)
	}
	g := &AreaGroup{Area: name}
	for _, p := range all {
		if strings.EqualFold(p.Area, name) {
			if g.Count == 0 {
				g.Area = p.Area
			}
			g.Pandals = append(g.Pandals, p)
			g.Count++
		}
	}
	if g.Count == 0 {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

// FilterOptions lists the distinct non-blank facet values, each sorted.
type FilterOptions struct {
	Themes    []string `json:"themes"`
	IdolTypes []string `json:"idol_types"`
	Areas     []string `json:"areas"`
	// Radii are the suggested search radii in meters.
	Radii []float64 `json:"radii"`
}

func (s *DirectoryService) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	all, err := s.pandals.ListPandals(ctx, 0)
	if err != nil {
		return nil, storeErr("list pandals", err)
	}
	themes, idols, areas := make([]string, 0), make([]string, 0), make([]string, 0)
	for _, p := range all {
		themes = append(themes, p.Theme)
		idols = append(idols, p.IdolType)
		areas = append(areas, p.Area)
	}
	radii := make([]float64, 0, len(domain.SearchRadiusMeters))
	for _, r := range domain.SearchRadiusMeters {
		if r <= s.cfg.MaxRadiusMeters {
			radii = append(radii, r)
		}
	}
	return &FilterOptions{
		Themes:    distinct(themes),
		IdolTypes: distinct(idols),
		Areas:     distinct(areas),
		Radii:     radii,
	}, nil
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
