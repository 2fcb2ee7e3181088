// Package memstore is an in-process backend for demo mode and tests.
package memstore

import (
	"context"
	"sync"

	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/models"
	"utsavdarshan/pkg/location"

	"github.com/google/uuid"
)

type Store struct {
	mu      sync.RWMutex
	order   []string
	pandals map[string]models.Pandal
	ratings []models.Rating
	visits  []models.Visit
	badges  []models.UserBadge
	users   map[string]models.User
}

func New() *Store {
	return &Store{
		pandals: make(map[string]models.Pandal),
		users:   make(map[string]models.User),
	}
}

// clone detaches the slices and pointers of p from the stored copy.
func clone(p models.Pandal) models.Pandal {
	if p.Location != nil {
		loc := *p.Location
		p.Location = &loc
	}
	if p.SpecialFeatures != nil {
		p.SpecialFeatures = append([]string(nil), p.SpecialFeatures...)
	}
	if p.Facilities != nil {
		p.Facilities = append([]string(nil), p.Facilities...)
	}
	return p
}

func (s *Store) CreatePandal(_ context.Context, p *models.Pandal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.pandals[p.ID] = clone(*p)
	s.order = append(s.order, p.ID)
	return nil
}

func (s *Store) ListPandals(_ context.Context, limit int) ([]models.Pandal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.order)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.Pandal, 0, n)
	for _, id := range s.order[:n] {
		out = append(out, clone(s.pandals[id]))
	}
	return out, nil
}

func (s *Store) GetPandal(_ context.Context, id string) (*models.Pandal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pandals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := clone(p)
	return &c, nil
}

func (s *Store) UpdatePandal(_ context.Context, p *models.Pandal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.pandals[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := clone(*p)
	next.CreatedAt = old.CreatedAt
	s.pandals[p.ID] = next
	return nil
}

// PandalsWithinRadius filters by bounding box only.
func (s *Store) PandalsWithinRadius(_ context.Context, center location.Point, radiusMeters float64) ([]models.Pandal, error) {
	box := location.BoundingBox(center, radiusMeters)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Pandal
	for _, id := range s.order {
		p := s.pandals[id]
		if p.Location == nil || !box.Contains(*p.Location) {
			continue
		}
		out = append(out, clone(p))
	}
	return out, nil
}

func (s *Store) CountPandals(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.order)), nil
}

func (s *Store) CreateRating(_ context.Context, r *models.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uuid.NewString()
	s.ratings = append(s.ratings, *r)
	return nil
}

func (s *Store) ListRatings(_ context.Context, pandalID string) ([]models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Rating{}
	for _, r := range s.ratings {
		if r.PandalID == pandalID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) ScoresByPandal(_ context.Context, pandalIDs []string) (map[string][]int, error) {
	want := make(map[string]struct{}, len(pandalIDs))
	for _, id := range pandalIDs {
		want[id] = struct{}{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]int)
	for _, r := range s.ratings {
		if _, ok := want[r.PandalID]; ok {
			out[r.PandalID] = append(out[r.PandalID], r.Score)
		}
	}
	return out, nil
}

func (s *Store) CreateVisit(_ context.Context, v *models.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = uuid.NewString()
	s.visits = append(s.visits, *v)
	return nil
}

func (s *Store) ListVisitsByUser(_ context.Context, userID string) ([]models.Visit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Visit{}
	for _, v := range s.visits {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Store) AwardBadge(_ context.Context, b *models.UserBadge) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, held := range s.badges {
		if held.UserID == b.UserID && held.BadgeID == b.BadgeID {
			return false, nil
		}
	}
	s.badges = append(s.badges, *b)
	return true, nil
}

func (s *Store) ListUserBadges(_ context.Context, userID string) ([]models.UserBadge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.UserBadge{}
	for _, b := range s.badges {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) UpsertUser(_ context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := *u
	if old, ok := s.users[u.ID]; ok {
		next.CreatedAt = old.CreatedAt
	}
	s.users[u.ID] = next
	return &next, nil
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }
