package service

import (
	"context"
	"strings"
	"time"

	"utsavdarshan/config"
	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/models"
)

// DirectoryService answers listing, grouping, filtering and proximity
// queries over pandals and records ratings and visits. It keeps no state of
// its own; every call is a fresh round trip to the stores.
type DirectoryService struct {
	cfg     config.DirectoryConfig
	pandals PandalStore
	ratings RatingStore
	visits  VisitStore
	now     func() time.Time
}

func NewDirectoryService(cfg config.DirectoryConfig, pandals PandalStore, ratings RatingStore, visits VisitStore) *DirectoryService {
	if cfg.SummarySize <= 0 {
		cfg.SummarySize = 4
	}
	if cfg.DefaultRadiusMeters <= 0 {
		cfg.DefaultRadiusMeters = 2000
	}
	if cfg.MaxRadiusMeters < cfg.DefaultRadiusMeters {
		cfg.MaxRadiusMeters = 100000
	}
	if cfg.DefaultOpeningTime == "" {
		cfg.DefaultOpeningTime = "06:00"
	}
	if cfg.DefaultClosingTime == "" {
		cfg.DefaultClosingTime = "22:00"
	}
	return &DirectoryService{
		cfg:     cfg,
		pandals: pandals,
		ratings: ratings,
		visits:  visits,
		now:     time.Now,
	}
}

// ListPandals returns pandals in store order, capped at limit when limit > 0.
func (s *DirectoryService) ListPandals(ctx context.Context, limit int) ([]models.Pandal, error) {
	if limit < 0 {
		return nil, invalid("limit", "must be at least 0")
	}
	list, err := s.pandals.ListPandals(ctx, limit)
	if err != nil {
		return nil, storeErr("list pandals", err)
	}
	return list, nil
}

// Summary returns at most the configured summary size, in store order.
func (s *DirectoryService) Summary(ctx context.Context) ([]models.Pandal, error) {
	return s.ListPandals(ctx, s.cfg.SummarySize)
}

func (s *DirectoryService) GetPandal(ctx context.Context, id string) (*models.Pandal, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	p, err := s.pandals.GetPandal(ctx, id)
	if err != nil {
		return nil, storeErr("get pandal", err)
	}
	return p, nil
}

func (s *DirectoryService) Count(ctx context.Context) (int64, error) {
	n, err := s.pandals.CountPandals(ctx)
	if err != nil {
		return 0, storeErr("count pandals", err)
	}
	return n, nil
}

// pandalRules carries the validation tags for a pandal record.
type pandalRules struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Theme           string   `json:"theme" validate:"max=200"`
	IdolType        string   `json:"idol_type" validate:"max=200"`
	Area            string   `json:"area" validate:"max=100"`
	Address         string   `json:"address" validate:"max=500"`
	Lat             *float64 `json:"lat" validate:"omitempty,latitude"`
	Lon             *float64 `json:"lon" validate:"omitempty,longitude"`
	OpeningTime     string   `json:"opening_time" validate:"required,datetime=15:04"`
	ClosingTime     string   `json:"closing_time" validate:"required,datetime=15:04"`
	EstablishedYear *int     `json:"established_year" validate:"omitempty,min=1800,max=2100"`
	ContactNumber   *string  `json:"contact_number" validate:"omitempty,max=20"`
	ImageURL        string   `json:"image_url" validate:"omitempty,url"`
}

func validatePandal(p *models.Pandal) error {
	r := pandalRules{
		Name:            p.Name,
		Theme:           p.Theme,
		IdolType:        p.IdolType,
		Area:            p.Area,
		Address:         p.Address,
		OpeningTime:     p.OpeningTime,
		ClosingTime:     p.ClosingTime,
		EstablishedYear: p.EstablishedYear,
		ContactNumber:   p.ContactNumber,
		ImageURL:        p.ImageURL,
	}
	if p.Location != nil {
		lat, lon := p.Location.Lat, p.Location.Lon
		r.Lat, r.Lon = &lat, &lon
	}
	return check(r)
}

func normalize(p *models.Pandal) {
	p.Name = strings.TrimSpace(p.Name)
	p.Theme = strings.TrimSpace(p.Theme)
	p.IdolType = strings.TrimSpace(p.IdolType)
	p.Area = strings.TrimSpace(p.Area)
	p.Address = strings.TrimSpace(p.Address)
	p.OpeningTime = strings.TrimSpace(p.OpeningTime)
	p.ClosingTime = strings.TrimSpace(p.ClosingTime)
}

// CreatePandal validates p, applies default timings and inserts it. The store
// assigns the ID; CreatedAt is set here and never changed afterwards.
func (s *DirectoryService) CreatePandal(ctx context.Context, in models.Pandal) (*models.Pandal, error) {
	p := in
	p.ID = ""
	if in.Location != nil {
		loc := *in.Location
		p.Location = &loc
	}
	normalize(&p)
	if p.OpeningTime == "" {
		p.OpeningTime = s.cfg.DefaultOpeningTime
	}
	if p.ClosingTime == "" {
		p.ClosingTime = s.cfg.DefaultClosingTime
	}
	if err := validatePandal(&p); err != nil {
		return nil, err
	}
	p.CreatedAt = s.now().UTC()
	if err := s.pandals.CreatePandal(ctx, &p); err != nil {
		return nil, storeErr("create pandal", err)
	}
	return &p, nil
}

// UpdatePandal applies the set fields of u to the pandal with the given id.
func (s *DirectoryService) UpdatePandal(ctx context.Context, id string, u models.PandalUpdate) (*models.Pandal, error) {
	if u.IsEmpty() {
		return nil, invalid("update", "must set at least one field")
	}
	p, err := s.GetPandal(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Apply(p)
	normalize(p)
	if err := validatePandal(p); err != nil {
		return nil, err
	}
	if err := s.pandals.UpdatePandal(ctx, p); err != nil {
		return nil, storeErr("update pandal", err)
	}
	return p, nil
}
