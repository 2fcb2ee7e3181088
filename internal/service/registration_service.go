package service

import (
	"context"
	"errors"
	"strings"

	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/models"
	"utsavdarshan/pkg/geocode"
	"utsavdarshan/pkg/location"

	"github.com/sirupsen/logrus"
)

// Geocoder resolves a free-text address. geocode.ErrNotFound signals a miss.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geocode.Result, error)
}

// RegisterInput is a user- or admin-submitted pandal.
type RegisterInput struct {
	Name        string   `json:"name"`
	Theme       string   `json:"theme"`
	IdolType    string   `json:"idol_type"`
	Area        string   `json:"area"`
	Address     string   `json:"address"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	OpeningTime string   `json:"opening_time"`
	ClosingTime string   `json:"closing_time"`

	History         *string  `json:"history"`
	EstablishedYear *int     `json:"established_year"`
	SpecialFeatures []string `json:"special_features"`
	Facilities      []string `json:"facilities"`
	FamousFor       *string  `json:"famous_for"`
	ExpectedCrowd   *string  `json:"expected_crowd"`
	BestTimeToVisit *string  `json:"best_time_to_visit"`
	ContactNumber   *string  `json:"contact_number"`

	SubmittedBy string `json:"-"`
}

type RegisterResult struct {
	Pandal         *models.Pandal `json:"pandal"`
	LocationSource string         `json:"location_source"`
}

// RegistrationService resolves an address, falls back to supplied
// coordinates and hands the record to the directory.
type RegistrationService struct {
	dir      *DirectoryService
	geocoder Geocoder
}

// NewRegistrationService accepts a nil geocoder; supplied coordinates are used as is.
func NewRegistrationService(dir *DirectoryService, geocoder Geocoder) *RegistrationService {
	return &RegistrationService{dir: dir, geocoder: geocoder}
}

func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	supplied, err := suppliedPoint(in.Lat, in.Lon)
	if err != nil {
		return nil, err
	}

	p := models.Pandal{
		Name:            in.Name,
		Theme:           in.Theme,
		IdolType:        in.IdolType,
		Area:            in.Area,
		Address:         in.Address,
		OpeningTime:     in.OpeningTime,
		ClosingTime:     in.ClosingTime,
		SubmittedBy:     in.SubmittedBy,
		History:         in.History,
		EstablishedYear: in.EstablishedYear,
		SpecialFeatures: in.SpecialFeatures,
		Facilities:      in.Facilities,
		FamousFor:       in.FamousFor,
		ExpectedCrowd:   in.ExpectedCrowd,
		BestTimeToVisit: in.BestTimeToVisit,
		ContactNumber:   in.ContactNumber,
	}
	source := domain.LocationSourceNone

	if r, ok := s.lookup(ctx, in.Address); ok {
		pt := r.Point
		p.Location = &pt
		if r.FormattedAddress != "" {
			p.Address = r.FormattedAddress
		}
		source = domain.LocationSourceGeocoder
	} else if supplied != nil {
		p.Location = supplied
		source = domain.LocationSourceSupplied
	}

	created, err := s.dir.CreatePandal(ctx, p)
	if err != nil {
		return nil, err
	}
	return &RegisterResult{Pandal: created, LocationSource: source}, nil
}

// lookup never fails the registration: misses and errors are logged and
// reported as not resolved.
func (s *RegistrationService) lookup(ctx context.Context, address string) (geocode.Result, bool) {
	address = strings.TrimSpace(address)
	if s.geocoder == nil || address == "" {
		return geocode.Result{}, false
	}
	r, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		entry := logrus.WithError(err).WithField("address", address)
		if errors.Is(err, geocode.ErrNotFound) {
			entry.Info("address not geocoded, using supplied coordinates")
		} else {
			entry.Warn("geocoder unavailable, using supplied coordinates")
		}
		return geocode.Result{}, false
	}
	return r, true
}

// suppliedPoint checks caller coordinates up front so a bad value is
// rejected even when the geocoder would have answered.
func suppliedPoint(lat, lon *float64) (*location.Point, error) {
	switch {
	case lat == nil && lon == nil:
		return nil, nil
	case lat == nil:
		return nil, invalid("lat", "is required when lon is set")
	case lon == nil:
		return nil, invalid("lon", "is required when lat is set")
	}
	p := location.Point{Lat: *lat, Lon: *lon}
	if err := check(NearbyQuery{Lat: p.Lat, Lon: p.Lon}); err != nil {
		return nil, err
	}
	return &p, nil
}
