package models

import (
	"time"

	"utsavdarshan/pkg/location"
)

// Pandal is a festival site listed in the directory.
type Pandal struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Theme       string          `json:"theme"`
	IdolType    string          `json:"idol_type"`
	Area        string          `json:"area"`
	Address     string          `json:"address"`
	Location    *location.Point `json:"location,omitempty"`
	OpeningTime string          `json:"opening_time"`
	ClosingTime string          `json:"closing_time"`
	ImageURL    string          `json:"image_url,omitempty"`
	SubmittedBy string          `json:"submitted_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	History         *string  `json:"history,omitempty"`
	EstablishedYear *int     `json:"established_year,omitempty"`
	SpecialFeatures []string `json:"special_features,omitempty"`
	Facilities      []string `json:"facilities,omitempty"`
	FamousFor       *string  `json:"famous_for,omitempty"`
	ExpectedCrowd   *string  `json:"expected_crowd,omitempty"`
	BestTimeToVisit *string  `json:"best_time_to_visit,omitempty"`
	ContactNumber   *string  `json:"contact_number,omitempty"`
}

// HasLocation reports whether p carries a usable point.
func (p *Pandal) HasLocation() bool {
	return p.Location != nil && p.Location.Validate() == nil
}

// PandalUpdate lists fields to change; nil fields are left untouched.
type PandalUpdate struct {
	Name        *string         `json:"name,omitempty"`
	Theme       *string         `json:"theme,omitempty"`
	IdolType    *string         `json:"idol_type,omitempty"`
	Area        *string         `json:"area,omitempty"`
	Address     *string         `json:"address,omitempty"`
	Location    *location.Point `json:"location,omitempty"`
	OpeningTime *string         `json:"opening_time,omitempty"`
	ClosingTime *string         `json:"closing_time,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`

	History         *string   `json:"history,omitempty"`
	EstablishedYear *int      `json:"established_year,omitempty"`
	SpecialFeatures *[]string `json:"special_features,omitempty"`
	Facilities      *[]string `json:"facilities,omitempty"`
	FamousFor       *string   `json:"famous_for,omitempty"`
	ExpectedCrowd   *string   `json:"expected_crowd,omitempty"`
	BestTimeToVisit *string   `json:"best_time_to_visit,omitempty"`
	ContactNumber   *string   `json:"contact_number,omitempty"`
}

// Apply copies the set fields of u onto p. ID and CreatedAt are never touched.
func (u PandalUpdate) Apply(p *Pandal) {
	setString(&p.Name, u.Name)
	setString(&p.Theme, u.Theme)
	setString(&p.IdolType, u.IdolType)
	setString(&p.Area, u.Area)
	setString(&p.Address, u.Address)
	setString(&p.OpeningTime, u.OpeningTime)
	setString(&p.ClosingTime, u.ClosingTime)
	setString(&p.ImageURL, u.ImageURL)
	if u.Location != nil {
		loc := *u.Location
		p.Location = &loc
	}
	if u.History != nil {
		p.History = u.History
	}
	if u.EstablishedYear != nil {
		p.EstablishedYear = u.EstablishedYear
	}
	if u.SpecialFeatures != nil {
		p.SpecialFeatures = *u.SpecialFeatures
	}
	if u.Facilities != nil {
		p.Facilities = *u.Facilities
	}
	if u.FamousFor != nil {
		p.FamousFor = u.FamousFor
	}
	if u.ExpectedCrowd != nil {
		p.ExpectedCrowd = u.ExpectedCrowd
	}
	if u.BestTimeToVisit != nil {
		p.BestTimeToVisit = u.BestTimeToVisit
	}
	if u.ContactNumber != nil {
		p.ContactNumber = u.ContactNumber
	}
}

// IsEmpty reports whether no field is set.
func (u PandalUpdate) IsEmpty() bool {
	return u == PandalUpdate{}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
