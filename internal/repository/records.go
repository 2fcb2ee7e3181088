package repository

import (
	"time"

	"utsavdarshan/internal/models"
	"utsavdarshan/pkg/location"
)

// PandalRecord is the relational row for a pandal. Seq keeps insertion order;
// ID is the public identifier.
type PandalRecord struct {
	Seq         uint     `gorm:"primaryKey;autoIncrement"`
	ID          string   `gorm:"size:36;uniqueIndex;not null"`
	Name        string   `gorm:"size:200;not null"`
	Theme       string   `gorm:"size:200"`
	IdolType    string   `gorm:"size:200"`
	Area        string   `gorm:"size:100;index"`
	Address     string   `gorm:"size:500"`
	Latitude    *float64 `gorm:"type:decimal(10,7);index:idx_pandal_lat_lng"`
	Longitude   *float64 `gorm:"type:decimal(11,7);index:idx_pandal_lat_lng"`
	OpeningTime string   `gorm:"size:5"`
	ClosingTime string   `gorm:"size:5"`
	ImageURL    string   `gorm:"size:512"`
	SubmittedBy string   `gorm:"size:255"`
	CreatedAt   time.Time

	History         *string  `gorm:"type:text"`
	EstablishedYear *int
	SpecialFeatures []string `gorm:"serializer:json"`
	Facilities      []string `gorm:"serializer:json"`
	FamousFor       *string  `gorm:"size:500"`
	ExpectedCrowd   *string  `gorm:"size:100"`
	BestTimeToVisit *string  `gorm:"size:200"`
	ContactNumber   *string  `gorm:"size:20"`
}

func (PandalRecord) TableName() string { return "pandals" }

func toPandalRecord(p *models.Pandal) PandalRecord {
	r := PandalRecord{
		ID:              p.ID,
		Name:            p.Name,
		Theme:           p.Theme,
		IdolType:        p.IdolType,
		Area:            p.Area,
		Address:         p.Address,
		OpeningTime:     p.OpeningTime,
		ClosingTime:     p.ClosingTime,
		ImageURL:        p.ImageURL,
		SubmittedBy:     p.SubmittedBy,
		CreatedAt:       p.CreatedAt,
		History:         p.History,
		EstablishedYear: p.EstablishedYear,
		SpecialFeatures: p.SpecialFeatures,
		Facilities:      p.Facilities,
		FamousFor:       p.FamousFor,
		ExpectedCrowd:   p.ExpectedCrowd,
		BestTimeToVisit: p.BestTimeToVisit,
		ContactNumber:   p.ContactNumber,
	}
	if p.Location != nil {
		lat, lon := p.Location.Lat, p.Location.Lon
		r.Latitude, r.Longitude = &lat, &lon
	}
	return r
}

func (r *PandalRecord) toModel() models.Pandal {
	p := models.Pandal{
		ID:              r.ID,
		Name:            r.Name,
		Theme:           r.Theme,
		IdolType:        r.IdolType,
		Area:            r.Area,
		Address:         r.Address,
		OpeningTime:     r.OpeningTime,
		ClosingTime:     r.ClosingTime,
		ImageURL:        r.ImageURL,
		SubmittedBy:     r.SubmittedBy,
		CreatedAt:       r.CreatedAt,
		History:         r.History,
		EstablishedYear: r.EstablishedYear,
		SpecialFeatures: r.SpecialFeatures,
		Facilities:      r.Facilities,
		FamousFor:       r.FamousFor,
		ExpectedCrowd:   r.ExpectedCrowd,
		BestTimeToVisit: r.BestTimeToVisit,
		ContactNumber:   r.ContactNumber,
	}
	if r.Latitude != nil && r.Longitude != nil {
		p.Location = &location.Point{Lat: *r.Latitude, Lon: *r.Longitude}
	}
	return p
}

type RatingRecord struct {
	Seq       uint   `gorm:"primaryKey;autoIncrement"`
	ID        string `gorm:"size:36;uniqueIndex;not null"`
	PandalID  string `gorm:"size:36;not null;index"`
	UserID    string `gorm:"size:255;not null;index"`
	Score     int    `gorm:"not null"`
	Comment   string `gorm:"size:1000"`
	CreatedAt time.Time
}

func (RatingRecord) TableName() string { return "ratings" }

func (r *RatingRecord) toModel() models.Rating {
	return models.Rating{ID: r.ID, PandalID: r.PandalID, UserID: r.UserID, Score: r.Score, Comment: r.Comment, CreatedAt: r.CreatedAt}
}

type VisitRecord struct {
	Seq       uint   `gorm:"primaryKey;autoIncrement"`
	ID        string `gorm:"size:36;uniqueIndex;not null"`
	UserID    string `gorm:"size:255;not null;index"`
	PandalID  string `gorm:"size:36;not null;index"`
	VisitedAt time.Time
}

func (VisitRecord) TableName() string { return "visits" }

// UserBadgeRecord holds one awarded badge; (user_id, badge_id) is unique.
type UserBadgeRecord struct {
	Seq       uint   `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"size:255;not null;uniqueIndex:idx_user_badge"`
	BadgeID   string `gorm:"size:64;not null;uniqueIndex:idx_user_badge"`
	AwardedAt time.Time
}

func (UserBadgeRecord) TableName() string { return "user_badges" }

type UserRecord struct {
	ID          string `gorm:"primaryKey;size:255"`
	Email       string `gorm:"size:255;index"`
	Name        string `gorm:"size:255"`
	Picture     string `gorm:"size:512"`
	Role        string `gorm:"size:20;not null;index"`
	CreatedAt   time.Time
	LastLoginAt time.Time
}

func (UserRecord) TableName() string { return "users" }

func (r *UserRecord) toModel() models.User {
	return models.User{ID: r.ID, Email: r.Email, Name: r.Name, Picture: r.Picture, Role: r.Role, CreatedAt: r.CreatedAt, LastLoginAt: r.LastLoginAt}
}

// Models lists every table for auto-migration.
func Models() []interface{} {
	return []interface{}{&PandalRecord{}, &RatingRecord{}, &VisitRecord{}, &UserBadgeRecord{}, &UserRecord{}}
}
