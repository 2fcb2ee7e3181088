package mongostore

import (
	"time"

	"utsavdarshan/internal/models"
	"utsavdarshan/pkg/location"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// geoJSONPoint is the stored shape of a location, indexed with 2dsphere.
type geoJSONPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"` // [lon, lat]
}

type pandalDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Theme       string             `bson:"theme"`
	IdolType    string             `bson:"idol_type"`
	Area        string             `bson:"area"`
	Address     string             `bson:"address"`
	Location    *geoJSONPoint      `bson:"location,omitempty"`
	OpeningTime string             `bson:"opening_time"`
	ClosingTime string             `bson:"closing_time"`
	ImageURL    string             `bson:"image_url,omitempty"`
	SubmittedBy string             `bson:"submitted_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`

	History         *string  `bson:"history,omitempty"`
	EstablishedYear *int     `bson:"established_year,omitempty"`
	SpecialFeatures []string `bson:"special_features,omitempty"`
	Facilities      []string `bson:"facilities,omitempty"`
	FamousFor       *string  `bson:"famous_for,omitempty"`
	ExpectedCrowd   *string  `bson:"expected_crowd,omitempty"`
	BestTimeToVisit *string  `bson:"best_time_to_visit,omitempty"`
	ContactNumber   *string  `bson:"contact_number,omitempty"`
}

func toPandalDoc(p *models.Pandal) pandalDoc {
	d := pandalDoc{
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
	if oid, err := primitive.ObjectIDFromHex(p.ID); err == nil {
		d.ID = oid
	}
	if p.Location != nil {
		d.Location = &geoJSONPoint{Type: "Point", Coordinates: []float64{p.Location.Lon, p.Location.Lat}}
	}
	return d
}

func (d *pandalDoc) toModel() models.Pandal {
	p := models.Pandal{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Theme:           d.Theme,
		IdolType:        d.IdolType,
		Area:            d.Area,
		Address:         d.Address,
		OpeningTime:     d.OpeningTime,
		ClosingTime:     d.ClosingTime,
		ImageURL:        d.ImageURL,
		SubmittedBy:     d.SubmittedBy,
		CreatedAt:       d.CreatedAt,
		History:         d.History,
		EstablishedYear: d.EstablishedYear,
		SpecialFeatures: d.SpecialFeatures,
		Facilities:      d.Facilities,
		FamousFor:       d.FamousFor,
		ExpectedCrowd:   d.ExpectedCrowd,
		BestTimeToVisit: d.BestTimeToVisit,
		ContactNumber:   d.ContactNumber,
	}
	if d.Location != nil && len(d.Location.Coordinates) == 2 {
		p.Location = &location.Point{Lon: d.Location.Coordinates[0], Lat: d.Location.Coordinates[1]}
	}
	return p
}

type ratingDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PandalID  string             `bson:"pandal_id"`
	UserID    string             `bson:"user_id"`
	Score     int                `bson:"score"`
	Comment   string             `bson:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *ratingDoc) toModel() models.Rating {
	return models.Rating{
		ID:        d.ID.Hex(),
		PandalID:  d.PandalID,
		UserID:    d.UserID,
		Score:     d.Score,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}

type visitDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	PandalID  string             `bson:"pandal_id"`
	VisitedAt time.Time          `bson:"visited_at"`
}

type userBadgeDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	BadgeID   string             `bson:"badge_id"`
	AwardedAt time.Time          `bson:"awarded_at"`
}

// awardUpdate sets awarded_at only when the badge is new to the user.
func awardUpdate(b *models.UserBadge) (filter, update bson.M) {
	filter = bson.M{"user_id": b.UserID, "badge_id": b.BadgeID}
	update = bson.M{"$setOnInsert": bson.M{"awarded_at": b.AwardedAt}}
	return filter, update
}

type userDoc struct {
	ID          string    `bson:"_id"`
	Email       string    `bson:"email"`
	Name        string    `bson:"name"`
	Picture     string    `bson:"picture,omitempty"`
	Role        string    `bson:"role"`
	CreatedAt   time.Time `bson:"created_at"`
	LastLoginAt time.Time `bson:"last_login_at"`
}

func (d *userDoc) toModel() models.User {
	return models.User{
		ID:          d.ID,
		Email:       d.Email,
		Name:        d.Name,
		Picture:     d.Picture,
		Role:        d.Role,
		CreatedAt:   d.CreatedAt,
		LastLoginAt: d.LastLoginAt,
	}
}

// withinFilter selects documents whose location lies inside a spherical cap
// around center. The cap is slightly wider than radiusMeters.
func withinFilter(center location.Point, radiusMeters float64) bson.M {
	return bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{
					bson.A{center.Lon, center.Lat},
					location.AngularRadius(radiusMeters, location.EarthRadiusMeters),
				},
			},
		},
	}
}
