package mongostore

import (
	"math"
	"testing"
	"time"

	"utsavdarshan/internal/models"
	"utsavdarshan/pkg/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPandalDocRoundTrip(t *testing.T) {
	year := 1934
	p := models.Pandal{
		ID:              primitive.NewObjectID().Hex(),
		Name:            "Lalbaugcha Raja",
		Area:            "Lalbaug",
		Location:        &location.Point{Lat: 18.9777, Lon: 72.8333},
		OpeningTime:     "06:00",
		ClosingTime:     "22:00",
		CreatedAt:       time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC),
		EstablishedYear: &year,
		Facilities:      []string{"Water"},
	}
	doc := toPandalDoc(&p)
	require.NotNil(t, doc.Location)
	assert.Equal(t, "Point", doc.Location.Type)
	assert.Equal(t, []float64{72.8333, 18.9777}, doc.Location.Coordinates)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var back pandalDoc
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, p, back.toModel())
}

func TestPandalDocWithoutLocation(t *testing.T) {
	doc := toPandalDoc(&models.Pandal{Name: "Unmapped"})
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	_, hasLocation := fields["location"]
	assert.False(t, hasLocation)
	_, hasID := fields["_id"]
	assert.False(t, hasID)
}

func TestWithinFilter(t *testing.T) {
	f := withinFilter(location.Point{Lat: 19.0, Lon: 72.84}, 5000)
	within := f["location"].(bson.M)["$geoWithin"].(bson.M)["$centerSphere"].(bson.A)
	center := within[0].(bson.A)
	assert.Equal(t, 72.84, center[0])
	assert.Equal(t, 19.0, center[1])

	angle := within[1].(float64)
	exact := 5000 / location.EarthRadiusMeters
	assert.Greater(t, angle, exact)
	assert.InDelta(t, exact, angle, exact*0.02)
	assert.False(t, math.IsNaN(angle))
}

func TestAwardUpdate(t *testing.T) {
	at := time.Date(2025, 9, 2, 10, 0, 0, 0, time.UTC)
	filter, update := awardUpdate(&models.UserBadge{UserID: "u1", BadgeID: "badge_10_visits", AwardedAt: at})
	assert.Equal(t, bson.M{"user_id": "u1", "badge_id": "badge_10_visits"}, filter)
	assert.Equal(t, bson.M{"$setOnInsert": bson.M{"awarded_at": at}}, update)
	assert.NotContains(t, update, "$set")
}
