package service

import (
	"context"
	"testing"
	"time"

	"utsavdarshan/config"
	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/memstore"
	"utsavdarshan/internal/models"
	"utsavdarshan/pkg/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) (*DirectoryService, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	svc := NewDirectoryService(config.DirectoryConfig{
		SummarySize:         4,
		DefaultRadiusMeters: 2000,
		MaxRadiusMeters:     100000,
		DefaultOpeningTime:  "06:00",
		DefaultClosingTime:  "22:00",
	}, st, st, st)
	return svc, st
}

func at(lat, lon float64) *location.Point {
	return &location.Point{Lat: lat, Lon: lon}
}

func mustCreate(t *testing.T, svc *DirectoryService, p models.Pandal) *models.Pandal {
	t.Helper()
	created, err := svc.CreatePandal(context.Background(), p)
	require.NoError(t, err)
	return created
}

func names(list []models.Pandal) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = list[i].Name
	}
	return out
}

func rankedNames(list []RankedPandal) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = list[i].Name
	}
	return out
}

func TestCreatePandalDefaults(t *testing.T) {
	svc, _ := newTestDirectory(t)
	fixed := time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	p := mustCreate(t, svc, models.Pandal{Name: "  Lalbaugcha Raja ", Area: "Lalbaug ", Location: at(18.9777, 72.8333)})
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Lalbaugcha Raja", p.Name)
	assert.Equal(t, "Lalbaug", p.Area)
	assert.Equal(t, "06:00", p.OpeningTime)
	assert.Equal(t, "22:00", p.ClosingTime)
	assert.Equal(t, fixed, p.CreatedAt)

	got, err := svc.GetPandal(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestCreatePandalRejectsBadLatitude(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	mustCreate(t, svc, models.Pandal{Name: "A"})
	before, err := svc.Count(ctx)
	require.NoError(t, err)

	_, err = svc.CreatePandal(ctx, models.Pandal{Name: "Bad", Location: at(200, 72.8)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "lat")

	after, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCreatePandalValidation(t *testing.T) {
	svc, _ := newTestDirectory(t)
	cases := map[string]models.Pandal{
		"name":         {Name: "   "},
		"lon":          {Name: "X", Location: at(19, 181)},
		"opening_time": {Name: "X", OpeningTime: "25:00"},
		"closing_time": {Name: "X", ClosingTime: "10 pm"},
	}
	for field, p := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := svc.CreatePandal(context.Background(), p)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, field)
		})
	}
	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetPandalNotFound(t *testing.T) {
	svc, _ := newTestDirectory(t)
	_, err := svc.GetPandal(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetPandal(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAndSummary(t *testing.T) {
	svc, _ := newTestDirectory(t)
	for _, n := range []string{"P1", "P2", "P3", "P4", "P5", "P6"} {
		mustCreate(t, svc, models.Pandal{Name: n})
	}
	ctx := context.Background()

	all, err := svc.ListPandals(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"P1", "P2", "P3", "P4", "P5", "P6"}, names(all))

	two, err := svc.ListPandals(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"P1", "P2"}, names(two))

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Len(t, summary, 4)

	_, err = svc.ListPandals(ctx, -1)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdatePandal(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	p := mustCreate(t, svc, models.Pandal{Name: "Andhericha Raja", Theme: "Traditional"})

	theme := "Eco-friendly"
	year := 1966
	updated, err := svc.UpdatePandal(ctx, p.ID, models.PandalUpdate{
		Theme:           &theme,
		EstablishedYear: &year,
		Location:        at(19.1136, 72.8697),
	})
	require.NoError(t, err)
	assert.Equal(t, "Eco-friendly", updated.Theme)
	assert.Equal(t, "Andhericha Raja", updated.Name)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	require.NotNil(t, updated.Location)
	assert.Equal(t, 19.1136, updated.Location.Lat)

	_, err = svc.UpdatePandal(ctx, p.ID, models.PandalUpdate{Location: at(-91, 0)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	got, err := svc.GetPandal(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 19.1136, got.Location.Lat)

	_, err = svc.UpdatePandal(ctx, "missing", models.PandalUpdate{Theme: &theme})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdatePandal(ctx, p.ID, models.PandalUpdate{})
	assert.ErrorAs(t, err, &verr)
}

func TestNearbyDadarThane(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	mustCreate(t, svc, models.Pandal{Name: "A", Area: "Dadar", Location: at(19.00, 72.84)})
	mustCreate(t, svc, models.Pandal{Name: "B", Area: "Thane", Location: at(19.21, 72.97)})

	near, err := svc.Nearby(ctx, NearbyQuery{Lat: 19.00, Lon: 72.84, RadiusMeters: 5000})
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, rankedNames(near))
	assert.InDelta(t, 0, near[0].DistanceKm, 1e-9)
	assert.Equal(t, "Very Close", near[0].Proximity)

	wide, err := svc.Nearby(ctx, NearbyQuery{Lat: 19.00, Lon: 72.84, RadiusMeters: 50000})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, rankedNames(wide))
	assert.Less(t, wide[0].DistanceMeters, wide[1].DistanceMeters)
	assert.InDelta(t, 27.0, wide[1].DistanceKm, 0.5)
}

func TestNearbyMatchesExactDistance(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	center := location.Point{Lat: 19.0, Lon: 72.84}
	points := []location.Point{
		{Lat: 19.0, Lon: 72.84},
		{Lat: 19.01, Lon: 72.84},
		{Lat: 19.0, Lon: 72.86},
		{Lat: 19.03, Lon: 72.87},
		{Lat: 18.98, Lon: 72.83},
		{Lat: 19.2, Lon: 72.9},
	}
	for i, pt := range points {
		pt := pt
		mustCreate(t, svc, models.Pandal{Name: string(rune('a' + i)), Location: &pt})
	}
	mustCreate(t, svc, models.Pandal{Name: "unlocated"})

	for _, radius := range []float64{1, 1500, 2500, 4000, 30000} {
		got, err := svc.Nearby(ctx, NearbyQuery{Lat: center.Lat, Lon: center.Lon, RadiusMeters: radius})
		require.NoError(t, err)

		want := 0
		for _, pt := range points {
			if center.DistanceMeters(pt) <= radius {
				want++
			}
		}
		assert.Len(t, got, want, "radius %v", radius)
		for i, r := range got {
			assert.NotEqual(t, "unlocated", r.Name)
			assert.LessOrEqual(t, r.DistanceMeters, radius)
			assert.InDelta(t, center.DistanceMeters(*r.Location), r.DistanceMeters, 1e-9)
			if i > 0 {
				assert.LessOrEqual(t, got[i-1].DistanceMeters, r.DistanceMeters)
			}
		}
	}
}

func TestNearbyNearPole(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	mustCreate(t, svc, models.Pandal{Name: "arctic", Location: &location.Point{Lat: 88.07, Lon: 26.1}})

	got, err := svc.Nearby(ctx, NearbyQuery{Lat: 88.0, Lon: 0, RadiusMeters: 100000})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "arctic", got[0].Name)
	assert.Less(t, got[0].DistanceMeters, 100000.0)
}

func TestNearbyRadius(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	mustCreate(t, svc, models.Pandal{Name: "1.5km", Location: at(19.0135, 72.84)})
	mustCreate(t, svc, models.Pandal{Name: "3km", Location: at(19.027, 72.84)})

	// Zero radius means the 2000m default.
	got, err := svc.Nearby(ctx, NearbyQuery{Lat: 19.0, Lon: 72.84})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.5km"}, rankedNames(got))

	var verr *ValidationError
	_, err = svc.Nearby(ctx, NearbyQuery{Lat: 19.0, Lon: 72.84, RadiusMeters: -5})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "radius")

	_, err = svc.Nearby(ctx, NearbyQuery{Lat: 19.0, Lon: 72.84, RadiusMeters: 200000})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "radius")

	_, err = svc.Nearby(ctx, NearbyQuery{Lat: 95, Lon: 72.84})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "lat")
}

func TestRankByDistanceStableTies(t *testing.T) {
	center := location.Point{Lat: 19.0, Lon: 72.84}
	candidates := []models.Pandal{
		{ID: "far", Location: at(19.01, 72.84)},
		{ID: "tie-1", Location: at(19.005, 72.84)},
		{ID: "none"},
		{ID: "tie-2", Location: at(19.005, 72.84)},
		{ID: "bad", Location: at(120, 72.84)},
		{ID: "tie-3", Location: at(19.005, 72.84)},
	}
	got := RankByDistance(center, 5000, candidates)
	ids := make([]string, len(got))
	for i := range got {
		ids[i] = got[i].ID
	}
	assert.Equal(t, []string{"tie-1", "tie-2", "tie-3", "far"}, ids)

	assert.Empty(t, RankByDistance(center, 5000, nil))
}

func TestFilterConjunctiveCaseInsensitive(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	mustCreate(t, svc, models.Pandal{Name: "p1", Theme: "Traditional", IdolType: "Clay", Area: "Dadar"})
	mustCreate(t, svc, models.Pandal{Name: "p2", Theme: "Non-Traditional", IdolType: "Eco-friendly", Area: "Dadar West"})
	mustCreate(t, svc, models.Pandal{Name: "p3", Theme: "Traditional", IdolType: "Clay", Area: "Thane"})
	mustCreate(t, svc, models.Pandal{Name: "p4", Theme: "Modern", IdolType: "Clay", Area: "Dadar"})

	got, err := svc.Filter(ctx, Filter{Theme: "Traditional", Area: "Dadar"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, names(got))

	got, err = svc.Filter(ctx, Filter{Theme: "tradition"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, names(got))

	got, err = svc.Filter(ctx, Filter{IdolType: "CLAY", Area: "dadar"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p4"}, names(got))

	got, err = svc.Filter(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = svc.Filter(ctx, Filter{Theme: "Fusion"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterNearby(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	mustCreate(t, svc, models.Pandal{Name: "far-trad", Theme: "Traditional", Location: at(19.02, 72.84)})
	mustCreate(t, svc, models.Pandal{Name: "near-modern", Theme: "Modern", Location: at(19.001, 72.84)})
	mustCreate(t, svc, models.Pandal{Name: "near-trad", Theme: "Traditional", Location: at(19.005, 72.84)})
	mustCreate(t, svc, models.Pandal{Name: "thane-trad", Theme: "Traditional", Location: at(19.21, 72.97)})

	got, err := svc.FilterNearby(ctx, Filter{Theme: "trad"}, NearbyQuery{Lat: 19.0, Lon: 72.84, RadiusMeters: 5000})
	require.NoError(t, err)
	assert.Equal(t, []string{"near-trad", "far-trad"}, rankedNames(got))
}

func TestIdempotentReads(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	mustCreate(t, svc, models.Pandal{Name: "p1", Theme: "Traditional", Area: "Dadar", Location: at(19.0, 72.84)})
	mustCreate(t, svc, models.Pandal{Name: "p2", Theme: "Modern", Area: "Thane", Location: at(19.21, 72.97)})

	f := Filter{Theme: "o"}
	first, err := svc.Filter(ctx, f)
	require.NoError(t, err)
	second, err := svc.Filter(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	l1, err := svc.ListPandals(ctx, 0)
	require.NoError(t, err)
	l2, err := svc.ListPandals(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, l1, l2)

	q := NearbyQuery{Lat: 19.0, Lon: 72.84, RadiusMeters: 50000}
	n1, err := svc.Nearby(ctx, q)
	require.NoError(t, err)
	n2, err := svc.Nearby(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, n1, n2)
}
