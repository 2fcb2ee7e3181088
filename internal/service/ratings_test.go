package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]int{4, 5, 3})
	require.NotNil(t, s.Average)
	assert.Equal(t, 4.0, *s.Average)
	assert.Equal(t, 3, s.Count)

	empty := Summarize(nil)
	assert.Nil(t, empty.Average)
	assert.Equal(t, 0, empty.Count)
}

func TestRatingAggregation(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	rated := mustCreate(t, svc, models.Pandal{Name: "rated"})
	unrated := mustCreate(t, svc, models.Pandal{Name: "unrated"})

	for _, score := range []int{4, 5, 3} {
		_, err := svc.RatePandal(ctx, RatingInput{PandalID: rated.ID, UserID: "u1", Score: score})
		require.NoError(t, err)
	}

	s, err := svc.RatingSummary(ctx, rated.ID)
	require.NoError(t, err)
	require.NotNil(t, s.Average)
	assert.Equal(t, 4.0, *s.Average)
	assert.Equal(t, 3, s.Count)

	s, err = svc.RatingSummary(ctx, unrated.ID)
	require.NoError(t, err)
	assert.Nil(t, s.Average)
	assert.Zero(t, s.Count)

	list, err := svc.ListWithRatings(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].Rating.Count)
	assert.Nil(t, list[1].Rating.Average)

	detail, err := svc.Detail(ctx, rated.ID)
	require.NoError(t, err)
	assert.Equal(t, "rated", detail.Name)
	assert.Equal(t, 3, detail.Rating.Count)

	_, err = svc.RatingSummary(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRatePandalValidation(t *testing.T) {
	svc, st := newTestDirectory(t)
	ctx := context.Background()
	p := mustCreate(t, svc, models.Pandal{Name: "p"})

	cases := map[string]RatingInput{
		"user_id": {PandalID: p.ID, Score: 4},
		"score":   {PandalID: p.ID, UserID: "u1", Score: 6},
		"comment": {PandalID: p.ID, UserID: "u1", Score: 3, Comment: strings.Repeat("x", 1001)},
	}
	for field, in := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := svc.RatePandal(ctx, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, field)
		})
	}
	_, err := svc.RatePandal(ctx, RatingInput{PandalID: p.ID, UserID: "u1", Score: 0})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.RatePandal(ctx, RatingInput{PandalID: "missing", UserID: "u1", Score: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := st.ListRatings(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRatingsNewestFirst(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	p := mustCreate(t, svc, models.Pandal{Name: "p"})

	base := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	for i, c := range []string{"first", "second", "third"} {
		ts := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return ts }
		_, err := svc.RatePandal(ctx, RatingInput{PandalID: p.ID, UserID: "u", Score: 5, Comment: c})
		require.NoError(t, err)
	}
	list, err := svc.Ratings(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Comment)
	assert.Equal(t, "first", list[2].Comment)

	_, err = svc.Ratings(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConcurrentRatingsAreIndependent(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	p := mustCreate(t, svc, models.Pandal{Name: "p"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.RatePandal(ctx, RatingInput{PandalID: p.ID, UserID: "u", Score: 1 + i%5})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	s, err := svc.RatingSummary(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, s.Count)
	require.NotNil(t, s.Average)
	assert.Equal(t, 3.0, *s.Average)
}

func TestVisits(t *testing.T) {
	svc, _ := newTestDirectory(t)
	ctx := context.Background()
	a := mustCreate(t, svc, models.Pandal{Name: "a"})
	b := mustCreate(t, svc, models.Pandal{Name: "b"})

	base := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{a.ID, b.ID} {
		ts := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return ts }
		_, err := svc.RecordVisit(ctx, "u1", id)
		require.NoError(t, err)
	}
	_, err := svc.RecordVisit(ctx, "u2", a.ID)
	require.NoError(t, err)

	visits, err := svc.Visits(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, visits, 2)
	assert.Equal(t, b.ID, visits[0].PandalID)

	_, err = svc.RecordVisit(ctx, "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var verr *ValidationError
	_, err = svc.RecordVisit(ctx, " ", a.ID)
	assert.ErrorAs(t, err, &verr)
}
