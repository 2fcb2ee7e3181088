package service

import (
	"context"
	"slices"
	"sort"
	"strings"

	"utsavdarshan/internal/models"
)

// RatingInput is a new rating. UserID is the opaque external identity.
type RatingInput struct {
	PandalID string `json:"pandal_id" validate:"required"`
	UserID   string `json:"user_id" validate:"required"`
	Score    int    `json:"score" validate:"min=1,max=5"`
	Comment  string `json:"comment" validate:"max=1000"`
}

// PandalWithRating is a pandal with its rating summary.
type PandalWithRating struct {
	models.Pandal
	Rating models.RatingSummary `json:"rating"`
}

// Summarize computes the mean and count of scores. With no scores the
// average is nil, never zero.
func Summarize(scores []int) models.RatingSummary {
	if len(scores) == 0 {
		return models.RatingSummary{Count: 0}
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))
	return models.RatingSummary{Average: &avg, Count: len(scores)}
}

// RatePandal appends a rating. Ratings are never updated or removed.
func (s *DirectoryService) RatePandal(ctx context.Context, in RatingInput) (*models.Rating, error) {
	in.PandalID = strings.TrimSpace(in.PandalID)
	in.UserID = strings.TrimSpace(in.UserID)
	in.Comment = strings.TrimSpace(in.Comment)
	if err := check(in); err != nil {
		return nil, err
	}
	if _, err := s.GetPandal(ctx, in.PandalID); err != nil {
		return nil, err
	}
	r := &models.Rating{
		PandalID:  in.PandalID,
		UserID:    in.UserID,
		Score:     in.Score,
		Comment:   in.Comment,
		CreatedAt: s.now().UTC(),
	}
	if err := s.ratings.CreateRating(ctx, r); err != nil {
		return nil, storeErr("create rating", err)
	}
	return r, nil
}

// Ratings returns a pandal's ratings, newest first.
func (s *DirectoryService) Ratings(ctx context.Context, pandalID string) ([]models.Rating, error) {
	if _, err := s.GetPandal(ctx, pandalID); err != nil {
		return nil, err
	}
	list, err := s.ratings.ListRatings(ctx, pandalID)
	if err != nil {
		return nil, storeErr("list ratings", err)
	}
	// Reverse first so equal timestamps come out latest-inserted first.
	slices.Reverse(list)
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (s *DirectoryService) RatingSummary(ctx context.Context, pandalID string) (models.RatingSummary, error) {
	if _, err := s.GetPandal(ctx, pandalID); err != nil {
		return models.RatingSummary{}, err
	}
	scores, err := s.ratings.ScoresByPandal(ctx, []string{pandalID})
	if err != nil {
		return models.RatingSummary{}, storeErr("rating scores", err)
	}
	return Summarize(scores[pandalID]), nil
}

// Detail returns one pandal with its rating summary.
func (s *DirectoryService) Detail(ctx context.Context, id string) (*PandalWithRating, error) {
	p, err := s.GetPandal(ctx, id)
	if err != nil {
		return nil, err
	}
	scores, err := s.ratings.ScoresByPandal(ctx, []string{p.ID})
	if err != nil {
		return nil, storeErr("rating scores", err)
	}
	return &PandalWithRating{Pandal: *p, Rating: Summarize(scores[p.ID])}, nil
}

// ListWithRatings lists pandals like ListPandals, each with its rating summary.
func (s *DirectoryService) ListWithRatings(ctx context.Context, limit int) ([]PandalWithRating, error) {
	list, err := s.ListPandals(ctx, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	scores := map[string][]int{}
	if len(ids) > 0 {
		scores, err = s.ratings.ScoresByPandal(ctx, ids)
		if err != nil {
			return nil, storeErr("rating scores", err)
		}
	}
	out := make([]PandalWithRating, len(list))
	for i := range list {
		out[i] = PandalWithRating{Pandal: list[i], Rating: Summarize(scores[list[i].ID])}
	}
	return out, nil
}
