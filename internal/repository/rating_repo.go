package repository

import (
	"context"

	"utsavdarshan/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingRepository only inserts and reads; ratings are append-only.
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) CreateRating(ctx context.Context, rt *models.Rating) error {
	rec := RatingRecord{
		ID:        uuid.NewString(),
		PandalID:  rt.PandalID,
		UserID:    rt.UserID,
		Score:     rt.Score,
		Comment:   rt.Comment,
		CreatedAt: rt.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	rt.ID = rec.ID
	return nil
}

func (r *RatingRepository) ListRatings(ctx context.Context, pandalID string) ([]models.Rating, error) {
	var recs []RatingRecord
	if err := r.db.WithContext(ctx).Where("pandal_id = ?", pandalID).Order("seq").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.Rating, len(recs))
	for i := range recs {
		out[i] = recs[i].toModel()
	}
	return out, nil
}

func (r *RatingRepository) ScoresByPandal(ctx context.Context, pandalIDs []string) (map[string][]int, error) {
	var rows []struct {
		PandalID string
		Score    int
	}
	err := r.db.WithContext(ctx).Model(&RatingRecord{}).
		Select("pandal_id, score").
		Where("pandal_id IN ?", pandalIDs).
		Order("seq").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string][]int)
	for _, row := range rows {
		out[row.PandalID] = append(out[row.PandalID], row.Score)
	}
	return out, nil
}
