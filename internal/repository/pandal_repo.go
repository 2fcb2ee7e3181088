package repository

import (
	"context"
	"errors"

	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/models"
	"utsavdarshan/pkg/location"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PandalRepository struct {
	db *gorm.DB
}

func NewPandalRepository(db *gorm.DB) *PandalRepository {
	return &PandalRepository{db: db}
}

func (r *PandalRepository) CreatePandal(ctx context.Context, p *models.Pandal) error {
	rec := toPandalRecord(p)
	rec.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	p.ID = rec.ID
	return nil
}

func (r *PandalRepository) ListPandals(ctx context.Context, limit int) ([]models.Pandal, error) {
	q := r.db.WithContext(ctx).Order("seq")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []PandalRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return pandalModels(recs), nil
}

func (r *PandalRepository) GetPandal(ctx context.Context, id string) (*models.Pandal, error) {
	var rec PandalRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p := rec.toModel()
	return &p, nil
}

// UpdatePandal writes every column except seq, id and created_at.
func (r *PandalRepository) UpdatePandal(ctx context.Context, p *models.Pandal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&PandalRecord{}).Where("id = ?", p.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		rec := toPandalRecord(p)
		return tx.Model(&PandalRecord{}).
			Where("id = ?", p.ID).
			Select("*").
			Omit("seq", "id", "created_at").
			Updates(&rec).Error
	})
}

// PandalsWithinRadius is the coarse stage: a bounding-box prefilter on the
// lat/lng index, in insertion order.
func (r *PandalRepository) PandalsWithinRadius(ctx context.Context, center location.Point, radiusMeters float64) ([]models.Pandal, error) {
	var recs []PandalRecord
	if err := r.withinQuery(ctx, center, radiusMeters).Find(&recs).Error; err != nil {
		return nil, err
	}
	return pandalModels(recs), nil
}

func (r *PandalRepository) withinQuery(ctx context.Context, center location.Point, radiusMeters float64) *gorm.DB {
	box := location.BoundingBox(center, radiusMeters)
	return r.db.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?", box.MinLat, box.MaxLat, box.MinLon, box.MaxLon).
		Order("seq")
}

func (r *PandalRepository) CountPandals(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&PandalRecord{}).Count(&n).Error
	return n, err
}

func pandalModels(recs []PandalRecord) []models.Pandal {
	out := make([]models.Pandal, len(recs))
	for i := range recs {
		out[i] = recs[i].toModel()
	}
	return out
}
