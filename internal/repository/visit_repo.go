package repository

import (
	"context"

	"utsavdarshan/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VisitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) CreateVisit(ctx context.Context, v *models.Visit) error {
	rec := VisitRecord{ID: uuid.NewString(), UserID: v.UserID, PandalID: v.PandalID, VisitedAt: v.VisitedAt}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}
	v.ID = rec.ID
	return nil
}

func (r *VisitRepository) ListVisitsByUser(ctx context.Context, userID string) ([]models.Visit, error) {
	var recs []VisitRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("seq").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.Visit, len(recs))
	for i, rec := range recs {
		out[i] = models.Visit{ID: rec.ID, UserID: rec.UserID, PandalID: rec.PandalID, VisitedAt: rec.VisitedAt}
	}
	return out, nil
}

func (r *VisitRepository) awardQuery(ctx context.Context, rec *UserBadgeRecord) *gorm.DB {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rec)
}

// AwardBadge inserts the badge unless the unique (user_id, badge_id) index
// already holds it.
func (r *VisitRepository) AwardBadge(ctx context.Context, b *models.UserBadge) (bool, error) {
	res := r.awardQuery(ctx, &UserBadgeRecord{UserID: b.UserID, BadgeID: b.BadgeID, AwardedAt: b.AwardedAt})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *VisitRepository) ListUserBadges(ctx context.Context, userID string) ([]models.UserBadge, error) {
	var recs []UserBadgeRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("seq").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.UserBadge, len(recs))
	for i, rec := range recs {
		out[i] = models.UserBadge{UserID: rec.UserID, BadgeID: rec.BadgeID, AwardedAt: rec.AwardedAt}
	}
	return out, nil
}
