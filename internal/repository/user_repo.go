package repository

import (
	"context"
	"errors"

	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertUser inserts or refreshes the profile columns; created_at is kept.
func (r *UserRepository) UpsertUser(ctx context.Context, u *models.User) (*models.User, error) {
	rec := UserRecord{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Picture:     u.Picture,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "picture", "role", "last_login_at"}),
	}).Create(&rec).Error
	if err != nil {
		return nil, err
	}
	return r.GetUser(ctx, u.ID)
}

func (r *UserRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var rec UserRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u := rec.toModel()
	return &u, nil
}
