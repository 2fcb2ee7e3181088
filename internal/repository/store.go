package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the relational repositories into one backend.
type Store struct {
	*PandalRepository
	*RatingRepository
	*VisitRepository
	*UserRepository
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		PandalRepository: NewPandalRepository(db),
		RatingRepository: NewRatingRepository(db),
		VisitRepository:  NewVisitRepository(db),
		UserRepository:   NewUserRepository(db),
		db:               db,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
