package service

import (
	"context"

	"utsavdarshan/internal/models"
	"utsavdarshan/pkg/location"
)

// PandalStore persists pandals. Lookups of unknown ids return domain.ErrNotFound.
type PandalStore interface {
	// CreatePandal inserts p and sets p.ID.
	CreatePandal(ctx context.Context, p *models.Pandal) error
	// ListPandals returns pandals in insertion order, at most limit when limit > 0.
	ListPandals(ctx context.Context, limit int) ([]models.Pandal, error)
	GetPandal(ctx context.Context, id string) (*models.Pandal, error)
	// UpdatePandal replaces the stored record with the same ID.
	UpdatePandal(ctx context.Context, p *models.Pandal) error
	// PandalsWithinRadius is the coarse proximity stage: it returns, in
	// insertion order, a superset of the located pandals within radiusMeters
	// of center. Callers compute exact distances themselves.
	PandalsWithinRadius(ctx context.Context, center location.Point, radiusMeters float64) ([]models.Pandal, error)
	CountPandals(ctx context.Context) (int64, error)
}

// RatingStore is append-only.
type RatingStore interface {
	CreateRating(ctx context.Context, r *models.Rating) error
	// ListRatings returns a pandal's ratings in insertion order.
	ListRatings(ctx context.Context, pandalID string) ([]models.Rating, error)
	// ScoresByPandal returns the scores of every rating for the given pandals.
	// Pandals without ratings are absent from the map.
	ScoresByPandal(ctx context.Context, pandalIDs []string) (map[string][]int, error)
}

// VisitStore keeps check-ins and the badges they earn.
type VisitStore interface {
	CreateVisit(ctx context.Context, v *models.Visit) error
	ListVisitsByUser(ctx context.Context, userID string) ([]models.Visit, error)
	// AwardBadge stores b unless the user already holds that badge.
	// awarded is false for a repeat award.
	AwardBadge(ctx context.Context, b *models.UserBadge) (awarded bool, err error)
	// ListUserBadges returns a user's badges in award order.
	ListUserBadges(ctx context.Context, userID string) ([]models.UserBadge, error)
}

type UserStore interface {
	// UpsertUser inserts u or refreshes the profile fields of an existing
	// user with the same ID. CreatedAt of an existing user is preserved.
	UpsertUser(ctx context.Context, u *models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// Store is a complete backend.
type Store interface {
	PandalStore
	RatingStore
	VisitStore
	UserStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
