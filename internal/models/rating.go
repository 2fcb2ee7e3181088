package models

import "time"

// Rating is a user's score for a pandal. Ratings are never updated or deleted.
type Rating struct {
	ID        string    `json:"id"`
	PandalID  string    `json:"pandal_id"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingSummary is the mean score and count for one pandal.
// Average is nil when Count is zero.
type RatingSummary struct {
	Average *float64 `json:"average"`
	Count   int      `json:"count"`
}

// Visit is a user check-in at a pandal.
type Visit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PandalID  string    `json:"pandal_id"`
	VisitedAt time.Time `json:"visited_at"`
}
