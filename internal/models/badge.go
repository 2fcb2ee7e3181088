package models

import "time"

// Badge is a milestone earned by checking in at distinct pandals.
type Badge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Visits      int    `json:"visits"` // distinct pandals required
}

// UserBadge records that a user earned a badge. A user holds each badge once.
type UserBadge struct {
	UserID    string    `json:"user_id"`
	BadgeID   string    `json:"badge_id"`
	AwardedAt time.Time `json:"awarded_at"`
}
