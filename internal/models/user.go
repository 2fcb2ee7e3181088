package models

import (
	"time"

	"utsavdarshan/internal/domain"
)

// User is keyed by the external identity id (Google subject).
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Picture     string    `json:"picture,omitempty"`
	Role        string    `json:"role"` // VISITOR | ADMIN
	CreatedAt   time.Time `json:"created_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }
