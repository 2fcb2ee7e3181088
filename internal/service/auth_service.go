package service

import (
	"context"
	"strings"
	"time"

	"utsavdarshan/config"
	"utsavdarshan/internal/auth"
	"utsavdarshan/internal/domain"
	"utsavdarshan/internal/models"
)

// AuthService turns a completed Google sign-in into a local user and a
// session token.
type AuthService struct {
	cfg   *config.Config
	users UserStore
	now   func() time.Time
}

func NewAuthService(cfg *config.Config, users UserStore) *AuthService {
	return &AuthService{cfg: cfg, users: users, now: time.Now}
}

// GoogleIdentity is the profile Google vouches for after a sign-in.
type GoogleIdentity struct {
	ID            string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// LoginWithGoogle upserts the user keyed by the Google ID and returns it with
// an access token. Verified emails listed in ADMIN_EMAILS get the ADMIN role.
func (s *AuthService) LoginWithGoogle(ctx context.Context, id GoogleIdentity) (*models.User, string, error) {
	if strings.TrimSpace(id.ID) == "" {
		return nil, "", invalid("sub", "is required")
	}
	name := id.Name
	if name == "" {
		name, _, _ = strings.Cut(id.Email, "@")
	}
	now := s.now().UTC()
	u, err := s.users.UpsertUser(ctx, &models.User{
		ID:          id.ID,
		Email:       id.Email,
		Name:        name,
		Picture:     id.Picture,
		Role:        s.roleFor(id),
		CreatedAt:   now,
		LastLoginAt: now,
	})
	if err != nil {
		return nil, "", storeErr("upsert user", err)
	}
	token, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) roleFor(id GoogleIdentity) string {
	if !id.EmailVerified || id.Email == "" {
		return domain.RoleVisitor
	}
	for _, admin := range s.cfg.OAuth.AdminEmails {
		if strings.EqualFold(admin, id.Email) {
			return domain.RoleAdmin
		}
	}
	return domain.RoleVisitor
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, storeErr("get user", err)
	}
	return u, nil
}
